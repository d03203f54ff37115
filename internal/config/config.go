package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"pi-demo-renderer/internal/camera"
	"pi-demo-renderer/internal/mathutil"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Scene selection
	Scene      string `json:"scene" toml:"scene"`
	Julia      bool   `json:"julia" toml:"julia"`
	Reflect    bool   `json:"reflect" toml:"reflect"`
	Iterations int    `json:"iterations" toml:"iterations"`
	Segments   int    `json:"segments" toml:"segments"`
	Texture    string `json:"texture" toml:"texture"`

	// Paths
	TextureDir  string `json:"texture_dir" toml:"texture_dir"`
	PointerPath string `json:"pointer_path" toml:"pointer_path"`
	OutputDir   string `json:"output_dir" toml:"output_dir"`

	// Render settings
	Width       int  `json:"width" toml:"width"`
	Height      int  `json:"height" toml:"height"`
	Supersample int  `json:"supersample" toml:"supersample"`
	Frames      int  `json:"frames" toml:"frames"`
	Workers     int  `json:"workers" toml:"workers"`
	Lens        Lens `json:"lens" toml:"lens"`
}

// Lens mirrors camera.Lens with degree-valued fields for config files.
type Lens struct {
	Near    float64 `json:"near" toml:"near"`
	Far     float64 `json:"far" toml:"far"`
	FOVHDeg float64 `json:"fov_h_deg" toml:"fov_h_deg"`
	FOVVDeg float64 `json:"fov_v_deg" toml:"fov_v_deg"`
}

// Load reads a JSON or TOML (by extension) config file.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file's setting alone.
type Flags struct {
	Scene       string
	Width       int
	Height      int
	Supersample int
	Frames      int
	Workers     int
	OutputDir   string
	Texture     string
	TextureDir  string
	PointerPath string
	Julia       bool
	Reflect     bool
}

// Resolve applies flags over the file values, then fills defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Texture != "" {
		c.Texture = flags.Texture
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.PointerPath != "" {
		c.PointerPath = flags.PointerPath
	}
	c.Julia = c.Julia || flags.Julia
	c.Reflect = c.Reflect || flags.Reflect

	// Defaults
	if c.Scene == "" {
		c.Scene = "cone"
	}
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 240
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Frames <= 0 && c.PointerPath == "" {
		c.Frames = 60
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join("renders", c.Scene)
	}

	def := camera.DefaultLens()
	if c.Lens.Near <= 0 {
		c.Lens.Near = def.Near
	}
	if c.Lens.Far <= 0 {
		c.Lens.Far = def.Far
	}
	if c.Lens.FOVHDeg <= 0 {
		c.Lens.FOVHDeg = def.FOVH / mathutil.DegToRad
	}
	if c.Lens.FOVVDeg <= 0 {
		c.Lens.FOVVDeg = def.FOVV / mathutil.DegToRad
	}
}

// CameraLens converts the lens settings, checking the projection
// preconditions.
func (c *Config) CameraLens() (camera.Lens, error) {
	l := camera.Lens{
		Near: c.Lens.Near,
		Far:  c.Lens.Far,
		FOVH: mathutil.Deg2Rad(c.Lens.FOVHDeg),
		FOVV: mathutil.Deg2Rad(c.Lens.FOVVDeg),
	}
	if _, err := mathutil.ProjectionChecked(l.Near, l.Far, l.FOVH, l.FOVV); err != nil {
		return camera.Lens{}, fmt.Errorf("config: lens: %w", err)
	}
	return l, nil
}
