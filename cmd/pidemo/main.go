package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"pi-demo-renderer/internal/config"
	"pi-demo-renderer/internal/frameloop"
	"pi-demo-renderer/internal/input"
	"pi-demo-renderer/internal/scene"
	"pi-demo-renderer/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json or config.toml")
	sceneName := flag.String("scene", "", "Scene to render: "+strings.Join(scene.Names(), ", ")+" (default: cone)")
	frames := flag.Int("frames", 0, "Number of frames (default: 60, or the length of -pointer)")
	width := flag.Int("width", 0, "Output width in pixels (default: 320)")
	height := flag.Int("height", 0, "Output height in pixels (default: 240)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 2)")
	outputDir := flag.String("output", "", "Output directory (default: renders/<scene>)")
	workers := flag.Int("workers", 0, "Number of encoder goroutines (default: NumCPU)")
	tex := flag.String("texture", "", "Texture name or image path for the quad scene")
	texDir := flag.String("textures", "", "Directory to index for texture names")
	pointerPath := flag.String("pointer", "", "JSON file of recorded pointer positions")
	julia := flag.Bool("julia", false, "Fractal scene: draw a Julia set")
	reflect := flag.Bool("reflect", false, "Cone scene: draw the water reflection")
	window := flag.Bool("window", false, "Show frames in a window, driven by the mouse")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Scene:       *sceneName,
		Width:       *width,
		Height:      *height,
		Supersample: *supersample,
		Frames:      *frames,
		Workers:     *workers,
		OutputDir:   *outputDir,
		Texture:     *tex,
		TextureDir:  *texDir,
		PointerPath: *pointerPath,
		Julia:       *julia,
		Reflect:     *reflect,
	})

	lens, err := cfg.CameraLens()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sc, err := scene.New(cfg.Scene, scene.Options{
		Texture:    cfg.Texture,
		Segments:   cfg.Segments,
		Reflect:    cfg.Reflect,
		Julia:      cfg.Julia,
		Iterations: cfg.Iterations,
		Lens:       lens,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Build texture index
	texIndex := texture.BuildIndex(cfg.TextureDir)
	texCache := texture.NewCache(texIndex)
	if cfg.TextureDir != "" {
		fmt.Printf("Textures: %d indexed\n", texIndex.Len())
	}

	if *window {
		r, err := frameloop.NewRenderer(sc, cfg.Width, cfg.Height, 1, texCache)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := runWindow(r); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	r, err := frameloop.NewRenderer(sc, cfg.Width, cfg.Height, cfg.Supersample, texCache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var pointer input.Pointer
	if cfg.PointerPath != "" {
		rec, err := input.LoadRecorded(cfg.PointerPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading pointer path: %v\n", err)
			os.Exit(1)
		}
		pointer = rec
	} else {
		pointer = input.NewScripted(cfg.Width, cfg.Height, cfg.Frames)
	}

	// Print summary
	mode := ""
	switch {
	case cfg.Scene == "fractal" && cfg.Julia:
		mode = " (Julia)"
	case cfg.Scene == "cone" && cfg.Reflect:
		mode = " (reflection)"
	}
	fmt.Printf("Pi demo renderer: %s%s → WebP\n", cfg.Scene, mode)
	fmt.Printf("Size: %dx%d (x%d supersample), Workers: %d\n", cfg.Width, cfg.Height, cfg.Supersample, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()

	results, runErr := frameloop.Run(ctx, frameloop.Config{
		OutputDir: cfg.OutputDir,
		Frames:    cfg.Frames,
		Workers:   cfg.Workers,
		Progress:  os.Stdout,
	}, r, pointer)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []frameloop.Result
	for _, res := range results {
		if res.Success {
			success++
		} else {
			failed++
			errors = append(errors, res)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))
	st := r.Stats()
	fmt.Printf("Last frame (%d drawn): %d triangles, %d clipped, %d culled, %d fragments\n",
		r.Frames(), st.Triangles, st.Clipped, st.Culled, st.Fragments)

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.File, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := frameloop.WriteManifest(manifestPath, cfg.Scene, cfg.Width, cfg.Height, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if runErr != nil && runErr != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
