// Package frameloop drives a scene frame by frame: poll the pointer, draw,
// swap, and hand finished frames to the encoder pool.
package frameloop

import (
	"fmt"
	"image"

	"pi-demo-renderer/internal/camera"
	"pi-demo-renderer/internal/input"
	"pi-demo-renderer/internal/postprocess"
	"pi-demo-renderer/internal/raster"
	"pi-demo-renderer/internal/scene"
	"pi-demo-renderer/internal/texture"
)

// Renderer owns the per-session render context and camera and draws one
// frame per Step. It is not safe for concurrent use.
type Renderer struct {
	Scene       scene.Scene
	Width       int
	Height      int
	Supersample int

	rc  *raster.Context
	cam *camera.Camera
}

// NewRenderer allocates a context at the supersampled size and runs the
// scene's Setup.
func NewRenderer(sc scene.Scene, width, height, supersample int, tex texture.Resolver) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frameloop: invalid size %dx%d", width, height)
	}
	if supersample < 1 {
		supersample = 1
	}
	r := &Renderer{
		Scene:       sc,
		Width:       width,
		Height:      height,
		Supersample: supersample,
		rc:          raster.NewContext(width*supersample, height*supersample),
		cam:         camera.New(),
	}
	if err := sc.Setup(r.rc, r.cam, tex); err != nil {
		return nil, fmt.Errorf("frameloop: setup %s: %w", sc.Name(), err)
	}
	return r, nil
}

// Step draws the next frame with the pointer at (x, y) output pixels and
// returns the finished, downsampled image.
func (r *Renderer) Step(x, y float64) (*image.NRGBA, error) {
	px, py := input.Normalize(x, y, r.Width, r.Height)
	f := scene.Frame{Index: r.rc.Frames(), RC: r.rc, Cam: r.cam, PX: px, PY: py}
	if err := r.Scene.Draw(f); err != nil {
		return nil, fmt.Errorf("frameloop: frame %d: %w", f.Index, err)
	}

	img := r.rc.Swap()
	if r.Supersample > 1 {
		img = postprocess.Downsample(img, r.Width, r.Height)
	}
	return img, nil
}

// Frames returns how many frames have been drawn.
func (r *Renderer) Frames() int { return r.rc.Frames() }

// Stats returns the raster counters of the last frame.
func (r *Renderer) Stats() raster.Stats { return r.rc.Stats() }
