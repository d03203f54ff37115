// Package scene holds the three demo scenes and the registry that builds
// them by name.
package scene

import (
	"errors"
	"fmt"
	"sort"

	"pi-demo-renderer/internal/camera"
	"pi-demo-renderer/internal/raster"
	"pi-demo-renderer/internal/texture"
)

var ErrUnknownScene = errors.New("scene: unknown scene")

// Frame is everything one draw call needs. The camera and context are
// owned by the caller for the duration of the frame.
type Frame struct {
	Index int
	RC    *raster.Context
	Cam   *camera.Camera
	// Pointer in [-1,1], y up.
	PX, PY float64
}

// Scene is a demo that draws once per frame.
type Scene interface {
	Name() string
	// Setup links programs, uploads buffers and places the camera.
	Setup(rc *raster.Context, cam *camera.Camera, tex texture.Resolver) error
	Draw(f Frame) error
}

// Options are the per-scene settings exposed on the command line.
type Options struct {
	Texture    string // quad: texture name or path; empty uses a checkerboard
	Segments   int    // cone: facets around the axis
	Reflect    bool   // cone: draw the mirrored water pass
	Julia      bool   // fractal: Julia set instead of Mandelbrot
	Iterations int    // fractal: escape-time limit
	Lens       camera.Lens
}

type factory func(Options) Scene

var registry = map[string]factory{
	"quad":    func(o Options) Scene { return newQuad(o) },
	"cone":    func(o Options) Scene { return newCone(o) },
	"fractal": func(o Options) Scene { return newFractal(o) },
}

// New builds the named scene.
func New(name string, opts Options) (Scene, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownScene, name, Names())
	}
	if opts.Lens == (camera.Lens{}) {
		opts.Lens = camera.DefaultLens()
	}
	return f(opts), nil
}

// Names lists the registered scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// frontFace returns the winding that faces the camera for meshes wound
// counter-clockwise when seen from outside.
func frontFace(cam *camera.Camera) raster.Winding {
	if cam.Mirrored() {
		return raster.CCW
	}
	return raster.CW
}
