package scene

import (
	"fmt"

	"pi-demo-renderer/internal/camera"
	"pi-demo-renderer/internal/mesh"
	"pi-demo-renderer/internal/raster"
	"pi-demo-renderer/internal/shader"
	"pi-demo-renderer/internal/texture"
)

// fractal draws a full-screen escape-time fractal. In Mandelbrot mode the
// pointer pans the view; in Julia mode it picks the constant c.
type fractal struct {
	opts Options
	buf  *mesh.Buffer
	prog *shader.Linked
	u    *shader.Uniforms
}

func newFractal(o Options) *fractal {
	if o.Iterations <= 0 {
		o.Iterations = shader.DefaultIterations
	}
	return &fractal{opts: o}
}

func (*fractal) Name() string { return "fractal" }

func (s *fractal) Setup(rc *raster.Context, _ *camera.Camera, _ texture.Resolver) error {
	s.buf = mesh.ScreenQuad()
	prog, err := shader.Link(shader.Fractal{}, s.buf.Layout)
	if err != nil {
		return fmt.Errorf("scene: fractal: %w", err)
	}
	s.prog = prog
	s.u = shader.NewUniforms(prog.Program)

	mode := shader.Mandelbrot
	if s.opts.Julia {
		mode = shader.Julia
	}
	for name, v := range map[string]float64{
		"julia":      float64(mode),
		"iterations": float64(s.opts.Iterations),
		"scale":      1.25,
		"aspect":     float64(rc.Width()) / float64(max(rc.Height(), 1)),
	} {
		if err := s.u.SetFloat(name, v); err != nil {
			return err
		}
	}
	rc.DepthTest(false)
	return nil
}

func (s *fractal) Draw(f Frame) error {
	f.RC.Clear()
	if s.opts.Julia {
		if err := s.u.SetVec2("offset", 0, 0); err != nil {
			return err
		}
		if err := s.u.SetVec2("c", f.PX*0.8, f.PY*0.8); err != nil {
			return err
		}
	} else {
		if err := s.u.SetVec2("offset", -0.5+f.PX*0.5, f.PY*0.5); err != nil {
			return err
		}
	}
	return f.RC.DrawTriangles(s.prog, s.u, s.buf)
}
