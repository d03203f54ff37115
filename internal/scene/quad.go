package scene

import (
	"fmt"
	"image"

	"pi-demo-renderer/internal/camera"
	"pi-demo-renderer/internal/mathutil"
	"pi-demo-renderer/internal/mesh"
	"pi-demo-renderer/internal/raster"
	"pi-demo-renderer/internal/shader"
	"pi-demo-renderer/internal/texture"
)

// quad spins a textured square: pointer X sets the angle, pointer Y the zoom.
type quad struct {
	opts Options
	buf  *mesh.Buffer
	prog *shader.Linked
	u    *shader.Uniforms
	tex  *image.NRGBA
}

func newQuad(o Options) *quad { return &quad{opts: o} }

func (*quad) Name() string { return "quad" }

func (q *quad) Setup(rc *raster.Context, cam *camera.Camera, tex texture.Resolver) error {
	q.buf = mesh.Quad(100)
	prog, err := shader.Link(shader.Textured{}, q.buf.Layout)
	if err != nil {
		return fmt.Errorf("scene: quad: %w", err)
	}
	q.prog = prog
	q.u = shader.NewUniforms(prog.Program)

	if q.opts.Texture != "" && tex != nil {
		q.tex = tex.Resolve(q.opts.Texture)
		if q.tex == nil {
			if err := tex.Err(q.opts.Texture); err != nil {
				return fmt.Errorf("scene: quad: %w", err)
			}
			return fmt.Errorf("scene: quad: texture %q not found", q.opts.Texture)
		}
	}
	if q.tex == nil {
		q.tex = texture.Checkerboard(256, 8, [4]uint8{235, 235, 235, 255}, [4]uint8{200, 40, 40, 255})
	}
	if err := q.u.SetTexture("tex", q.tex); err != nil {
		return err
	}

	rc.ClearColor(30, 30, 40, 255)
	cam.Place(mathutil.Vec3{}, mathutil.Vec3{0, -100, 50}, mathutil.DefaultUp, false, q.opts.Lens)
	return nil
}

func (q *quad) Draw(f Frame) error {
	f.RC.Clear()

	f.Cam.BeginMatrix()
	f.Cam.Rotate(f.PX * 180)
	f.Cam.Scale(1 + 0.5*f.PY)
	if err := q.u.SetMatrix("mvp", f.Cam.Matrix()); err != nil {
		return err
	}
	return f.RC.DrawTriangles(q.prog, q.u, q.buf)
}
