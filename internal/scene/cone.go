package scene

import (
	"fmt"
	"math"

	"pi-demo-renderer/internal/camera"
	"pi-demo-renderer/internal/mathutil"
	"pi-demo-renderer/internal/mesh"
	"pi-demo-renderer/internal/raster"
	"pi-demo-renderer/internal/shader"
	"pi-demo-renderer/internal/texture"
)

const (
	coneRadius = 20
	coneHeight = 50
	coneCount  = 3
	coneGap    = 60.0
	orbitDist  = 160.0
)

var coneColors = [coneCount]mathutil.Vec3{
	{0.85, 0.35, 0.2},
	{0.3, 0.75, 0.35},
	{0.25, 0.45, 0.9},
}

// waterTint darkens and blues the reflection pass.
var waterTint = mathutil.Vec3{0.45, 0.6, 0.85}

// cone orbits the camera around a row of spinning cones. Pointer X sets
// the orbit angle, pointer Y the camera height. With Reflect, the lower
// third of the frame shows the row mirrored in a water plane at
// mathutil.ReflectPlaneZ.
type cone struct {
	opts  Options
	buf   *mesh.Buffer
	prog  *shader.Linked
	u     *shader.Uniforms
	model *camera.Camera
}

func newCone(o Options) *cone {
	if o.Segments <= 0 {
		o.Segments = 24
	}
	return &cone{opts: o}
}

func (*cone) Name() string { return "cone" }

func (c *cone) Setup(rc *raster.Context, cam *camera.Camera, _ texture.Resolver) error {
	c.buf = mesh.Cone(c.opts.Segments, coneRadius, coneHeight)
	prog, err := shader.Link(shader.NewLit(), c.buf.Layout)
	if err != nil {
		return fmt.Errorf("scene: cone: %w", err)
	}
	c.prog = prog
	c.u = shader.NewUniforms(prog.Program)
	// object-to-world matrices are built with the same stack operations,
	// starting from the identity
	c.model = camera.New()

	rc.ClearColor(12, 18, 28, 255)
	rc.CullBackFaces(true)
	c.place(cam, 0, 0, false)
	return nil
}

func (c *cone) eye(px, py float64) mathutil.Vec3 {
	theta := px * math.Pi
	return mathutil.Vec3{
		orbitDist * math.Sin(theta),
		-orbitDist * math.Cos(theta),
		60 + 40*py,
	}
}

func (c *cone) place(cam *camera.Camera, px, py float64, reflect bool) {
	at := mathutil.Vec3{0, 0, coneHeight / 2}
	cam.Place(at, c.eye(px, py), mathutil.DefaultUp, reflect, c.opts.Lens)
	if reflect {
		// seen from below the surface; flip vertically so it reads as a
		// reflection under the scene
		cam.SetBase(mathutil.Mat4Mul(cam.Base, mathutil.Scaling(1, -1, 1)))
	}
}

func (c *cone) Draw(f Frame) error {
	f.RC.Clear()
	w, h := f.RC.Width(), f.RC.Height()

	if !c.opts.Reflect {
		f.RC.Viewport(0, 0, w, h)
		c.place(f.Cam, f.PX, f.PY, false)
		return c.drawRow(f, mathutil.Vec3{})
	}

	split := h * 2 / 3
	f.RC.Viewport(0, 0, w, split)
	c.place(f.Cam, f.PX, f.PY, false)
	if err := c.drawRow(f, mathutil.Vec3{}); err != nil {
		return err
	}

	f.RC.ClearDepth()
	f.RC.Viewport(0, split, w, h-split)
	c.place(f.Cam, f.PX, f.PY, true)
	return c.drawRow(f, waterTint)
}

func (c *cone) drawRow(f Frame, tint mathutil.Vec3) error {
	f.RC.FrontFace(frontFace(f.Cam))
	if err := c.u.SetVec3("tint", tint); err != nil {
		return err
	}

	for i := 0; i < coneCount; i++ {
		offset := mathutil.Vec3{(float64(i) - 1) * coneGap, 0, 0}
		spin := float64(f.Index)*3 + float64(i)*40

		f.Cam.BeginMatrix()
		f.Cam.Translate(offset)
		f.Cam.Rotate(spin)

		c.model.BeginMatrix()
		c.model.Translate(offset)
		c.model.Rotate(spin)

		if err := c.u.SetMatrix("mvp", f.Cam.Matrix()); err != nil {
			return err
		}
		if err := c.u.SetMatrix("model", c.model.Matrix()); err != nil {
			return err
		}
		if err := c.u.SetVec3("color", coneColors[i]); err != nil {
			return err
		}
		if err := f.RC.DrawTriangles(c.prog, c.u, c.buf); err != nil {
			return err
		}
	}
	return nil
}
