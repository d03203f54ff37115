// Package camera holds the per-frame view state: a fixed view-projection
// base and a scratch transform that each object rebuilds from it.
package camera

import "pi-demo-renderer/internal/mathutil"

// Lens describes the projection half of a camera.
type Lens struct {
	Near float64
	Far  float64
	FOVH float64 // radians
	FOVV float64 // radians
}

// DefaultLens matches the demos' 10..1000 clip range.
func DefaultLens() Lens {
	return Lens{Near: 10, Far: 1000, FOVH: 1.7, FOVV: 1.4}
}

// Projection returns the lens' projection matrix.
func (l Lens) Projection() mathutil.Mat4 {
	return mathutil.Projection(l.Near, l.Far, l.FOVH, l.FOVV)
}

// Camera is not safe for concurrent use; one frame owns it at a time.
type Camera struct {
	// Base is view·projection, set once per camera placement.
	Base mathutil.Mat4
	// Working is the current object's transform, reset by BeginMatrix.
	Working mathutil.Mat4

	View       mathutil.Mat4
	Projection mathutil.Mat4
	Eye        mathutil.Vec3
	Reflected  bool
}

// New returns a camera whose base is the identity.
func New() *Camera {
	return &Camera{
		Base:       mathutil.Mat4Identity(),
		Working:    mathutil.Mat4Identity(),
		View:       mathutil.Mat4Identity(),
		Projection: mathutil.Mat4Identity(),
	}
}

// Place positions the camera and recomputes Base = LookAt · projection.
func (c *Camera) Place(at, eye, up mathutil.Vec3, reflect bool, lens Lens) {
	c.View = mathutil.LookAt(at, eye, up, reflect)
	c.Projection = lens.Projection()
	c.Base = mathutil.Mat4Mul(c.View, c.Projection)
	c.Eye = eye
	c.Reflected = reflect
	c.Working = c.Base
}

// SetBase installs a precomputed view-projection matrix.
func (c *Camera) SetBase(m mathutil.Mat4) {
	c.Base = m
	c.Working = m
}

// BeginMatrix overwrites the working transform with Base. Call it before
// the first Translate/Rotate of every object.
func (c *Camera) BeginMatrix() {
	c.Working = c.Base
}

// Translate composes a local translation by p into the working transform
// by updating only its translation row.
func (c *Camera) Translate(p mathutil.Vec3) {
	w := &c.Working
	for col := 0; col < 4; col++ {
		w[12+col] = p[0]*w[col] + p[1]*w[4+col] + p[2]*w[8+col] + w[12+col]
	}
}

// Rotate composes a local rotation about z (degrees) into the working
// transform. Translate and Rotate do not commute: later calls act closer
// to the object's local space.
func (c *Camera) Rotate(angleDegrees float64) {
	c.Working = mathutil.Mat4Mul(mathutil.RotZ(angleDegrees*mathutil.DegToRad), c.Working)
}

// Scale composes a uniform local scale into the working transform.
func (c *Camera) Scale(s float64) {
	for i := 0; i < 12; i++ {
		c.Working[i] *= s
	}
}

// Mirrored reports whether Base flips handedness (negative determinant of
// its linear block), which reverses on-screen triangle winding.
func (c *Camera) Mirrored() bool {
	return c.Base.Upper3().Det() < 0
}

// Matrix returns the working transform.
func (c *Camera) Matrix() mathutil.Mat4 {
	return c.Working
}
