package shader

import (
	"errors"
	"fmt"
	"image"

	"pi-demo-renderer/internal/mathutil"
)

// ErrUnknownUniform is returned when setting a name the program does not declare.
var ErrUnknownUniform = errors.New("shader: unknown uniform")

type uniform struct {
	mat mathutil.Mat4
	vec mathutil.Vec3
	f   float64
	tex *image.NRGBA
	set bool
}

// Uniforms holds the values bound to one program.
type Uniforms struct {
	values map[string]*uniform
}

// NewUniforms allocates storage for every uniform p declares.
func NewUniforms(p Program) *Uniforms {
	u := &Uniforms{values: make(map[string]*uniform)}
	for _, name := range p.Uniforms() {
		u.values[name] = &uniform{}
	}
	return u
}

func (u *Uniforms) slot(name string) (*uniform, error) {
	v, ok := u.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUniform, name)
	}
	v.set = true
	return v, nil
}

// SetMatrix uploads a row-major matrix; the row-vector convention is kept
// as is, no transpose happens at the boundary.
func (u *Uniforms) SetMatrix(name string, m mathutil.Mat4) error {
	v, err := u.slot(name)
	if err != nil {
		return err
	}
	v.mat = m
	return nil
}

func (u *Uniforms) SetVec3(name string, x mathutil.Vec3) error {
	v, err := u.slot(name)
	if err != nil {
		return err
	}
	v.vec = x
	return nil
}

func (u *Uniforms) SetVec2(name string, x, y float64) error {
	return u.SetVec3(name, mathutil.Vec3{x, y, 0})
}

func (u *Uniforms) SetFloat(name string, f float64) error {
	v, err := u.slot(name)
	if err != nil {
		return err
	}
	v.f = f
	return nil
}

func (u *Uniforms) SetTexture(name string, tex *image.NRGBA) error {
	v, err := u.slot(name)
	if err != nil {
		return err
	}
	v.tex = tex
	return nil
}

// Getters return zero values for unknown or unset names; programs read them
// on the hot path.

func (u *Uniforms) Matrix(name string) mathutil.Mat4 {
	if v, ok := u.values[name]; ok && v.set {
		return v.mat
	}
	return mathutil.Mat4Identity()
}

func (u *Uniforms) Vec3(name string) mathutil.Vec3 {
	if v, ok := u.values[name]; ok {
		return v.vec
	}
	return mathutil.Vec3{}
}

func (u *Uniforms) Float(name string) float64 {
	if v, ok := u.values[name]; ok {
		return v.f
	}
	return 0
}

func (u *Uniforms) Texture(name string) *image.NRGBA {
	if v, ok := u.values[name]; ok {
		return v.tex
	}
	return nil
}
