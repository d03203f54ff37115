// Package shader provides the programmable stages of the software pipeline:
// Go implementations of the demos' vertex/fragment shader pairs plus the
// link step that binds them to a vertex buffer layout.
package shader

import (
	"errors"
	"fmt"
	"image/color"

	"pi-demo-renderer/internal/mathutil"
	"pi-demo-renderer/internal/mesh"
)

var (
	ErrMissingAttribute = errors.New("shader: attribute not present in buffer layout")
	ErrAttributeSize    = errors.New("shader: attribute size mismatch")
)

// Attribute is an input a program reads from each vertex.
type Attribute struct {
	Name string
	Size int
}

// Program is a vertex/fragment pair.
//
// Vertex receives one slice per declared attribute (in Attributes order),
// writes Varyings() values into out and returns the clip-space position.
// Fragment receives the interpolated varyings and may discard by returning
// false.
type Program interface {
	Name() string
	Attributes() []Attribute
	Uniforms() []string
	Varyings() int
	Vertex(attrs [][]float32, u *Uniforms, out []float64) mathutil.Vec4
	Fragment(in []float64, u *Uniforms) (color.NRGBA, bool)
}

// Linked is a program bound to a buffer layout.
type Linked struct {
	Program Program
	Layout  mesh.Layout
	offsets []int
	sizes   []int
}

// Link resolves every program attribute against layout.
func Link(p Program, layout mesh.Layout) (*Linked, error) {
	l := &Linked{Program: p, Layout: layout}
	for _, a := range p.Attributes() {
		off := layout.Offset(a.Name)
		if off < 0 {
			return nil, fmt.Errorf("%w: %s needs %q", ErrMissingAttribute, p.Name(), a.Name)
		}
		if sz := layout.Size(a.Name); sz < a.Size {
			return nil, fmt.Errorf("%w: %s needs %q[%d], buffer has %d", ErrAttributeSize, p.Name(), a.Name, a.Size, sz)
		}
		l.offsets = append(l.offsets, off)
		l.sizes = append(l.sizes, a.Size)
	}
	return l, nil
}

// AttribLocation returns the index of name in the attribute list, or -1.
func (l *Linked) AttribLocation(name string) int {
	for i, a := range l.Program.Attributes() {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// Compatible reports whether layout places every attribute where the
// linked layout did.
func (l *Linked) Compatible(layout mesh.Layout) bool {
	if layout.Stride() != l.Layout.Stride() {
		return false
	}
	for i, a := range l.Program.Attributes() {
		if layout.Offset(a.Name) != l.offsets[i] || layout.Size(a.Name) < a.Size {
			return false
		}
	}
	return true
}

// Gather slices vertex into per-attribute views, reusing dst.
func (l *Linked) Gather(vertex []float32, dst [][]float32) [][]float32 {
	dst = dst[:0]
	for i, off := range l.offsets {
		dst = append(dst, vertex[off:off+l.sizes[i]])
	}
	return dst
}
