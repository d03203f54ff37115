// Package mesh holds interleaved vertex/index buffers and the generators for
// the demo geometry.
package mesh

import (
	"errors"
	"fmt"
)

var (
	ErrBadStride  = errors.New("mesh: vertex data is not a multiple of the layout stride")
	ErrIndexRange = errors.New("mesh: index out of range")
	ErrBadLayout  = errors.New("mesh: invalid layout")
)

// Attribute names used by the generators.
const (
	AttrPosition = "position"
	AttrNormal   = "normal"
	AttrUV       = "uv"
)

// Attrib is one named component group of an interleaved vertex.
type Attrib struct {
	Name string
	Size int // float32 components
}

// Layout describes an interleaved vertex.
type Layout []Attrib

// Stride returns the number of float32s per vertex.
func (l Layout) Stride() int {
	n := 0
	for _, a := range l {
		n += a.Size
	}
	return n
}

// Offset returns the component offset of name within a vertex, or -1.
func (l Layout) Offset(name string) int {
	off := 0
	for _, a := range l {
		if a.Name == name {
			return off
		}
		off += a.Size
	}
	return -1
}

// Size returns the component count of name, or 0 if absent.
func (l Layout) Size(name string) int {
	for _, a := range l {
		if a.Name == name {
			return a.Size
		}
	}
	return 0
}

// Buffer is an interleaved vertex array plus a triangle list of indices.
type Buffer struct {
	Layout  Layout
	Data    []float32
	Indices []uint16
}

// NewBuffer validates data and indices against layout.
func NewBuffer(layout Layout, data []float32, indices []uint16) (*Buffer, error) {
	stride := layout.Stride()
	if stride == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadLayout)
	}
	seen := make(map[string]bool, len(layout))
	for _, a := range layout {
		if a.Size <= 0 || a.Size > 4 {
			return nil, fmt.Errorf("%w: %s has size %d", ErrBadLayout, a.Name, a.Size)
		}
		if seen[a.Name] {
			return nil, fmt.Errorf("%w: duplicate %s", ErrBadLayout, a.Name)
		}
		seen[a.Name] = true
	}
	if len(data)%stride != 0 {
		return nil, fmt.Errorf("%w: %d floats, stride %d", ErrBadStride, len(data), stride)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("mesh: %d indices is not a triangle list", len(indices))
	}
	n := len(data) / stride
	for i, idx := range indices {
		if int(idx) >= n {
			return nil, fmt.Errorf("%w: indices[%d]=%d, %d vertices", ErrIndexRange, i, idx, n)
		}
	}
	return &Buffer{Layout: layout, Data: data, Indices: indices}, nil
}

// VertexCount returns the number of vertices.
func (b *Buffer) VertexCount() int {
	return len(b.Data) / b.Layout.Stride()
}

// Vertex returns the interleaved components of vertex i (no copy).
func (b *Buffer) Vertex(i int) []float32 {
	s := b.Layout.Stride()
	return b.Data[i*s : (i+1)*s]
}

// Triangles returns the number of triangles.
func (b *Buffer) Triangles() int {
	return len(b.Indices) / 3
}
