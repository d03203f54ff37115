package mesh

import (
	"math"

	"pi-demo-renderer/internal/mathutil"
)

// PositionUV is the layout of the textured quad.
var PositionUV = Layout{{AttrPosition, 3}, {AttrUV, 2}}

// PositionNormal is the layout of lit meshes.
var PositionNormal = Layout{{AttrPosition, 3}, {AttrNormal, 3}}

// Position2 is a bare clip-space layout.
var Position2 = Layout{{AttrPosition, 2}}

// Quad returns a size×size square in the z=0 plane centred on the origin.
func Quad(size float32) *Buffer {
	h := size / 2
	data := []float32{
		-h, -h, 0, 0, 1,
		h, -h, 0, 1, 1,
		h, h, 0, 1, 0,
		-h, h, 0, 0, 0,
	}
	b, _ := NewBuffer(PositionUV, data, []uint16{0, 1, 2, 0, 2, 3})
	return b
}

// ScreenQuad covers the whole of clip space; used for full-screen shaders.
func ScreenQuad() *Buffer {
	data := []float32{
		-1, -1,
		1, -1,
		1, 1,
		-1, 1,
	}
	b, _ := NewBuffer(Position2, data, []uint16{0, 1, 2, 0, 2, 3})
	return b
}

// Cone returns a cone standing on z=0 with its apex at z=height. Side
// normals are averaged over the facets sharing each vertex, so the side
// shades smoothly; the base cap has its own ring facing -z.
func Cone(segments int, radius, height float32) *Buffer {
	if segments < 3 {
		segments = 3
	}
	n := uint16(segments)
	r := float64(radius)
	ring := func(i int) mathutil.Vec3 {
		a := 2 * math.Pi * float64(i) / float64(segments)
		return mathutil.Vec3{r * math.Cos(a), r * math.Sin(a), 0}
	}

	// side ring 0..n-1, apex n, cap centre n+1, cap ring n+2..2n+1
	pts := make([]mathutil.Vec3, 0, 2*segments+2)
	for i := 0; i < segments; i++ {
		pts = append(pts, ring(i))
	}
	pts = append(pts, mathutil.Vec3{0, 0, float64(height)}, mathutil.Vec3{})
	for i := 0; i < segments; i++ {
		pts = append(pts, ring(i))
	}

	faces := make([][3]uint16, 0, 2*segments)
	for i := uint16(0); i < n; i++ {
		faces = append(faces, [3]uint16{i, (i + 1) % n, n})
	}
	for i := uint16(0); i < n; i++ {
		faces = append(faces, [3]uint16{n + 1, n + 2 + (i+1)%n, n + 2 + i})
	}

	buf, _ := FromFaces(pts, faces)
	return buf
}
