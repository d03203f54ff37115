package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pi-demo-renderer/internal/mathutil"
)

func TestNewBufferValidates(t *testing.T) {
	_, err := NewBuffer(PositionUV, make([]float32, 7), nil)
	assert.ErrorIs(t, err, ErrBadStride)

	_, err = NewBuffer(PositionUV, make([]float32, 10), []uint16{0, 1, 2})
	assert.ErrorIs(t, err, ErrIndexRange)

	_, err = NewBuffer(Layout{{"a", 2}, {"a", 2}}, nil, nil)
	assert.ErrorIs(t, err, ErrBadLayout)

	_, err = NewBuffer(Layout{}, nil, nil)
	assert.ErrorIs(t, err, ErrBadLayout)

	_, err = NewBuffer(PositionUV, make([]float32, 10), []uint16{0, 1})
	assert.Error(t, err)
}

func TestLayoutOffsets(t *testing.T) {
	assert.Equal(t, 5, PositionUV.Stride())
	assert.Equal(t, 0, PositionUV.Offset(AttrPosition))
	assert.Equal(t, 3, PositionUV.Offset(AttrUV))
	assert.Equal(t, -1, PositionUV.Offset(AttrNormal))
	assert.Equal(t, 2, PositionUV.Size(AttrUV))
}

func TestQuad(t *testing.T) {
	q := Quad(2)
	require.NotNil(t, q)
	assert.Equal(t, 4, q.VertexCount())
	assert.Equal(t, 2, q.Triangles())
	assert.Equal(t, []float32{1, 1, 0, 1, 0}, q.Vertex(2))
}

func TestConeGeometry(t *testing.T) {
	const segs = 12
	c := Cone(segs, 10, 30)
	require.NotNil(t, c)
	assert.Equal(t, 2*segs+2, c.VertexCount())
	assert.Equal(t, segs*2, c.Triangles())

	for i := 0; i < c.VertexCount(); i++ {
		v := c.Vertex(i)
		n := v[3]*v[3] + v[4]*v[4] + v[5]*v[5]
		assert.InDelta(t, 1, n, 1e-3, "normal %d", i)
		assert.True(t, v[2] == 0 || v[2] == 30)
	}

	// apex points straight up, side ring leans outward, cap faces down
	apex := c.Vertex(segs)
	assert.InDelta(t, 1, apex[5], 1e-3)
	side := c.Vertex(0)
	assert.Greater(t, side[3], float32(0))
	assert.Greater(t, side[5], float32(0))
	bottom := c.Vertex(segs + 2)
	assert.InDelta(t, -1, bottom[5], 1e-3)
}

func TestFromFacesAveragesNormals(t *testing.T) {
	// two faces folded along the x axis: one in z=0, one in y=0
	pts := []mathutil.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {5, 5, 5},
	}
	faces := [][3]uint16{
		{0, 1, 2}, // normal +z
		{0, 3, 1}, // normal +y
	}
	b, err := FromFaces(pts, faces)
	require.NoError(t, err)
	assert.Equal(t, 5, b.VertexCount())
	assert.Equal(t, []uint16{0, 1, 2, 0, 3, 1}, b.Indices)

	s := float32(1 / math.Sqrt2)
	shared := b.Vertex(0)
	assert.InDelta(t, 0, shared[3], 1e-3)
	assert.InDelta(t, s, shared[4], 1e-3)
	assert.InDelta(t, s, shared[5], 1e-3)

	only := b.Vertex(2)
	assert.InDelta(t, 1, only[5], 1e-3)

	unused := b.Vertex(4)
	assert.Equal(t, []float32{5, 5, 5, 0, 0, 0.01}, unused)
}

func TestFromFacesRejectsBadIndex(t *testing.T) {
	_, err := FromFaces([]mathutil.Vec3{{0, 0, 0}}, [][3]uint16{{0, 1, 2}})
	assert.ErrorIs(t, err, ErrIndexRange)
}

func TestConeClampsSegments(t *testing.T) {
	c := Cone(1, 1, 1)
	assert.Equal(t, 3*2, c.Triangles())
}
