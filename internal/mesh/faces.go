package mesh

import (
	"fmt"

	"pi-demo-renderer/internal/mathutil"
)

// UnusedNormal is the normal given to vertices no face references.
var UnusedNormal = mathutil.Vec3{0, 0, 0.01}

// FromFaces builds a PositionNormal buffer from points and triangles. Each
// vertex normal is the normalized sum of the unit normals of the faces that
// use it; face normals follow cross(b-a, c-a).
func FromFaces(pts []mathutil.Vec3, faces [][3]uint16) (*Buffer, error) {
	sums := make([]mathutil.Vec3, len(pts))
	used := make([]bool, len(pts))
	idx := make([]uint16, 0, len(faces)*3)
	for i, f := range faces {
		for _, v := range f {
			if int(v) >= len(pts) {
				return nil, fmt.Errorf("%w: face %d uses %d, %d points", ErrIndexRange, i, v, len(pts))
			}
		}
		a, b, c := pts[f[0]], pts[f[1]], pts[f[2]]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		for _, v := range f {
			sums[v] = sums[v].Add(n)
			used[v] = true
		}
		idx = append(idx, f[0], f[1], f[2])
	}

	data := make([]float32, 0, len(pts)*6)
	for i, p := range pts {
		n := UnusedNormal
		if used[i] {
			n = sums[i].Normalize()
		}
		data = append(data,
			float32(p[0]), float32(p[1]), float32(p[2]),
			float32(n[0]), float32(n[1]), float32(n[2]))
	}
	return NewBuffer(PositionNormal, data, idx)
}
