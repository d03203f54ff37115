package mathutil

// Vec4 is a homogeneous row vector.
type Vec4 [4]float64

// MulMat4 returns the row vector v · m.
func (v Vec4) MulMat4(m Mat4) Vec4 {
	var r Vec4
	for c := 0; c < 4; c++ {
		r[c] = v[0]*m[0*4+c] + v[1]*m[1*4+c] + v[2]*m[2*4+c] + v[3]*m[3*4+c]
	}
	return r
}

// XYZ drops the w component without dividing.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}
