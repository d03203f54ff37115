package mathutil

import "math"

// DegToRad is the factor used for every degree-valued angle.
const DegToRad = math.Pi / 180

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * DegToRad
}

// RotZ returns a row-vector rotation around the Z axis:
// (1,0,0) · RotZ(π/2) = (0,1,0).
func RotZ(a float64) Mat4 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}
