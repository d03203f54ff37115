package mathutil

// LookAt builds the world-to-view transform for a camera at eye looking at at.
//
// With reflect set, eye and at are mirrored across z = ReflectPlaneZ before
// the basis is built: the camera moves, the scene does not.
//
// up must not be parallel to at-eye; the result is then numerically
// degenerate rather than an error.
func LookAt(at, eye, up Vec3, reflect bool) Mat4 {
	if reflect {
		eye = ReflectZ(eye)
		at = ReflectZ(at)
	}

	zAxis := at.Sub(eye).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	// One axis per row, each carrying the translation that takes eye to the
	// origin. Transposed so that (eye,1)·M = (0,0,0,1) with row vectors.
	axes := Mat4{
		xAxis[0], xAxis[1], xAxis[2], -xAxis.Dot(eye),
		yAxis[0], yAxis[1], yAxis[2], -yAxis.Dot(eye),
		zAxis[0], zAxis[1], zAxis[2], -zAxis.Dot(eye),
		0, 0, 0, 1,
	}
	return axes.Transpose()
}
