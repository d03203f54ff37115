package mathutil

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrBadClipRange = errors.New("mathutil: projection requires far > near > 0")
	ErrBadFOV       = errors.New("mathutil: field of view must be in (0, pi)")
)

// Projection builds a row-vector perspective matrix from clip distances and
// horizontal/vertical field of view (radians).
//
// Clip-space z runs from 0 at near to 1 at far (after the divide), not the
// OpenGL [-1,1] range; the raster context's depth range must match.
func Projection(near, far, fovH, fovV float64) Mat4 {
	w := 1 / math.Tan(fovH/2)
	h := 1 / math.Tan(fovV/2)
	q := far / (far - near)
	return Mat4{
		w, 0, 0, 0,
		0, h, 0, 0,
		0, 0, q, 1,
		0, 0, -q * near, 0,
	}
}

// ProjectionChecked is Projection with its preconditions enforced.
func ProjectionChecked(near, far, fovH, fovV float64) (Mat4, error) {
	if !(near > 0 && far > near) {
		return Mat4{}, fmt.Errorf("%w (near=%g far=%g)", ErrBadClipRange, near, far)
	}
	for _, f := range []float64{fovH, fovV} {
		if !(f > 0 && f < math.Pi) {
			return Mat4{}, fmt.Errorf("%w (got %g)", ErrBadFOV, f)
		}
	}
	return Projection(near, far, fovH, fovV), nil
}
