package shader

import (
	"image/color"
	"math"

	"pi-demo-renderer/internal/mathutil"
	"pi-demo-renderer/internal/mesh"
)

// Fractal modes selected by the "julia" uniform.
const (
	Mandelbrot = 0
	Julia      = 1
)

// DefaultIterations bounds the escape-time loop when "iterations" is unset.
const DefaultIterations = 64

// Fractal renders an escape-time Mandelbrot or Julia set over a full-screen
// quad in clip space.
//
// Uniforms: "offset" (centre of the view in the complex plane), "scale"
// (half-height of the view), "c" (Julia constant), "julia" (mode),
// "iterations", "aspect" (width/height).
type Fractal struct{}

func (Fractal) Name() string { return "fractal" }

func (Fractal) Attributes() []Attribute {
	return []Attribute{{mesh.AttrPosition, 2}}
}

func (Fractal) Uniforms() []string {
	return []string{"offset", "scale", "c", "julia", "iterations", "aspect"}
}

func (Fractal) Varyings() int { return 2 }

func (Fractal) Vertex(attrs [][]float32, u *Uniforms, out []float64) mathutil.Vec4 {
	x, y := float64(attrs[0][0]), float64(attrs[0][1])
	out[0], out[1] = x, y
	// depth 0.5 keeps the quad inside the [0,1] clip range
	return mathutil.Vec4{x, y, 0.5, 1}
}

func (Fractal) Fragment(in []float64, u *Uniforms) (color.NRGBA, bool) {
	scale := u.Float("scale")
	if scale == 0 {
		scale = 1.5
	}
	aspect := u.Float("aspect")
	if aspect == 0 {
		aspect = 1
	}
	off := u.Vec3("offset")
	p := complex(off[0]+in[0]*scale*aspect, off[1]+in[1]*scale)

	maxIter := int(u.Float("iterations"))
	if maxIter <= 0 {
		maxIter = DefaultIterations
	}

	var z, c complex128
	if int(u.Float("julia")) == Julia {
		jc := u.Vec3("c")
		z, c = p, complex(jc[0], jc[1])
	} else {
		z, c = 0, p
	}
	n, escaped := Escape(z, c, maxIter)
	if !escaped {
		return color.NRGBA{0, 0, 0, 255}, true
	}
	return Palette(n / float64(maxIter)), true
}

// Escape iterates z = z² + c and returns a smoothed iteration count and
// whether |z| exceeded 2 within maxIter steps.
func Escape(z, c complex128, maxIter int) (float64, bool) {
	for i := 0; i < maxIter; i++ {
		z = z*z + c
		re, im := real(z), imag(z)
		if m := re*re + im*im; m > 4 {
			// continuous colouring
			nu := math.Log2(math.Log2(m) / 2)
			return math.Max(float64(i)+1-nu, 0), true
		}
	}
	return float64(maxIter), false
}

// Palette maps t in [0,1] to a cosine gradient.
func Palette(t float64) color.NRGBA {
	ch := func(phase float64) uint8 {
		return clamp255((0.5 + 0.5*math.Cos(2*math.Pi*(t+phase))) * 255)
	}
	return color.NRGBA{ch(0.0), ch(0.33), ch(0.67), 255}
}
