package shader

import (
	"image/color"
	"math"

	"pi-demo-renderer/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters (world space, Z-up).
type LightConfig struct {
	LightDir  mathutil.Vec3
	RimDir    mathutil.Vec3
	ViewDir   mathutil.Vec3
	HalfMain  mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	SRGBGamma float64
	InvGamma  float64
}

// DefaultLightConfig returns a key light above and in front of the demo
// camera with a cool rim from behind.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{180, -260, 240}.Normalize()
	rimDir := mathutil.Vec3{-160, 210, 130}.Normalize()
	viewDir := mathutil.Vec3{0, 100, -50}.Normalize()

	halfMain := lightDir.Sub(viewDir).Normalize()

	return LightConfig{
		LightDir:  lightDir,
		RimDir:    rimDir,
		ViewDir:   viewDir,
		HalfMain:  halfMain,
		Ambient:   0.35,
		Hemi:      0.40,
		Direct:    1.30,
		Rim:       0.45,
		SpecInt:   0.45,
		SpecPow:   12.0,
		Exposure:  1.05,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
}

// Shade returns the combined lighting scalar for a unit normal.
func (lc *LightConfig) Shade(normal mathutil.Vec3) float64 {
	// Lambertian (abs for double-sided)
	ndlMain := math.Abs(normal.Dot(lc.LightDir))
	ndlRim := math.Abs(normal.Dot(lc.RimDir))

	// Hemisphere fill, brightest on upward faces
	hemi := normal[2]*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	ndh := normal.Dot(lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// Apply lights an sRGB base color: decode, scale by shade, ACES tone map,
// re-encode.
func (lc *LightConfig) Apply(c color.NRGBA, shade float64) color.NRGBA {
	k := shade * lc.Exposure
	return color.NRGBA{
		R: clamp255(math.Pow(ACESTonemap(srgbToLinear[c.R]*k), lc.InvGamma) * 255),
		G: clamp255(math.Pow(ACESTonemap(srgbToLinear[c.G]*k), lc.InvGamma) * 255),
		B: clamp255(math.Pow(ACESTonemap(srgbToLinear[c.B]*k), lc.InvGamma) * 255),
		A: c.A,
	}
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
