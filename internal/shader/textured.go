package shader

import (
	"image/color"

	"pi-demo-renderer/internal/mathutil"
	"pi-demo-renderer/internal/mesh"
	"pi-demo-renderer/internal/texture"
)

// Textured draws geometry with a bilinear-filtered texture.
//
// Uniforms: "mvp" (object transform), "tex" (texture). Texels with
// alpha below 8 are discarded.
type Textured struct{}

func (Textured) Name() string { return "textured" }

func (Textured) Attributes() []Attribute {
	return []Attribute{{mesh.AttrPosition, 3}, {mesh.AttrUV, 2}}
}

func (Textured) Uniforms() []string { return []string{"mvp", "tex"} }

func (Textured) Varyings() int { return 2 }

func (Textured) Vertex(attrs [][]float32, u *Uniforms, out []float64) mathutil.Vec4 {
	pos, uv := attrs[0], attrs[1]
	out[0], out[1] = float64(uv[0]), float64(uv[1])
	p := mathutil.Vec4{float64(pos[0]), float64(pos[1]), float64(pos[2]), 1}
	return p.MulMat4(u.Matrix("mvp"))
}

func (Textured) Fragment(in []float64, u *Uniforms) (color.NRGBA, bool) {
	tex := u.Texture("tex")
	if tex == nil {
		return color.NRGBA{255, 0, 255, 255}, true
	}
	r, g, b, a := texture.SampleBilinear(tex, in[0], in[1])
	if a < 8 {
		return color.NRGBA{}, false
	}
	return color.NRGBA{r, g, b, a}, true
}
