package shader

import (
	"image/color"

	"pi-demo-renderer/internal/mathutil"
	"pi-demo-renderer/internal/mesh"
)

// Lit shades a solid-colored mesh with LightConfig.
//
// Uniforms: "mvp", "model" (object-to-world, used for normals),
// "color" (sRGB 0..1), "tint" (per-channel multiplier; zero means none).
type Lit struct {
	Light LightConfig
}

// NewLit returns a Lit program with the default lights.
func NewLit() *Lit {
	return &Lit{Light: DefaultLightConfig()}
}

func (*Lit) Name() string { return "lit" }

func (*Lit) Attributes() []Attribute {
	return []Attribute{{mesh.AttrPosition, 3}, {mesh.AttrNormal, 3}}
}

func (*Lit) Uniforms() []string { return []string{"mvp", "model", "color", "tint"} }

func (*Lit) Varyings() int { return 3 }

func (*Lit) Vertex(attrs [][]float32, u *Uniforms, out []float64) mathutil.Vec4 {
	pos, nrm := attrs[0], attrs[1]
	n := mathutil.Vec3{float64(nrm[0]), float64(nrm[1]), float64(nrm[2])}
	n = n.MulMat3(mathutil.NormalMatrix(u.Matrix("model")))
	out[0], out[1], out[2] = n[0], n[1], n[2]
	p := mathutil.Vec4{float64(pos[0]), float64(pos[1]), float64(pos[2]), 1}
	return p.MulMat4(u.Matrix("mvp"))
}

func (l *Lit) Fragment(in []float64, u *Uniforms) (color.NRGBA, bool) {
	n := mathutil.Vec3{in[0], in[1], in[2]}.Normalize()
	c := u.Vec3("color")
	base := color.NRGBA{clamp255(c[0] * 255), clamp255(c[1] * 255), clamp255(c[2] * 255), 255}
	out := l.Light.Apply(base, l.Light.Shade(n))
	if t := u.Vec3("tint"); t != (mathutil.Vec3{}) {
		out.R = clamp255(float64(out.R) * t[0])
		out.G = clamp255(float64(out.G) * t[1])
		out.B = clamp255(float64(out.B) * t[2])
	}
	return out, true
}
