package raster

import (
	"math"

	"pi-demo-renderer/internal/mathutil"
	"pi-demo-renderer/internal/shader"
)

// clipVertex is a vertex after the vertex stage and the viewport transform.
type clipVertex struct {
	visible bool
	ndcX    float64
	ndcY    float64
	x, y, z float64   // window coordinates and depth
	invW    float64   // 1/w for perspective-correct interpolation
	vary    []float64 // view into Context.varyings
}

// project applies the perspective divide, viewport and depth range. Points
// with w <= 0 or clip z outside [0, w] are marked invisible.
func (c *Context) project(p mathutil.Vec4, vary []float64) clipVertex {
	w := p[3]
	if w <= 1e-9 || p[2] < 0 || p[2] > w {
		return clipVertex{vary: vary}
	}
	invW := 1 / w
	nx, ny, nz := p[0]*invW, p[1]*invW, p[2]*invW

	vp := c.viewport
	return clipVertex{
		visible: true,
		ndcX:    nx,
		ndcY:    ny,
		x:       float64(vp.X) + (nx+1)*0.5*float64(vp.W),
		y:       float64(vp.Y) + (1-ny)*0.5*float64(vp.H),
		z:       c.depthNear + nz*(c.depthFar-c.depthNear),
		invW:    invW,
		vary:    vary,
	}
}

// rasterize fills one triangle with the fragment stage, z-buffer and
// source-over blending.
//
// This is the HOT PATH: the only allocation is the varyings scratch slice.
func (c *Context) rasterize(prog shader.Program, u *shader.Uniforms, v0, v1, v2 *clipVertex) {
	if !v0.visible || !v1.visible || !v2.visible {
		c.stats.Clipped++
		return
	}

	// Orientation in NDC (y up): positive is counter-clockwise.
	area := (v1.ndcX-v0.ndcX)*(v2.ndcY-v0.ndcY) - (v2.ndcX-v0.ndcX)*(v1.ndcY-v0.ndcY)
	if area > -1e-12 && area < 1e-12 {
		return
	}
	if c.cull {
		front := area > 0
		if c.frontFace == CW {
			front = !front
		}
		if !front {
			c.stats.Culled++
			return
		}
	}

	x0, y0 := v0.x, v0.y
	x1, y1 := v1.x, v1.y
	x2, y2 := v2.x, v2.y

	// Bounding box, clamped to viewport and framebuffer
	vp := c.viewport
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))
	minX = max(minX, vp.X, 0)
	minY = max(minY, vp.Y, 0)
	maxX = min(maxX, vp.X+vp.W-1, c.fb.Width-1)
	maxY = min(maxY, vp.Y+vp.H-1, c.fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-12 && det < 1e-12 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	nvar := len(v0.vary)
	vary := make([]float64, nvar)
	size := c.fb.Width

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * size
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -1e-9 || w1 < -1e-9 || w2 < -1e-9 {
				continue
			}

			z := w0*v0.z + w1*v1.z + w2*v2.z
			zIdx := rowOff + sx
			if c.depthTest && z >= c.fb.Depth[zIdx] {
				continue
			}

			// perspective-correct varyings
			p0, p1, p2 := w0*v0.invW, w1*v1.invW, w2*v2.invW
			norm := 1 / (p0 + p1 + p2)
			for k := 0; k < nvar; k++ {
				vary[k] = (p0*v0.vary[k] + p1*v1.vary[k] + p2*v2.vary[k]) * norm
			}

			col, keep := prog.Fragment(vary, u)
			if !keep {
				continue
			}
			if c.depthTest {
				c.fb.Depth[zIdx] = z
			}

			px := zIdx * 4
			if col.A == 255 {
				c.fb.Color[px] = col.R
				c.fb.Color[px+1] = col.G
				c.fb.Color[px+2] = col.B
				c.fb.Color[px+3] = 255
			} else {
				a := float64(col.A) / 255
				c.fb.Color[px] = blend(c.fb.Color[px], col.R, a)
				c.fb.Color[px+1] = blend(c.fb.Color[px+1], col.G, a)
				c.fb.Color[px+2] = blend(c.fb.Color[px+2], col.B, a)
				c.fb.Color[px+3] = clamp255(float64(col.A) + float64(c.fb.Color[px+3])*(1-a))
			}
			c.stats.Fragments++
		}
	}
}

func blend(dst, src uint8, a float64) uint8 {
	return clamp255(float64(src)*a + float64(dst)*(1-a))
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
