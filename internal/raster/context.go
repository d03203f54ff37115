// Package raster is the software graphics context: viewport, depth range,
// clear, triangle drawing through shader programs, and buffer swap.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"pi-demo-renderer/internal/mesh"
	"pi-demo-renderer/internal/shader"
)

var ErrLayoutMismatch = errors.New("raster: program was linked against a different layout")

// Winding selects which screen-space orientation counts as front-facing.
type Winding int

const (
	CCW Winding = iota
	CW
)

// Rect is a viewport in pixels, origin at the top-left of the framebuffer.
type Rect struct {
	X, Y, W, H int
}

// Stats counts work done since the last Clear.
type Stats struct {
	Triangles int // submitted
	Clipped   int // rejected by the near/far planes or w <= 0
	Culled    int
	Fragments int // written
}

// Context is a single-threaded software rendering context.
type Context struct {
	fb         *FrameBuffer
	viewport   Rect
	depthNear  float64
	depthFar   float64
	clearColor [4]uint8
	depthTest  bool
	cull       bool
	frontFace  Winding
	frames     int
	stats      Stats

	// per-draw scratch, reused across calls
	clip     []clipVertex
	varyings []float64
	attrs    [][]float32
}

// NewContext creates a w×h context with a full-size viewport, depth range
// [0,1], depth testing on and back-face culling off.
func NewContext(w, h int) *Context {
	return &Context{
		fb:        NewFrameBuffer(w, h),
		viewport:  Rect{0, 0, w, h},
		depthNear: 0,
		depthFar:  1,
		depthTest: true,
		frontFace: CCW,
	}
}

func (c *Context) Width() int  { return c.fb.Width }
func (c *Context) Height() int { return c.fb.Height }

// Viewport sets the window transform target.
func (c *Context) Viewport(x, y, w, h int) {
	c.viewport = Rect{x, y, w, h}
}

// ViewportRect returns the current viewport.
func (c *Context) ViewportRect() Rect { return c.viewport }

// DepthRange maps clip-space z in [0,1] to window depth [near, far].
func (c *Context) DepthRange(near, far float64) {
	c.depthNear, c.depthFar = near, far
}

// ClearColor sets the color used by Clear.
func (c *Context) ClearColor(r, g, b, a uint8) {
	c.clearColor = [4]uint8{r, g, b, a}
}

// DepthTest toggles the less-than depth test.
func (c *Context) DepthTest(on bool) { c.depthTest = on }

// CullBackFaces toggles back-face culling.
func (c *Context) CullBackFaces(on bool) { c.cull = on }

// FrontFace sets the front-facing winding.
func (c *Context) FrontFace(w Winding) { c.frontFace = w }

// Clear resets color and depth over the whole framebuffer and zeroes Stats.
func (c *Context) Clear() {
	c.fb.ClearColor(c.clearColor)
	c.fb.ClearDepth(1)
	c.stats = Stats{}
}

// ClearDepth resets only the depth buffer; used between passes.
func (c *Context) ClearDepth() {
	c.fb.ClearDepth(1)
}

// Stats returns the counters since the last Clear.
func (c *Context) Stats() Stats { return c.stats }

// Frames returns how many times Swap has been called.
func (c *Context) Frames() int { return c.frames }

// Swap finishes the frame and returns a copy of the color buffer.
func (c *Context) Swap() *image.NRGBA {
	c.frames++
	return c.fb.Image()
}

// At returns the color at (x, y).
func (c *Context) At(x, y int) color.NRGBA {
	i := (y*c.fb.Width + x) * 4
	p := c.fb.Color[i : i+4]
	return color.NRGBA{p[0], p[1], p[2], p[3]}
}

// DrawTriangles runs prog over every triangle in buf.
func (c *Context) DrawTriangles(prog *shader.Linked, u *shader.Uniforms, buf *mesh.Buffer) error {
	if !prog.Compatible(buf.Layout) {
		return fmt.Errorf("%w: %s", ErrLayoutMismatch, prog.Program.Name())
	}

	nv := buf.VertexCount()
	nvar := prog.Program.Varyings()

	if cap(c.clip) < nv {
		c.clip = make([]clipVertex, nv)
	}
	c.clip = c.clip[:nv]
	if cap(c.varyings) < nv*nvar {
		c.varyings = make([]float64, nv*nvar)
	}
	c.varyings = c.varyings[:nv*nvar]

	for i := 0; i < nv; i++ {
		c.attrs = prog.Gather(buf.Vertex(i), c.attrs)
		out := c.varyings[i*nvar : (i+1)*nvar]
		pos := prog.Program.Vertex(c.attrs, u, out)
		c.clip[i] = c.project(pos, out)
	}

	for t := 0; t < buf.Triangles(); t++ {
		c.stats.Triangles++
		i0, i1, i2 := buf.Indices[t*3], buf.Indices[t*3+1], buf.Indices[t*3+2]
		c.rasterize(prog.Program, u, &c.clip[i0], &c.clip[i1], &c.clip[i2])
	}
	return nil
}
