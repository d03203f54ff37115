package raster

import "image"

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	Depth  []float64 // window-space depth per pixel, len = W*H
}

// NewFrameBuffer allocates a zeroed color buffer and a depth buffer at the
// far value 1.
func NewFrameBuffer(w, h int) *FrameBuffer {
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
		Depth:  make([]float64, w*h),
	}
	fb.ClearDepth(1)
	return fb
}

// ClearColor fills every pixel with c.
func (fb *FrameBuffer) ClearColor(c [4]uint8) {
	for i := 0; i < len(fb.Color); i += 4 {
		copy(fb.Color[i:i+4], c[:])
	}
}

// ClearDepth fills the depth buffer with d.
func (fb *FrameBuffer) ClearDepth(d float64) {
	for i := range fb.Depth {
		fb.Depth[i] = d
	}
}

// Image copies the color buffer into a new NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
