package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownsampleSolid(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{120, 60, 30, 255})
		}
	}
	dst := Downsample(src, 4, 3)
	assert.Equal(t, image.Rect(0, 0, 4, 3), dst.Bounds())
	got := dst.NRGBAAt(2, 1)
	assert.InDelta(t, 120, int(got.R), 1)
	assert.InDelta(t, 60, int(got.G), 1)
	assert.Equal(t, uint8(255), got.A)
}

func TestDownsampleNoop(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	assert.Same(t, src, Downsample(src, 4, 4))
}

func TestDownsampleTransparentEdge(t *testing.T) {
	// half transparent black, half opaque white: no dark fringe expected
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 4; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	dst := Downsample(src, 4, 4)
	for x := 0; x < 4; x++ {
		c := dst.NRGBAAt(x, 2)
		if c.A > 1 {
			assert.GreaterOrEqual(t, int(c.R), 250, "x=%d", x)
		}
	}
}

func TestDownsampleSubImage(t *testing.T) {
	full := image.NewNRGBA(image.Rect(0, 0, 12, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			c := color.NRGBA{0, 0, 255, 255}
			if x >= 4 && y >= 4 {
				c = color.NRGBA{200, 100, 0, 255}
			}
			full.SetNRGBA(x, y, c)
		}
	}
	sub := full.SubImage(image.Rect(4, 4, 12, 12)).(*image.NRGBA)
	dst := Downsample(sub, 4, 4)
	assert.Equal(t, image.Rect(0, 0, 4, 4), dst.Bounds())
	got := dst.NRGBAAt(1, 1)
	assert.InDelta(t, 200, int(got.R), 2)
	assert.InDelta(t, 0, int(got.B), 2)
}

func TestUnpremultiplyDropsNearTransparent(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	copy(src.Pix, []uint8{1, 1, 1, 1, 64, 32, 0, 128})
	dst := unpremultiply(src)
	assert.Equal(t, color.NRGBA{0, 0, 0, 1}, dst.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{128, 64, 0, 128}, dst.NRGBAAt(1, 0))
}
