// Package postprocess turns a supersampled render target into the output frame.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample resamples a supersampled frame to w×h. Filtering runs on
// premultiplied colour so transparent background pixels do not bleed dark
// fringes into the edges of drawn geometry. A frame already within w×h is
// returned as is.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(scaled, scaled.Rect, premultiply(img), b, draw.Src, nil)
	return unpremultiply(scaled)
}

func premultiply(src *image.NRGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	row := 4 * src.Rect.Dx()
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		s := src.Pix[src.PixOffset(src.Rect.Min.X, y):][:row]
		d := dst.Pix[dst.PixOffset(src.Rect.Min.X, y):][:row]
		for i := 0; i < row; i += 4 {
			a := uint32(s[i+3])
			d[i] = uint8((uint32(s[i])*a + 127) / 255)
			d[i+1] = uint8((uint32(s[i+1])*a + 127) / 255)
			d[i+2] = uint8((uint32(s[i+2])*a + 127) / 255)
			d[i+3] = s[i+3]
		}
	}
	return dst
}

// unpremultiply leaves pixels with alpha <= 1 black.
func unpremultiply(src *image.RGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	for i := 0; i+3 < len(src.Pix); i += 4 {
		a := uint32(src.Pix[i+3])
		dst.Pix[i+3] = uint8(a)
		if a <= 1 {
			continue
		}
		for k := 0; k < 3; k++ {
			dst.Pix[i+k] = unscale(uint32(src.Pix[i+k]), a)
		}
	}
	return dst
}

func unscale(c, a uint32) uint8 {
	v := (c*255 + a/2) / a
	if v > 255 {
		return 255
	}
	return uint8(v)
}
