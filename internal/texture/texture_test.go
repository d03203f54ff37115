package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestCheckerboard(t *testing.T) {
	img := Checkerboard(8, 2, [4]uint8{255, 255, 255, 255}, [4]uint8{0, 0, 0, 255})
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, img.NRGBAAt(4, 0))
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, img.NRGBAAt(4, 4))
}

func TestSampleBilinear(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{200, 100, 50, 255})

	r, g, b, a := SampleBilinear(img, 0, 0)
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, [4]uint8{r, g, b, a})

	r, g, b, _ = SampleBilinear(img, 0.5, 0)
	assert.Equal(t, [3]uint8{100, 50, 25}, [3]uint8{r, g, b})

	// wraps
	r1, _, _, _ := SampleBilinear(img, 1.5, 0)
	assert.Equal(t, r, r1)
}

func TestIndexAndCache(t *testing.T) {
	dir := t.TempDir()
	src := Checkerboard(4, 2, [4]uint8{10, 20, 30, 255}, [4]uint8{40, 50, 60, 255})
	writePNG(t, filepath.Join(dir, "sub", "Stone.png"), src)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	idx := BuildIndex(dir)
	assert.Equal(t, 1, idx.Len())
	p, ok := idx.ResolvePath(`textures\STONE.jpg`)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "sub", "Stone.png"), p)

	c := NewCache(idx)
	img := c.Resolve("stone")
	require.NotNil(t, img)
	assert.Equal(t, src.Pix, img.Pix)
	assert.Same(t, img, c.Resolve("Stone.png"))
	assert.NoError(t, c.Err("stone"))

	assert.Nil(t, c.Resolve("missing"))
}

func TestDecodeByExtension(t *testing.T) {
	src := Checkerboard(8, 2, [4]uint8{250, 10, 10, 255}, [4]uint8{10, 10, 250, 255})
	encoders := map[string]func(w io.Writer) error{
		".png":  func(w io.Writer) error { return png.Encode(w, src) },
		".jpg":  func(w io.Writer) error { return jpeg.Encode(w, src, &jpeg.Options{Quality: 100}) },
		".gif":  func(w io.Writer) error { return gif.Encode(w, src, nil) },
		".bmp":  func(w io.Writer) error { return bmp.Encode(w, src) },
		".tga":  func(w io.Writer) error { return tga.Encode(w, src) },
		".JPEG": func(w io.Writer) error { return jpeg.Encode(w, src, nil) },
	}
	for ext, enc := range encoders {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, enc(&buf))
			img, err := Decode(buf.Bytes(), ext)
			require.NoError(t, err)
			assert.Equal(t, src.Bounds(), img.Bounds())
			c := img.NRGBAAt(1, 1)
			assert.Greater(t, c.R, c.B, "top-left cell is red")
		})
	}

	_, err := Decode([]byte("x"), ".psd")
	assert.Error(t, err)
}

func TestLoadPNGFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tile.png")
	src := Checkerboard(4, 2, [4]uint8{1, 2, 3, 255}, [4]uint8{4, 5, 6, 255})
	writePNG(t, path, src)

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, img.Pix)
}

func TestCacheRecordsDecodeError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))

	c := NewCache(nil)
	assert.Nil(t, c.Resolve(bad))
	assert.Error(t, c.Err(bad))
}
