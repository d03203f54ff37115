package scene

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pi-demo-renderer/internal/camera"
	"pi-demo-renderer/internal/mathutil"
	"pi-demo-renderer/internal/mesh"
	"pi-demo-renderer/internal/raster"
	"pi-demo-renderer/internal/shader"
	"pi-demo-renderer/internal/texture"
)

func render(t *testing.T, name string, opts Options, frames int) *raster.Context {
	t.Helper()
	s, err := New(name, opts)
	require.NoError(t, err)
	assert.Equal(t, name, s.Name())

	rc := raster.NewContext(64, 48)
	cam := camera.New()
	require.NoError(t, s.Setup(rc, cam, texture.NewCache(nil)))
	for i := 0; i < frames; i++ {
		require.NoError(t, s.Draw(Frame{Index: i, RC: rc, Cam: cam, PX: 0.2, PY: -0.1}))
	}
	return rc
}

// distinct counts the different colors in rows [y0, y1).
func distinct(rc *raster.Context, y0, y1 int) int {
	seen := map[[4]uint8]bool{}
	for y := y0; y < y1; y++ {
		for x := 0; x < rc.Width(); x++ {
			c := rc.At(x, y)
			seen[[4]uint8{c.R, c.G, c.B, c.A}] = true
		}
	}
	return len(seen)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"cone", "fractal", "quad"}, Names())

	_, err := New("teapot", Options{})
	assert.ErrorIs(t, err, ErrUnknownScene)
}

func TestQuadScene(t *testing.T) {
	rc := render(t, "quad", Options{}, 2)
	assert.Greater(t, rc.Stats().Fragments, 100)
	assert.Greater(t, distinct(rc, 0, rc.Height()), 2)
}

func TestQuadMissingTexture(t *testing.T) {
	s, err := New("quad", Options{Texture: "nope"})
	require.NoError(t, err)
	err = s.Setup(raster.NewContext(8, 8), camera.New(), texture.NewCache(nil))
	assert.Error(t, err)
}

func TestQuadLoadsPNGTexture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stone.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, texture.Checkerboard(16, 2, [4]uint8{0, 255, 0, 255}, [4]uint8{0, 0, 255, 255})))
	require.NoError(t, f.Close())

	s, err := New("quad", Options{Texture: path})
	require.NoError(t, err)
	assert.NoError(t, s.Setup(raster.NewContext(8, 8), camera.New(), texture.NewCache(nil)))
}

func TestQuadReportsDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0644))

	s, err := New("quad", Options{Texture: path})
	require.NoError(t, err)
	err = s.Setup(raster.NewContext(8, 8), camera.New(), texture.NewCache(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "texture: decode")
	assert.NotContains(t, err.Error(), "not found")
}

func TestConeScene(t *testing.T) {
	rc := render(t, "cone", Options{Segments: 16}, 2)
	st := rc.Stats()
	assert.Greater(t, st.Fragments, 50)
	assert.Greater(t, st.Culled, 0)
	assert.Less(t, st.Culled, st.Triangles)
}

func TestConeReflection(t *testing.T) {
	rc := render(t, "cone", Options{Segments: 16, Reflect: true}, 1)
	split := rc.Height() * 2 / 3
	assert.Greater(t, distinct(rc, 0, split), 2, "scene band")
	assert.Greater(t, distinct(rc, split, rc.Height()), 2, "reflection band")
}

func TestFractalScenes(t *testing.T) {
	m := render(t, "fractal", Options{Iterations: 32}, 1)
	assert.Greater(t, distinct(m, 0, m.Height()), 4)

	j := render(t, "fractal", Options{Julia: true, Iterations: 32}, 1)
	assert.Greater(t, distinct(j, 0, j.Height()), 4)
}

func TestFrontFaceMatchesCamera(t *testing.T) {
	// one triangle wound counter-clockwise as seen from the eye
	data := []float32{
		-40, 0, -20, 0, -1, 0,
		40, 0, -20, 0, -1, 0,
		0, 0, 40, 0, -1, 0,
	}
	buf, err := mesh.NewBuffer(mesh.PositionNormal, data, []uint16{0, 1, 2})
	require.NoError(t, err)
	prog, err := shader.Link(shader.NewLit(), buf.Layout)
	require.NoError(t, err)
	u := shader.NewUniforms(prog.Program)

	for _, flip := range []bool{false, true} {
		rc := raster.NewContext(32, 32)
		rc.CullBackFaces(true)
		rc.Clear()

		cam := camera.New()
		cam.Place(mathutil.Vec3{0, 0, 10}, mathutil.Vec3{0, -100, 10}, mathutil.DefaultUp, false, camera.DefaultLens())
		if flip {
			cam.SetBase(mathutil.Mat4Mul(cam.Base, mathutil.Scaling(1, -1, 1)))
		}
		rc.FrontFace(frontFace(cam))

		cam.BeginMatrix()
		require.NoError(t, u.SetMatrix("mvp", cam.Matrix()))
		require.NoError(t, rc.DrawTriangles(prog, u, buf))
		assert.Equal(t, 0, rc.Stats().Culled, "flip=%v", flip)
		assert.Greater(t, rc.Stats().Fragments, 0, "flip=%v", flip)
	}
}
