package frameloop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pi-demo-renderer/internal/camera"
	"pi-demo-renderer/internal/input"
	"pi-demo-renderer/internal/raster"
	"pi-demo-renderer/internal/scene"
	"pi-demo-renderer/internal/texture"
)

func newRenderer(t *testing.T, name string, ss int) *Renderer {
	t.Helper()
	sc, err := scene.New(name, scene.Options{Iterations: 16, Segments: 8})
	require.NoError(t, err)
	r, err := NewRenderer(sc, 32, 24, ss, texture.NewCache(nil))
	require.NoError(t, err)
	return r
}

func TestRendererStep(t *testing.T) {
	r := newRenderer(t, "quad", 2)
	img, err := r.Step(16, 12)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())
	assert.Equal(t, 1, r.Frames())
	assert.Greater(t, r.Stats().Fragments, 0)
}

func TestNewRendererRejectsSize(t *testing.T) {
	sc, err := scene.New("quad", scene.Options{})
	require.NoError(t, err)
	_, err = NewRenderer(sc, 0, 10, 1, nil)
	assert.Error(t, err)
}

func TestRunWritesFrames(t *testing.T) {
	dir := t.TempDir()
	r := newRenderer(t, "fractal", 1)
	var progress bytes.Buffer

	results, err := Run(context.Background(), Config{OutputDir: dir, Workers: 3, Progress: &progress}, r, input.NewScripted(32, 24, 5))
	require.NoError(t, err)
	require.Len(t, results, 5)
	for i, res := range results {
		assert.Equal(t, i, res.Index)
		assert.True(t, res.Success, res.Error)
	}

	raw, err := os.ReadFile(filepath.Join(dir, FrameName(3)))
	require.NoError(t, err)
	require.Greater(t, len(raw), 12)
	assert.Equal(t, "RIFF", string(raw[:4]))
	assert.Equal(t, "WEBP", string(raw[8:12]))

	manifest := filepath.Join(dir, "manifest.json")
	require.NoError(t, WriteManifest(manifest, "fractal", 32, 24, results))
	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "fractal", m.Scene)
	assert.Len(t, m.Frames, 5)
	assert.Equal(t, "frame_00004.webp", m.Frames[4].Image)
}

func TestRunFrameLimit(t *testing.T) {
	r := newRenderer(t, "cone", 1)
	results, err := Run(context.Background(), Config{OutputDir: t.TempDir(), Frames: 2}, r, &input.Static{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := newRenderer(t, "quad", 1)
	results, err := Run(ctx, Config{OutputDir: t.TempDir()}, r, &input.Static{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

type failing struct{ after int }

func (failing) Name() string { return "failing" }
func (failing) Setup(*raster.Context, *camera.Camera, texture.Resolver) error {
	return nil
}
func (f failing) Draw(fr scene.Frame) error {
	if fr.Index >= f.after {
		return errors.New("boom")
	}
	return nil
}

func TestRunStopsOnDrawError(t *testing.T) {
	r, err := NewRenderer(failing{after: 2}, 8, 8, 1, nil)
	require.NoError(t, err)
	results, err := Run(context.Background(), Config{OutputDir: t.TempDir()}, r, &input.Static{})
	assert.ErrorContains(t, err, "boom")
	assert.Len(t, results, 2)
}

type closeFailer struct{ bytes.Buffer }

func (*closeFailer) Close() error { return errors.New("disk full") }

func TestWriteFrameReportsCloseError(t *testing.T) {
	orig := createFrame
	t.Cleanup(func() { createFrame = orig })
	var w *closeFailer
	createFrame = func(string) (io.WriteCloser, error) {
		w = &closeFailer{}
		return w, nil
	}

	res := writeFrame(t.TempDir(), job{index: 3, img: image.NewNRGBA(image.Rect(0, 0, 4, 4))})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "disk full")
	assert.Equal(t, "frame_00003.webp", res.File)
	assert.Greater(t, w.Len(), 0, "frame was encoded before close")
}
