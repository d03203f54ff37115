//go:build cgo

package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"pi-demo-renderer/internal/frameloop"
)

// cursor is the window's pointer: the mouse position in frame pixels,
// finished once Escape is pressed.
type cursor struct {
	x, y     float64
	finished bool
}

func (c *cursor) Advance() {
	x, y := ebiten.CursorPosition()
	c.x, c.y = float64(x), float64(y)
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		c.finished = true
	}
}

func (c *cursor) Position() (float64, float64) { return c.x, c.y }
func (c *cursor) Finished() bool               { return c.finished }

// runWindow shows the scene in a desktop window and blocks until it closes.
func runWindow(r *frameloop.Renderer) error {
	g := &demoGame{r: r}
	ebiten.SetWindowTitle("pidemo: " + r.Scene.Name())
	ebiten.SetWindowSize(r.Width*2, r.Height*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type demoGame struct {
	r       *frameloop.Renderer
	pointer cursor
	frame   *image.NRGBA
	fbImg   *ebiten.Image
}

func (g *demoGame) Update() error {
	g.pointer.Advance()
	if g.pointer.Finished() {
		return ebiten.Termination
	}
	img, err := g.r.Step(g.pointer.Position())
	if err != nil {
		return err
	}
	g.frame = img
	return nil
}

func (g *demoGame) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		return
	}
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(g.r.Width, g.r.Height)
	}
	// NRGBA frames are opaque, so the premultiplied upload matches.
	g.fbImg.WritePixels(g.frame.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *demoGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.r.Width, g.r.Height
}
