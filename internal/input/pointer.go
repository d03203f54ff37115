// Package input provides pointer sources that drive the demos' per-frame
// parameters.
package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrEmptyPath is returned when a recorded pointer file holds no points.
var ErrEmptyPath = errors.New("input: recorded path is empty")

// Pointer is the input collaborator polled once per frame.
type Pointer interface {
	// Advance moves to the next frame's sample.
	Advance()
	// Position returns the pointer in pixels, origin top-left.
	Position() (x, y float64)
	// Finished reports that the session should end.
	Finished() bool
}

// Normalize maps pixel coordinates in a w×h area to [-1,1] with y up.
func Normalize(x, y float64, w, h int) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	nx := x/float64(w)*2 - 1
	ny := 1 - y/float64(h)*2
	return clamp1(nx), clamp1(ny)
}

func clamp1(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// Static reports a fixed position and finishes after Frames advances
// (never when Frames is 0).
type Static struct {
	X, Y   float64
	Frames int
	n      int
}

func (s *Static) Advance()                     { s.n++ }
func (s *Static) Position() (float64, float64) { return s.X, s.Y }
func (s *Static) Finished() bool               { return s.Frames > 0 && s.n >= s.Frames }

// Scripted sweeps a Lissajous figure across a w×h area, one sample per
// frame, and finishes after Frames samples.
type Scripted struct {
	Width, Height int
	Frames        int
	n             int
}

// NewScripted returns a sweep over w×h lasting frames frames.
func NewScripted(w, h, frames int) *Scripted {
	return &Scripted{Width: w, Height: h, Frames: frames, n: -1}
}

func (s *Scripted) Advance() { s.n++ }

func (s *Scripted) Position() (float64, float64) {
	n := max(s.n, 0)
	t := 2 * math.Pi * float64(n) / float64(max(s.Frames, 1))
	x := (0.5 + 0.45*math.Sin(t)) * float64(s.Width)
	y := (0.5 + 0.45*math.Sin(2*t)) * float64(s.Height)
	return x, y
}

func (s *Scripted) Finished() bool {
	return s.Frames > 0 && s.n >= s.Frames-1
}

// Point is one recorded pointer sample.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Recorded replays a list of points, one per frame.
type Recorded struct {
	Points []Point
	n      int
}

// LoadRecorded reads a JSON array of {"x":..,"y":..} points.
func LoadRecorded(path string) (*Recorded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("input: read %s: %w", path, err)
	}
	var pts []Point
	if err := json.Unmarshal(data, &pts); err != nil {
		return nil, fmt.Errorf("input: parse %s: %w", path, err)
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPath, path)
	}
	return &Recorded{Points: pts, n: -1}, nil
}

func (r *Recorded) Advance() { r.n++ }

func (r *Recorded) Position() (float64, float64) {
	if len(r.Points) == 0 {
		return 0, 0
	}
	i := min(max(r.n, 0), len(r.Points)-1)
	return r.Points[i].X, r.Points[i].Y
}

func (r *Recorded) Finished() bool {
	return r.n >= len(r.Points)-1
}
