package frameloop

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"pi-demo-renderer/internal/input"
)

// Config holds the output side of a headless run.
type Config struct {
	OutputDir string
	Frames    int // 0 runs until the pointer finishes
	Workers   int
	Progress  io.Writer // nil disables progress lines
}

// Result holds the outcome of one frame.
type Result struct {
	Index    int
	File     string
	PointerX float64
	PointerY float64
	Success  bool
	Error    string
}

type job struct {
	index int
	x, y  float64
	img   *image.NRGBA
}

// Run renders frames until the pointer finishes, cfg.Frames is reached or
// ctx is cancelled. Drawing is sequential; encoding runs on cfg.Workers
// goroutines. A draw error stops the run and is returned after in-flight
// frames are written.
func Run(ctx context.Context, cfg Config, r *Renderer, p input.Pointer) ([]Result, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("frameloop: %w", err)
	}

	var encoded atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					n := encoded.Load()
					if n > 0 {
						rate := float64(n) / time.Since(start).Seconds()
						fmt.Fprintf(cfg.Progress, "  [%d frames] %.1f frames/sec\n", n, rate)
					}
				}
			}
		}()
	}

	// Encoder pool
	jobs := make(chan job, cfg.Workers*2)
	var (
		mu      sync.Mutex
		results []Result
		wg      sync.WaitGroup
	)
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res := writeFrame(cfg.OutputDir, j)
				encoded.Add(1)
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
			}
		}()
	}

	var runErr error
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		if p.Finished() || (cfg.Frames > 0 && i >= cfg.Frames) {
			break
		}
		p.Advance()
		x, y := p.Position()
		img, err := r.Step(x, y)
		if err != nil {
			runErr = err
			break
		}
		jobs <- job{index: i, x: x, y: y, img: img}
	}
	close(jobs)

	wg.Wait()
	close(done)

	sort.Slice(results, func(a, b int) bool { return results[a].Index < results[b].Index })
	return results, runErr
}

// FrameName is the file name of frame i inside the output directory.
func FrameName(i int) string {
	return fmt.Sprintf("frame_%05d.webp", i)
}

// createFrame opens a frame file for writing.
var createFrame = func(path string) (io.WriteCloser, error) { return os.Create(path) }

func writeFrame(dir string, j job) Result {
	res := Result{Index: j.index, File: FrameName(j.index), PointerX: j.x, PointerY: j.y}

	f, err := createFrame(filepath.Join(dir, res.File))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	encErr := nativewebp.Encode(f, j.img, nil)
	closeErr := f.Close()
	if encErr != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", encErr)
		return res
	}
	if closeErr != nil {
		res.Error = fmt.Sprintf("close: %v", closeErr)
		return res
	}
	res.Success = true
	return res
}
