// Package dispatch splits an image into one tile per worker, computes the
// tiles concurrently and waits for all of them.
//
// Workers share the pixel buffer without locking; every worker owns a
// disjoint tile, and the only synchronization is the final join.
package dispatch

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	mandel "github.com/marben/tiled_mandel"
)

var (
	ErrUnsupportedWorkers = errors.New("unsupported worker count")
	ErrTooSmall           = errors.New("image too small to partition")
	ErrBufferMismatch     = errors.New("buffer does not match window")
	ErrNilRenderer        = errors.New("nil renderer")
)

// SupportedWorkers lists the worker counts Partition accepts.
var SupportedWorkers = []int{1, 2, 4}

// WorkerError reports a tile whose computation panicked.
type WorkerError struct {
	Tile  image.Rectangle
	Cause any
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker for tile %v failed: %v", e.Tile, e.Cause)
}

// Shape returns the grid a worker count is laid out as.
// Two workers split the image into column halves, four into quadrants.
func Shape(workers int) (cols, rows int, err error) {
	switch workers {
	case 1:
		return 1, 1, nil
	case 2:
		return 2, 1, nil
	case 4:
		return 2, 2, nil
	}
	return 0, 0, fmt.Errorf("%w: %d (supported: %v)", ErrUnsupportedWorkers, workers, SupportedWorkers)
}

// Partition splits r into one tile per worker, in row-major order.
// Inner boundaries sit at r.Min + k*size/cells, rounding down.
func Partition(r image.Rectangle, workers int) ([]image.Rectangle, error) {
	cols, rows, err := Shape(workers)
	if err != nil {
		return nil, err
	}

	w := r.Dx()
	h := r.Dy()
	if w < cols || h < rows {
		return nil, fmt.Errorf("%w: %v into %dx%d tiles", ErrTooSmall, r, cols, rows)
	}

	tiles := make([]image.Rectangle, 0, cols*rows)
	for j := 0; j < rows; j++ {
		y0 := r.Min.Y + j*h/rows
		y1 := r.Min.Y + (j+1)*h/rows
		for i := 0; i < cols; i++ {
			x0 := r.Min.X + i*w/cols
			x1 := r.Min.X + (i+1)*w/cols
			tiles = append(tiles, image.Rect(x0, y0, x1, y1))
		}
	}

	return tiles, nil
}

// Run computes every pixel of buf for view w using one goroutine per tile.
// It returns once all workers have finished. A panicking worker fails the
// whole render with a *WorkerError; buf contents are then unspecified.
func Run(buf *mandel.Buffer, w mandel.Window, workers int, renderer mandel.Renderer) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if buf.Rect != image.Rect(0, 0, w.Width, w.Height) {
		return fmt.Errorf("%w: buffer %v, window %dx%d", ErrBufferMismatch, buf.Rect, w.Width, w.Height)
	}
	if err := validateRenderer(renderer); err != nil {
		return err
	}

	tiles, err := Partition(buf.Rect, workers)
	if err != nil {
		return err
	}

	var g errgroup.Group
	for _, tile := range tiles {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &WorkerError{Tile: tile, Cause: r}
				}
			}()
			renderer.RenderTile(buf, w, tile)
			return nil
		})
	}

	return g.Wait()
}

// validateRenderer checks renderer with its own Validate method, if any.
func validateRenderer(renderer mandel.Renderer) error {
	if renderer == nil {
		return ErrNilRenderer
	}
	if v, ok := renderer.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("renderer: %w", err)
		}
	}
	return nil
}

// Render allocates a buffer for w and fills it with Run.
func Render(w mandel.Window, workers int, renderer mandel.Renderer) (*mandel.Buffer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if _, _, err := Shape(workers); err != nil {
		return nil, err
	}
	if err := validateRenderer(renderer); err != nil {
		return nil, err
	}

	buf, err := mandel.NewBuffer(w.Width, w.Height)
	if err != nil {
		return nil, err
	}

	if err := Run(buf, w, workers, renderer); err != nil {
		return nil, err
	}
	return buf, nil
}
