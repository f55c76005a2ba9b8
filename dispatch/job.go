package dispatch

import (
	"sync"

	mandel "github.com/marben/tiled_mandel"
)

// Job renders one view on first request and hands the same finished buffer
// to every caller afterwards. Callers must treat the buffer as read-only.
type Job struct {
	Window   mandel.Window
	Workers  int
	Renderer mandel.Renderer

	once sync.Once
	buf  *mandel.Buffer
	err  error
}

var _ mandel.ImgProvider = (*Job)(nil)

// GetImage implements mandel.ImgProvider.
// Concurrent callers block until the single render completes. All returned
// buffers share one pixel slice.
func (j *Job) GetImage() (mandel.Buffer, error) {
	j.once.Do(func() {
		j.buf, j.err = Render(j.Window, j.Workers, j.Renderer)
	})
	if j.err != nil {
		return mandel.Buffer{}, j.err
	}
	return *j.buf, nil
}
