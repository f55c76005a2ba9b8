package sink

import (
	"image"
	"image/png"
	"io"
)

// PNG writes lossless PNG.
type PNG struct{}

func (PNG) Ext() string { return ".png" }

func (PNG) Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
