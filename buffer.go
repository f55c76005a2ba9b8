package mandel

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/marben/tiled_mandel/palette"
)

// MaxPixels caps the size of a single buffer.
const MaxPixels = 1 << 28

var ErrAlloc = errors.New("pixel buffer allocation")

// Renderer fills the pixels of tile in buf for the view w.
// Implementations must not touch pixels outside tile.
type Renderer interface {
	RenderTile(buf *Buffer, w Window, tile image.Rectangle)
}

// Buffer is an in-memory image of packed RGB565 pixels, row-major, top row first.
//
// Concurrent writers are safe as long as they write disjoint pixels.
type Buffer struct {
	Pix    []palette.RGB565
	Stride int
	Rect   image.Rectangle
}

// NewBuffer allocates a buffer of w x h pixels with its origin at (0, 0).
func NewBuffer(w, h int) (*Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrAlloc, w, h)
	}
	if h > MaxPixels/w {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAlloc, w, h, MaxPixels)
	}
	return &Buffer{
		Pix:    make([]palette.RGB565, w*h),
		Stride: w,
		Rect:   image.Rect(0, 0, w, h),
	}, nil
}

func (b *Buffer) ColorModel() color.Model { return palette.Model }

func (b *Buffer) Bounds() image.Rectangle { return b.Rect }

func (b *Buffer) At(x, y int) color.Color {
	return b.RGB565At(x, y)
}

func (b *Buffer) RGB565At(x, y int) palette.RGB565 {
	if !(image.Point{x, y}.In(b.Rect)) {
		return 0
	}
	return b.Pix[b.PixOffset(x, y)]
}

// PixOffset returns the index of the pixel at (x, y) in Pix.
func (b *Buffer) PixOffset(x, y int) int {
	return (y-b.Rect.Min.Y)*b.Stride + (x - b.Rect.Min.X)
}

func (b *Buffer) Set(x, y int, c color.Color) {
	b.SetRGB565(x, y, palette.Model.Convert(c).(palette.RGB565))
}

func (b *Buffer) SetRGB565(x, y int, c palette.RGB565) {
	if !(image.Point{x, y}.In(b.Rect)) {
		return
	}
	b.Pix[b.PixOffset(x, y)] = c
}

// Row returns the pixels of row y, or nil if y is out of bounds.
func (b *Buffer) Row(y int) []palette.RGB565 {
	if y < b.Rect.Min.Y || y >= b.Rect.Max.Y {
		return nil
	}
	i := b.PixOffset(b.Rect.Min.X, y)
	return b.Pix[i : i+b.Rect.Dx()]
}

// Equal reports whether b and o hold the same pixels over the same bounds.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Rect != o.Rect {
		return false
	}
	for y := b.Rect.Min.Y; y < b.Rect.Max.Y; y++ {
		br, or := b.Row(y), o.Row(y)
		for x := range br {
			if br[x] != or[x] {
				return false
			}
		}
	}
	return true
}
