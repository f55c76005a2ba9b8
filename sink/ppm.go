package sink

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"

	"github.com/marben/tiled_mandel/palette"
)

// PPM writes the plain-text P3 variant with 8 bit channels.
type PPM struct{}

func (PPM) Ext() string { return ".ppm" }

func (PPM) Encode(w io.Writer, img image.Image) error {
	bw := bufio.NewWriter(w)
	b := img.Bounds()

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return fmt.Errorf("ppm header: %w", err)
	}

	line := make([]byte, 0, len("255 255 255\n"))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl := channels(img, x, y)
			line = strconv.AppendUint(line[:0], uint64(r), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(g), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(bl), 10)
			line = append(line, '\n')
			if _, err := bw.Write(line); err != nil {
				return fmt.Errorf("ppm pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ppm flush: %w", err)
	}
	return nil
}

// channels returns 8 bit red, green and blue for the pixel at (x, y).
// Packed pixels are expanded by bit shifting, others are truncated.
func channels(img image.Image, x, y int) (r, g, b uint8) {
	if c, ok := img.At(x, y).(palette.RGB565); ok {
		return c.RGB()
	}
	r32, g32, b32, _ := img.At(x, y).RGBA()
	return uint8(r32 >> 8), uint8(g32 >> 8), uint8(b32 >> 8)
}
