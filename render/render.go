// Package render computes escape-time colors for rectangular pixel regions.
package render

import (
	"image"

	mandel "github.com/marben/tiled_mandel"
	"github.com/marben/tiled_mandel/palette"
)

// RendererImpl colors tiles with a fixed palette.
type RendererImpl struct {
	Table palette.Table

	// OnTileRender, if set, is called with each tile before it is computed.
	OnTileRender func(tile image.Rectangle)
}

var _ mandel.Renderer = RendererImpl{}

// Validate rejects a renderer whose table cannot color any pixel.
func (imp RendererImpl) Validate() error {
	return imp.Table.Validate()
}

// RenderTile writes a color for every pixel of tile and nothing else.
// tile is clipped to the buffer bounds.
func (imp RendererImpl) RenderTile(buf *mandel.Buffer, w mandel.Window, tile image.Rectangle) {
	if imp.OnTileRender != nil {
		imp.OnTileRender(tile)
	}

	tile = tile.Intersect(buf.Rect)
	maxIter := imp.Table.MaxIteration()

	for py := tile.Min.Y; py < tile.Max.Y; py++ {
		row := buf.Row(py)
		for px := tile.Min.X; px < tile.Max.X; px++ {
			re, im := PlaneCoord(w, px, py)
			row[px-buf.Rect.Min.X] = imp.Table.Color(Escape(re, im, maxIter))
		}
	}
}

// PlaneCoord maps pixel (x, y) of w onto the complex plane.
// The pixel axes are centered on the image, scaled by half the extent times
// the zoom, then shifted to the window center.
func PlaneCoord(w mandel.Window, x, y int) (re, im float64) {
	width, height := float64(w.Width), float64(w.Height)
	im = (float64(y)-height/2)/(0.5*w.Zoom*height) + w.CenterY
	re = w.Aspect*(float64(x)-width/2)/(0.5*w.Zoom*width) + w.CenterX
	return re, im
}

// Escape iterates z = z*z + c from z = 0 and returns how many steps z stayed
// within |z| < 2. It returns maxIter for points that never escape.
func Escape(re, im float64, maxIter int) int {
	var zr, zi float64
	for i := 0; i < maxIter; i++ {
		zr, zi = zr*zr-zi*zi+re, 2*zr*zi+im
		if zr*zr+zi*zi >= 4 {
			return i
		}
	}
	return maxIter
}
