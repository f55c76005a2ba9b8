package mandel

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/marben/tiled_mandel/palette"
)

func TestWindowValidate(t *testing.T) {
	if err := Reference.Validate(); err != nil {
		t.Fatalf("reference window rejected: %v", err)
	}

	bad := map[string]func(w *Window){
		"zero width":   func(w *Window) { w.Width = 0 },
		"neg height":   func(w *Window) { w.Height = -1 },
		"zero zoom":    func(w *Window) { w.Zoom = 0 },
		"nan zoom":     func(w *Window) { w.Zoom = math.NaN() },
		"inf zoom":     func(w *Window) { w.Zoom = math.Inf(1) },
		"zero aspect":  func(w *Window) { w.Aspect = 0 },
		"nan center":   func(w *Window) { w.CenterX = math.NaN() },
		"inf center y": func(w *Window) { w.CenterY = math.Inf(-1) },
	}
	for name, mutate := range bad {
		w := Reference
		mutate(&w)
		if err := w.Validate(); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("%s: expected ErrInvalidWindow, got %v", name, err)
		}
	}
}

func TestRegionWindow(t *testing.T) {
	w := SeahorseValley.Window(1920, 1080, 1.5)
	if err := w.Validate(); err != nil {
		t.Fatalf("region window rejected: %v", err)
	}
	if math.Abs(w.CenterX-(-0.75)) > 1e-12 || math.Abs(w.CenterY-0.1) > 1e-12 {
		t.Fatalf("unexpected center: (%v, %v)", w.CenterX, w.CenterY)
	}
	// horizontal extent in the plane is 2*aspect/zoom
	if got := 2 * w.Aspect / w.Zoom; math.Abs(got-0.1) > 1e-12 {
		t.Fatalf("unexpected horizontal extent: got=%v want=0.1", got)
	}
	for name := range Regions {
		if err := Regions[name].Window(64, 64, 1).Validate(); err != nil {
			t.Errorf("region %q: %v", name, err)
		}
	}
}

func TestNewBuffer(t *testing.T) {
	b, err := NewBuffer(3, 2)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	if len(b.Pix) != 6 || b.Stride != 3 || b.Rect != image.Rect(0, 0, 3, 2) {
		t.Fatalf("unexpected layout: len=%d stride=%d rect=%v", len(b.Pix), b.Stride, b.Rect)
	}

	for _, sz := range [][2]int{{0, 1}, {1, 0}, {-2, 3}, {1 << 20, 1 << 20}} {
		if _, err := NewBuffer(sz[0], sz[1]); !errors.Is(err, ErrAlloc) {
			t.Errorf("NewBuffer(%d, %d): expected ErrAlloc, got %v", sz[0], sz[1], err)
		}
	}
}

func TestBufferAccess(t *testing.T) {
	b, err := NewBuffer(4, 3)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	b.SetRGB565(2, 1, 0xf800)
	b.SetRGB565(9, 9, 0xffff) // out of bounds, ignored

	if got := b.RGB565At(2, 1); got != 0xf800 {
		t.Fatalf("unexpected pixel: got=%#04x", uint16(got))
	}
	if got := b.Pix[1*4+2]; got != 0xf800 {
		t.Fatalf("pixel not stored row-major: got=%#04x", uint16(got))
	}
	if got := b.Row(1)[2]; got != 0xf800 {
		t.Fatalf("unexpected row value: got=%#04x", uint16(got))
	}
	if b.Row(3) != nil {
		t.Fatalf("out of range row should be nil")
	}

	r, g, bl, a := b.At(2, 1).RGBA()
	if r != 0xf8f8 || g != 0 || bl != 0 || a != 0xffff {
		t.Fatalf("unexpected At color: %x %x %x %x", r, g, bl, a)
	}

	b.Set(0, 0, palette.RGB565(0x07e0))
	if got := b.RGB565At(0, 0); got != 0x07e0 {
		t.Fatalf("Set did not store color: got=%#04x", uint16(got))
	}
}

func TestBufferEqual(t *testing.T) {
	a, _ := NewBuffer(2, 2)
	b, _ := NewBuffer(2, 2)
	if !a.Equal(b) {
		t.Fatalf("fresh buffers should be equal")
	}
	b.SetRGB565(1, 1, 1)
	if a.Equal(b) {
		t.Fatalf("buffers differ at (1,1)")
	}
	c, _ := NewBuffer(2, 3)
	if a.Equal(c) {
		t.Fatalf("buffers with different bounds should differ")
	}
}
