package palette

import (
	"errors"
	"image/color"
	"testing"
)

func TestReferenceTable(t *testing.T) {
	if got := len(Reference); got != 143 {
		t.Fatalf("unexpected table length: got=%d want=143", got)
	}
	if got := Reference.MaxIteration(); got != 142 {
		t.Fatalf("unexpected max iteration: got=%d want=142", got)
	}
	if err := Reference.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if got := Reference.InSet(); got != 0x0000 {
		t.Fatalf("unexpected in-set color: got=%#04x want=0x0000", uint16(got))
	}
}

func TestColorLookup(t *testing.T) {
	tests := []struct {
		i    int
		want RGB565
	}{
		{0, 0xf7df},
		{1, 0xff5a},
		{140, 0xffe0},
		{141, 0x9e66},
		{142, 0x0000},
		{143, 0x0000},
		{-1, 0xf7df},
	}
	for _, tt := range tests {
		if got := Reference.Color(tt.i); got != tt.want {
			t.Errorf("Color(%d): got=%#04x want=%#04x", tt.i, uint16(got), uint16(tt.want))
		}
	}
}

func TestEmptyTable(t *testing.T) {
	if err := (Table{}).Validate(); !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("expected ErrEmptyTable, got %v", err)
	}
	if err := (Table{0x0000}).Validate(); err != nil {
		t.Fatalf("single entry table should be valid: %v", err)
	}
}

func TestRGBExpansion(t *testing.T) {
	tests := []struct {
		c       RGB565
		r, g, b uint8
	}{
		{0x0000, 0, 0, 0},
		{0xffff, 248, 252, 248},
		{0xf800, 248, 0, 0},
		{0x07e0, 0, 252, 0},
		{0x001f, 0, 0, 248},
		{0x895c, 136, 40, 224},
	}
	for _, tt := range tests {
		r, g, b := tt.c.RGB()
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("%#04x.RGB(): got=(%d,%d,%d) want=(%d,%d,%d)", uint16(tt.c), r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestModelRoundTrip(t *testing.T) {
	for _, c := range Reference {
		r, g, b := c.RGB()
		got := Model.Convert(color.RGBA{R: r, G: g, B: b, A: 0xff})
		if got != c {
			t.Fatalf("Model.Convert(%#04x expanded): got=%v", uint16(c), got)
		}
	}
}
