package sink

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	mandel "github.com/marben/tiled_mandel"
	"github.com/marben/tiled_mandel/palette"
)

func testBuffer(t *testing.T) *mandel.Buffer {
	t.Helper()
	buf, err := mandel.NewBuffer(3, 2)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	copy(buf.Pix, []palette.RGB565{0xf800, 0x07e0, 0x001f, 0xffff, 0x0000, 0x895c})
	return buf
}

const wantPPM = "P3\n3 2\n255\n" +
	"248 0 0\n" +
	"0 252 0\n" +
	"0 0 248\n" +
	"248 252 248\n" +
	"0 0 0\n" +
	"136 40 224\n"

func TestPPMEncode(t *testing.T) {
	var out bytes.Buffer
	if err := (PPM{}).Encode(&out, testBuffer(t)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got := out.String(); got != wantPPM {
		t.Fatalf("unexpected ppm output:\n%s\nwant:\n%s", got, wantPPM)
	}
}

func TestPPMEncodeForeignImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Pix[0], img.Pix[1], img.Pix[2], img.Pix[3] = 1, 2, 3, 255

	var out bytes.Buffer
	if err := (PPM{}).Encode(&out, img); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got, want := out.String(), "P3\n1 1\n255\n1 2 3\n"; got != want {
		t.Fatalf("unexpected output: %q want %q", got, want)
	}
}

func TestPNGEncode(t *testing.T) {
	buf := testBuffer(t)
	var out bytes.Buffer
	if err := (PNG{}).Encode(&out, buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if img.Bounds() != buf.Rect {
		t.Fatalf("unexpected bounds: %v", img.Bounds())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			wr, wg, wb, _ := buf.At(x, y).RGBA()
			gr, gg, gb, _ := img.At(x, y).RGBA()
			if wr>>8 != gr>>8 || wg>>8 != gg>>8 || wb>>8 != gb>>8 {
				t.Fatalf("pixel (%d,%d) mismatch", x, y)
			}
		}
	}
}

func TestZstdEncode(t *testing.T) {
	var out bytes.Buffer
	if err := (Zstd{Inner: PPM{}}).Encode(&out, testBuffer(t)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	dec, err := zstd.NewReader(&out)
	if err != nil {
		t.Fatalf("zstd.NewReader failed: %v", err)
	}
	defer dec.Close()

	raw, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if string(raw) != wantPPM {
		t.Fatalf("unexpected decompressed output: %q", raw)
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		ext  string
	}{
		{"out.ppm", ".ppm"},
		{"dir/OUT.PNG", ".png"},
		{"mandel.ppm.zst", ".ppm.zst"},
		{"a.b/mandel.png.zst", ".png.zst"},
	}
	for _, tt := range tests {
		s, err := ForPath(tt.path)
		if err != nil {
			t.Fatalf("ForPath(%q) failed: %v", tt.path, err)
		}
		if s.Ext() != tt.ext {
			t.Errorf("ForPath(%q): got ext %q want %q", tt.path, s.Ext(), tt.ext)
		}
	}

	for _, p := range []string{"out", "out.jpg", "out.zst", "out.gif.zst"} {
		if _, err := ForPath(p); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("ForPath(%q): expected ErrUnknownFormat, got %v", p, err)
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ppm")
	if err := WriteFile(path, testBuffer(t)); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != wantPPM {
		t.Fatalf("unexpected file content: %q", data)
	}
}

func TestWriteFileFailure(t *testing.T) {
	buf := testBuffer(t)
	before := append([]palette.RGB565(nil), buf.Pix...)

	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "out.png")
	err := WriteFile(missing, buf)
	var se *Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *sink.Error, got %v", err)
	}
	if se.Path != missing {
		t.Fatalf("unexpected error path: %q", se.Path)
	}

	err = WriteFile("out.bmp", buf)
	if !errors.As(err, &se) || !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected wrapped ErrUnknownFormat, got %v", err)
	}

	for i := range before {
		if buf.Pix[i] != before[i] {
			t.Fatalf("failed write modified the buffer")
		}
	}

	// the same buffer can be written elsewhere afterwards
	if err := WriteFile(filepath.Join(t.TempDir(), "retry.png"), buf); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodeWriterFailure(t *testing.T) {
	for _, s := range []Sink{PPM{}, PNG{}, Zstd{Inner: PNG{}}} {
		if err := s.Encode(failWriter{}, testBuffer(t)); err == nil {
			t.Errorf("%T: expected error from failing writer", s)
		}
	}
}
