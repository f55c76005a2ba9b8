// Package sink serializes finished images to files or streams.
package sink

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Sink encodes a complete image to w.
type Sink interface {
	Encode(w io.Writer, img image.Image) error
	// Ext is the file extension the format is stored under, with the dot.
	Ext() string
}

// Error is returned for every failure to produce output.
// The image being written is never modified, so it can be retried elsewhere.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("sink: %v", e.Err)
	}
	return fmt.Sprintf("sink %q: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ByName returns the sink for a format name such as "png" or "ppm.zst".
func ByName(name string) (Sink, error) {
	base, compressed := strings.CutSuffix(strings.ToLower(name), ".zst")

	var s Sink
	switch base {
	case "ppm":
		s = PPM{}
	case "png":
		s = PNG{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}

	if compressed {
		s = Zstd{Inner: s}
	}
	return s, nil
}

// ForPath picks the sink from the file extension of path.
func ForPath(path string) (Sink, error) {
	name := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(name)
	if ext == ".zst" {
		ext = filepath.Ext(strings.TrimSuffix(name, ext)) + ext
	}
	if ext == "" {
		return nil, fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ByName(strings.TrimPrefix(ext, "."))
}

// WriteFile encodes img into a new file at path, in the format its
// extension names.
func WriteFile(path string, img image.Image) error {
	s, err := ForPath(path)
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	return Write(path, s, img)
}

// Write encodes img with s into a new file at path.
func Write(path string, s Sink, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &Error{Path: path, Err: cerr}
		}
	}()

	if err := s.Encode(f, img); err != nil {
		return &Error{Path: path, Err: err}
	}
	return nil
}
