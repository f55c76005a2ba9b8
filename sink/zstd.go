package sink

import (
	"fmt"
	"image"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Zstd compresses the output of another sink.
type Zstd struct {
	Inner Sink
}

func (z Zstd) Ext() string { return z.Inner.Ext() + ".zst" }

func (z Zstd) Encode(w io.Writer, img image.Image) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}

	if err := z.Inner.Encode(enc, img); err != nil {
		_ = enc.Close()
		return err
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("zstd close: %w", err)
	}
	return nil
}
