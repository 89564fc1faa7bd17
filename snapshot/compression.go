package snapshot

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the stream compression of a frame or report.
type Compression uint8

const (
	// None stores plain JSON.
	None Compression = iota
	// LZ4 wraps the stream in an LZ4 frame.
	LZ4
	// Zstd wraps the stream in a Zstandard frame.
	Zstd
)

// String returns the lowercase codec name.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// CompressionFromPath picks the compression implied by the file extension.
func CompressionFromPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// nopWriteCloser lets plain writers share the compressed-writer path.
type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// newReader wraps r with the decompressor for c. The returned release
// function frees decoder resources and must be called once reading is done.
func newReader(r io.Reader, c Compression) (io.Reader, func(), error) {
	switch c {
	case None:
		return r, func() {}, nil
	case LZ4:
		return lz4.NewReader(r), func() {}, nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("snapshot: zstd reader: %w", err)
		}
		return dec, dec.Close, nil
	default:
		return nil, nil, fmt.Errorf("%s: %w", c, ErrUnknownCompression)
	}
}

// newWriter wraps w with the compressor for c. Close flushes the compressed
// stream but never closes w.
func newWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case Zstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("snapshot: zstd writer: %w", err)
		}
		return enc, nil
	default:
		return nil, fmt.Errorf("%s: %w", c, ErrUnknownCompression)
	}
}
