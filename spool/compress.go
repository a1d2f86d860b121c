package spool

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression names the encoding of a committed blob.
type Compression string

const (
	// CompressionNone stores the content as is. Uncompressed blobs are
	// downloaded with parallel range reads.
	CompressionNone Compression = "none"
	// CompressionZstd stores a zstd stream (better ratio).
	CompressionZstd Compression = "zstd"
	// CompressionLZ4 stores an LZ4 frame (faster).
	CompressionLZ4 Compression = "lz4"
)

func (c Compression) valid() bool {
	switch c {
	case CompressionNone, CompressionZstd, CompressionLZ4:
		return true
	}
	return false
}

func lz4Level(level int) lz4.CompressionLevel {
	switch {
	case level <= 0:
		return lz4.Fast
	case level >= 9:
		return lz4.Level9
	default:
		return lz4.CompressionLevel(1 << (8 + level))
	}
}

// compressor wraps w so that data written to the result is encoded with c.
// Closing the result flushes the encoder but does not close w.
func compressor(w io.Writer, c Compression, level int) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZstd:
		opts := []zstd.EOption{}
		if level > 0 {
			opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		}
		return zstd.NewWriter(w, opts...)
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if err := zw.Apply(lz4.CompressionLevelOption(lz4Level(level))); err != nil {
			return nil, err
		}
		return zw, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, c)
	}
}

// decompressor returns a reader decoding r according to c.
func decompressor(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, c)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
