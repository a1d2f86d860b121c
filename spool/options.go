package spool

import (
	"github.com/hupe1980/streamedit"
	"github.com/hupe1980/streamedit/codec"
	"github.com/hupe1980/streamedit/internal/fs"
	"github.com/hupe1980/streamedit/resource"
)

const (
	// DefaultPartSize is the size of the ranges fetched in parallel when an
	// uncompressed blob is downloaded.
	DefaultPartSize int64 = 8 * 1024 * 1024

	// DefaultConcurrency is the number of ranges fetched at the same time.
	DefaultConcurrency = 4
)

type options struct {
	compression Compression
	level       int
	codec       codec.Codec
	partSize    int64
	concurrency int
	fs          fs.FileSystem
	tempDir     string
	resources   *resource.Controller
	logger      *streamedit.Logger
}

// Option configures a Spool.
type Option func(*options)

// WithCompression sets the compression applied by Commit.
// It does not affect how an existing blob is read; that is taken from its manifest.
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithCompressionLevel sets the encoder level on the zstd scale (1 fastest,
// 22 smallest). Zero selects the library default.
func WithCompressionLevel(level int) Option {
	return func(o *options) { o.level = level }
}

// WithCodec sets the codec used to write manifests.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithPartSize sets the size of the ranges fetched in parallel.
func WithPartSize(size int64) Option {
	return func(o *options) {
		if size > 0 {
			o.partSize = size
		}
	}
}

// WithConcurrency sets how many ranges are fetched at the same time.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithFileSystem sets the file system holding the local copy.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithTempDir sets the directory for the local copy. The default is os.TempDir.
func WithTempDir(dir string) Option {
	return func(o *options) { o.tempDir = dir }
}

// WithResourceController throttles transfers and bounds download workers.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) { o.resources = rc }
}

// WithLogger sets the logger for transfer events.
func WithLogger(l *streamedit.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		compression: CompressionNone,
		codec:       codec.Default,
		partSize:    DefaultPartSize,
		concurrency: DefaultConcurrency,
		fs:          fs.Default,
		logger:      streamedit.NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
