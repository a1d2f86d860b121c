package streamedit

import (
	"github.com/hupe1980/streamedit/resource"
)

// DefaultBufferSize is the scratch buffer size used when none is configured (512 KiB).
const DefaultBufferSize = 524288

type options struct {
	bufferSize       int
	logger           *Logger
	metricsCollector MetricsCollector
	resources        *resource.Controller
}

// Option configures an Editor.
type Option func(*options)

// WithBufferSize sets the size of the scratch buffer used to move data.
//
// A smaller buffer trades memory for more I/O round-trips; results are identical
// for every positive size. A non-positive size makes every mutating operation
// fail with ErrInvalidBufferSize.
func WithBufferSize(size int) Option {
	return func(o *options) {
		o.bufferSize = size
	}
}

// WithLogger configures the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures the metrics collector.
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithResourceController limits scratch memory and chunk I/O throughput.
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   8 << 20,  // at most 8MB of scratch buffers
//	    IOLimitBytesPerSec: 64 << 20, // 64MB/s of chunk traffic
//	})
//	ed, err := streamedit.New(f, streamedit.WithResourceController(rc))
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		bufferSize:       DefaultBufferSize,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// FindOption bounds a Find or FindAll scan.
type FindOption func(*findOptions)

type findOptions struct {
	maxCount    int
	maxPosition int64
}

// WithMaxCount stops FindAll after n matches. A negative n means unlimited,
// which is the default.
func WithMaxCount(n int) FindOption {
	return func(o *findOptions) {
		o.maxCount = n
	}
}

// WithMaxPosition only reports matches that start before pos.
// A negative pos means the stream length at the start of the scan, which is the default.
func WithMaxPosition(pos int64) FindOption {
	return func(o *findOptions) {
		o.maxPosition = pos
	}
}

func applyFindOptions(optFns []FindOption) findOptions {
	o := findOptions{
		maxCount:    -1,
		maxPosition: -1,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
