package streamedit

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/streamedit/resource"
)

// Editor performs in-place edits on a Stream using a bounded scratch buffer.
//
// An Editor is not safe for concurrent use, and the underlying Stream must not
// be used by anyone else while an operation is running.
type Editor struct {
	s          Stream
	bufferSize int
	logger     *Logger
	metrics    MetricsCollector
	resources  *resource.Controller
}

// New creates an Editor for s.
func New(s Stream, optFns ...Option) (*Editor, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil stream", ErrInvalidArgument)
	}
	o := applyOptions(optFns)
	return &Editor{
		s:          s,
		bufferSize: o.bufferSize,
		logger:     o.logger.WithBufferSize(o.bufferSize),
		metrics:    o.metricsCollector,
		resources:  o.resources,
	}, nil
}

// Stream returns the stream being edited.
func (e *Editor) Stream() Stream { return e.s }

// BufferSize returns the configured scratch buffer size.
func (e *Editor) BufferSize() int { return e.bufferSize }

// Len returns the current length of the stream.
func (e *Editor) Len() (int64, error) {
	return streamLen(e.s)
}

// WriteStart inserts p at the beginning of the stream.
func (e *Editor) WriteStart(ctx context.Context, p []byte) error {
	start := time.Now()
	err := e.insert(ctx, "write start", 0, p)
	e.metrics.RecordInsert(len(p), time.Since(start), err)
	e.logger.LogInsert(ctx, 0, len(p), err)
	return err
}

// Insert inserts p at offset start, shifting everything after it forward.
// start may equal the stream length (append).
func (e *Editor) Insert(ctx context.Context, start int64, p []byte) error {
	begin := time.Now()
	err := e.insert(ctx, "insert", start, p)
	e.metrics.RecordInsert(len(p), time.Since(begin), err)
	e.logger.LogInsert(ctx, start, len(p), err)
	return err
}

func (e *Editor) insert(ctx context.Context, op string, start int64, p []byte) error {
	length, err := e.Len()
	if err != nil {
		return err
	}
	if err := checkOffset(op, "start", start, length); err != nil {
		return err
	}
	if e.bufferSize <= 0 {
		return ErrInvalidBufferSize
	}
	if len(p) == 0 {
		return nil
	}

	buf, release, err := e.scratch(e.bufferSize)
	if err != nil {
		return err
	}
	defer release()

	if err := e.shiftRegion(ctx, start, int64(len(p)), length, buf); err != nil {
		return err
	}
	return writeAt(e.s, p, start)
}

// Cut removes n bytes starting at start. n is clamped to the bytes available
// after start; a non-positive n is a no-op.
func (e *Editor) Cut(ctx context.Context, start, n int64) error {
	begin := time.Now()
	removed, _, err := e.cut(ctx, start, n, false)
	e.metrics.RecordCut(removed, time.Since(begin), err)
	e.logger.LogCut(ctx, start, removed, err)
	return err
}

// CutBytes removes n bytes starting at start and returns them.
// A non-positive n returns an empty slice and leaves the stream untouched.
func (e *Editor) CutBytes(ctx context.Context, start, n int64) ([]byte, error) {
	begin := time.Now()
	removed, data, err := e.cut(ctx, start, n, true)
	e.metrics.RecordCut(removed, time.Since(begin), err)
	e.logger.LogCut(ctx, start, removed, err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// cut returns the number of bytes removed and, when capture is set, the bytes
// themselves.
func (e *Editor) cut(ctx context.Context, start, n int64, capture bool) (int64, []byte, error) {
	length, err := e.Len()
	if err != nil {
		return 0, nil, err
	}
	if err := checkOffset("cut", "start", start, length); err != nil {
		return 0, nil, err
	}
	if e.bufferSize <= 0 {
		return 0, nil, ErrInvalidBufferSize
	}
	n = min(n, length-start)
	if n <= 0 {
		return 0, []byte{}, nil
	}

	var data []byte
	if capture {
		data = make([]byte, n)
		read, err := readFullAt(e.s, data, start)
		if err != nil {
			return 0, nil, err
		}
		data = data[:read]
	}

	buf, release, err := e.scratch(e.bufferSize)
	if err != nil {
		return 0, nil, err
	}
	defer release()

	if err := e.collapseRegion(ctx, start, n, length, buf); err != nil {
		return 0, nil, err
	}
	return n, data, nil
}

// Move shifts everything from start onward forward by offset bytes and
// zero-fills the gap [start, start+offset). The stream grows by offset.
func (e *Editor) Move(ctx context.Context, start, offset int64) error {
	begin := time.Now()
	err := e.move(ctx, start, offset)
	e.metrics.RecordMove(offset, time.Since(begin), err)
	e.logger.LogMove(ctx, start, offset, err)
	return err
}

func (e *Editor) move(ctx context.Context, start, offset int64) error {
	length, err := e.Len()
	if err != nil {
		return err
	}
	if err := checkOffset("move", "start", start, length); err != nil {
		return err
	}
	if e.bufferSize <= 0 {
		return ErrInvalidBufferSize
	}
	if offset <= 0 {
		return ErrInvalidDistance
	}

	buf, release, err := e.scratch(e.bufferSize)
	if err != nil {
		return err
	}
	defer release()

	if err := e.shiftRegion(ctx, start, offset, length, buf); err != nil {
		return err
	}

	clear(buf)
	for pos := start; pos < start+offset; {
		n := min(int64(len(buf)), start+offset-pos)
		if err := writeAt(e.s, buf[:n], pos); err != nil {
			return err
		}
		pos += n
	}
	return nil
}

// MoveTo relocates up to n bytes starting at start so that they begin at
// offset to of the resulting stream. If fewer than n bytes remain after start,
// only those are moved. The stream length is unchanged.
func (e *Editor) MoveTo(ctx context.Context, start, to, n int64) error {
	begin := time.Now()
	moved, err := e.moveTo(ctx, start, to, n)
	e.metrics.RecordMove(moved, time.Since(begin), err)
	e.logger.LogMoveTo(ctx, start, to, n, err)
	return err
}

func (e *Editor) moveTo(ctx context.Context, start, to, n int64) (int64, error) {
	length, err := e.Len()
	if err != nil {
		return 0, err
	}
	if err := checkOffset("move to", "start", start, length); err != nil {
		return 0, err
	}
	if err := checkOffset("move to", "to", to, length); err != nil {
		return 0, err
	}
	if e.bufferSize <= 0 {
		return 0, ErrInvalidBufferSize
	}
	if n <= 0 {
		return 0, ErrInvalidLength
	}

	count := min(n, length-start)
	if count == 0 || to == start {
		return count, nil
	}
	// to addresses the stream after the block has been removed.
	if err := checkOffset("move to", "to", to, length-count); err != nil {
		return 0, err
	}

	data, releaseData, err := e.scratch(int(count))
	if err != nil {
		return 0, err
	}
	defer releaseData()

	read, err := readFullAt(e.s, data, start)
	if err != nil {
		return 0, err
	}
	if int64(read) != count {
		return 0, io.ErrUnexpectedEOF
	}

	buf, release, err := e.scratch(e.bufferSize)
	if err != nil {
		return 0, err
	}
	defer release()

	if err := e.collapseRegion(ctx, start, count, length, buf); err != nil {
		return 0, err
	}
	if err := e.shiftRegion(ctx, to, count, length-count, buf); err != nil {
		return 0, err
	}
	if err := writeAt(e.s, data[:count], to); err != nil {
		return 0, err
	}
	return count, nil
}

// scratch allocates a buffer of n bytes charged against the resource
// controller's memory budget.
func (e *Editor) scratch(n int) ([]byte, func(), error) {
	if err := e.resources.AcquireMemory(int64(n)); err != nil {
		return nil, nil, fmt.Errorf("scratch buffer of %d bytes: %w", n, err)
	}
	return make([]byte, n), func() { e.resources.ReleaseMemory(int64(n)) }, nil
}
