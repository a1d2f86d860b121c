package streamedit

import (
	"context"
	"io"
	"iter"
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

const (
	// MaxPatternLength is the longest pattern Find and FindAll will look for.
	// Longer patterns are never found.
	MaxPatternLength = math.MaxInt16

	// NotFound is the offset Find reports when the pattern does not occur.
	NotFound int64 = -1
)

// scanner reads a stream one byte at a time through a read-ahead window.
// The cursor only moves forward.
type scanner struct {
	e      *Editor
	ctx    context.Context
	window []byte
	off    int64 // stream offset of window[0]
	n      int   // valid bytes in window
	pos    int64 // next byte to read
	limit  int64 // candidates must start before limit
}

func (sc *scanner) readByte() (byte, error) {
	if sc.pos < sc.off || sc.pos >= sc.off+int64(sc.n) {
		if err := sc.fill(); err != nil {
			return 0, err
		}
	}
	b := sc.window[sc.pos-sc.off]
	sc.pos++
	return b, nil
}

func (sc *scanner) fill() error {
	if err := sc.ctx.Err(); err != nil {
		return err
	}
	if err := sc.e.resources.AcquireIO(sc.ctx, len(sc.window)); err != nil {
		return err
	}
	n, err := readFullAt(sc.e.s, sc.window, sc.pos)
	if err != nil {
		return err
	}
	sc.off, sc.n = sc.pos, n
	if n == 0 {
		return io.EOF
	}
	return nil
}

// matchHere compares pattern with the bytes at the cursor. It reports false on
// the first mismatching byte and io.EOF when the data runs out.
func (sc *scanner) matchHere(pattern []byte) (bool, error) {
	for k := 0; k < len(pattern); k++ {
		b, err := sc.readByte()
		if err != nil {
			return false, err
		}
		if b != pattern[k] {
			return false, nil
		}
	}
	return true, nil
}

// next returns the offset of the next occurrence of pattern and leaves the
// cursor after it. io.EOF means there are no more occurrences.
//
// A mismatching byte is consumed with the partial match, and the next
// candidate starts right after it.
func (sc *scanner) next(pattern []byte) (int64, error) {
	for sc.pos < sc.limit {
		candidate := sc.pos
		ok, err := sc.matchHere(pattern)
		if err != nil {
			return NotFound, err
		}
		if ok {
			return candidate, nil
		}
	}
	return NotFound, io.EOF
}

func (e *Editor) newScanner(ctx context.Context, maxPosition int64) (*scanner, func(), error) {
	length, err := e.Len()
	if err != nil {
		return nil, nil, err
	}
	if maxPosition < 0 {
		maxPosition = length
	}

	size := e.bufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	size = int(max(min(int64(size), length), 1))

	window, release, err := e.scratch(size)
	if err != nil {
		return nil, nil, err
	}
	return &scanner{
		e:      e,
		ctx:    ctx,
		window: window,
		limit:  maxPosition,
	}, release, nil
}

func searchable(pattern []byte) bool {
	return len(pattern) > 0 && len(pattern) <= MaxPatternLength
}

// Find returns the offset of the first occurrence of pattern, scanning from the
// beginning of the stream, or NotFound.
//
// Empty patterns and patterns longer than MaxPatternLength are never found.
// WithMaxPosition restricts the matches considered; WithMaxCount is ignored.
func (e *Editor) Find(ctx context.Context, pattern []byte, optFns ...FindOption) (int64, error) {
	optFns = append(optFns[:len(optFns):len(optFns)], WithMaxCount(1))
	for off, err := range e.FindAll(ctx, pattern, optFns...) {
		return off, err
	}
	return NotFound, nil
}

// FindAll returns a lazy sequence of the offsets of pattern in ascending order.
// After a match the scan resumes at the end of the match, so occurrences never
// overlap.
//
// The scan state lives in the sequence; editing the stream while iterating
// gives undefined results. Ranging over the sequence again starts a new scan.
// If an I/O error occurs it is yielded with offset NotFound and the sequence ends.
//
//	for off, err := range ed.FindAll(ctx, []byte("needle"), streamedit.WithMaxCount(10)) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(off)
//	}
func (e *Editor) FindAll(ctx context.Context, pattern []byte, optFns ...FindOption) iter.Seq2[int64, error] {
	o := applyFindOptions(optFns)

	return func(yield func(int64, error) bool) {
		begin := time.Now()
		matches := 0
		var scanErr error
		defer func() {
			e.metrics.RecordFind(matches, time.Since(begin), scanErr)
			e.logger.LogFind(ctx, len(pattern), matches, scanErr)
		}()

		if !searchable(pattern) || o.maxCount == 0 {
			return
		}

		sc, release, err := e.newScanner(ctx, o.maxPosition)
		if err != nil {
			scanErr = err
			yield(NotFound, err)
			return
		}
		defer release()

		for o.maxCount < 0 || matches < o.maxCount {
			off, err := sc.next(pattern)
			if err == io.EOF {
				return
			}
			if err != nil {
				scanErr = err
				yield(NotFound, err)
				return
			}
			matches++
			if !yield(off, nil) {
				return
			}
		}
	}
}

// FindAllSet collects the offsets FindAll would yield into a compressed bitmap.
// It suits patterns with very many occurrences, where a []int64 would be large.
func (e *Editor) FindAllSet(ctx context.Context, pattern []byte, optFns ...FindOption) (*roaring64.Bitmap, error) {
	set := roaring64.New()
	for off, err := range e.FindAll(ctx, pattern, optFns...) {
		if err != nil {
			return nil, err
		}
		set.Add(uint64(off))
	}
	return set, nil
}
