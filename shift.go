package streamedit

import (
	"context"
)

// shiftRegion moves the bytes in [start, length) forward by distance, leaving
// [start, start+distance) with stale content for the caller to overwrite.
//
// The stream is grown first, then the region is copied back-to-front so every
// chunk is read before the shifted data can overwrite it.
func (e *Editor) shiftRegion(ctx context.Context, start, distance, length int64, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.s.Truncate(length + distance); err != nil {
		return err
	}

	cursor := length
	for cursor > start {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := min(int64(len(buf)), cursor-start)
		cursor -= n
		chunk := buf[:n]

		if err := e.resources.AcquireIO(ctx, 2*int(n)); err != nil {
			return err
		}
		read, err := readFullAt(e.s, chunk, cursor)
		if err != nil {
			return err
		}
		if err := writeAt(e.s, chunk[:read], cursor+distance); err != nil {
			return err
		}
	}
	return nil
}

// collapseRegion removes [start, start+n) by copying the tail front-to-back and
// truncating. The write position trails the read position by n, so each chunk
// is read before it can be overwritten.
func (e *Editor) collapseRegion(ctx context.Context, start, n, length int64, buf []byte) error {
	src := start + n
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.resources.AcquireIO(ctx, 2*len(buf)); err != nil {
			return err
		}

		read, err := readFullAt(e.s, buf, src)
		if err != nil {
			return err
		}
		if read > 0 {
			if err := writeAt(e.s, buf[:read], src-n); err != nil {
				return err
			}
		}
		if read < len(buf) {
			break
		}
		src += int64(len(buf))
	}
	return e.s.Truncate(length - n)
}
