package storage

import (
	"errors"
	"io"
)

var errNegativePosition = errors.New("storage: negative position")

// Buffer is an in-memory seekable, resizable byte buffer.
//
// Writing past the end grows the buffer; a gap between the old end and the
// write position reads as zeros. The zero value is an empty buffer ready to use.
type Buffer struct {
	data []byte
	off  int64
}

// NewBuffer creates a Buffer using data as its initial contents.
// The Buffer takes ownership of data; the caller should not use it afterwards.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int64 { return int64(len(b.data)) }

// Bytes returns the buffer contents. The slice aliases the buffer and is only
// valid until the next modification.
func (b *Buffer) Bytes() []byte { return b.data }

// Read implements io.Reader.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.off >= int64(len(b.data)) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.data[b.off:])
	b.off += int64(n)
	return n, nil
}

// ReadByte implements io.ByteReader.
func (b *Buffer) ReadByte() (byte, error) {
	if b.off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	c := b.data[b.off]
	b.off++
	return c, nil
}

// ReadAt implements io.ReaderAt. It does not move the cursor.
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errNegativePosition
	}
	if off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Write implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	end := b.off + int64(len(p))
	if end > int64(len(b.data)) {
		b.resize(end)
	}
	n := copy(b.data[b.off:], p)
	b.off += int64(n)
	return n, nil
}

// Seek implements io.Seeker. Seeking past the end is allowed.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.off + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return 0, errors.New("storage: invalid whence")
	}
	if abs < 0 {
		return 0, errNegativePosition
	}
	b.off = abs
	return abs, nil
}

// Truncate changes the length of the buffer. Growing appends zeros.
// The cursor is not moved.
func (b *Buffer) Truncate(size int64) error {
	if size < 0 {
		return errNegativePosition
	}
	b.resize(size)
	return nil
}

func (b *Buffer) resize(size int64) {
	old := int64(len(b.data))
	if size <= old {
		b.data = b.data[:size]
		return
	}
	if size <= int64(cap(b.data)) {
		b.data = b.data[:size]
		clear(b.data[old:])
		return
	}
	// Grow geometrically so repeated appends stay amortized.
	grown := make([]byte, size, max(size, 2*int64(cap(b.data))))
	copy(grown, b.data)
	b.data = grown
}
