package streamedit

import (
	"io"
)

// Stream is a seekable, resizable byte storage medium.
//
// *os.File satisfies Stream, as do storage.Buffer, storage.File and spool.Spool.
// Reads may return fewer bytes than requested only at the end of the data.
// Writes past the current end grow the stream.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
	// Truncate changes the size of the stream to exactly size bytes.
	Truncate(size int64) error
}

// streamLen returns the current length of s.
// The cursor is left at the end of the stream.
func streamLen(s Stream) (int64, error) {
	return s.Seek(0, io.SeekEnd)
}

// seekTo positions the cursor of s at off.
func seekTo(s Stream, off int64) error {
	_, err := s.Seek(off, io.SeekStart)
	return err
}

// readFullAt reads len(p) bytes at off. A short count is only returned at the
// end of the data, in which case the error is nil.
func readFullAt(s Stream, p []byte, off int64) (int, error) {
	if err := seekTo(s, off); err != nil {
		return 0, err
	}
	n, err := io.ReadFull(s, p)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return n, nil
	}
	return n, err
}

// writeAt writes p at off.
func writeAt(s Stream, p []byte, off int64) error {
	if err := seekTo(s, off); err != nil {
		return err
	}
	n, err := s.Write(p)
	if err != nil {
		return err
	}
	if n < len(p) {
		return io.ErrShortWrite
	}
	return nil
}
