package streamedit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the class of every argument validation failure.
	// Operations that return it have not touched the stream.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange is returned when a size, distance or length is not positive.
	ErrOutOfRange = fmt.Errorf("%w: out of range", ErrInvalidArgument)

	// ErrInvalidBufferSize is returned when the configured buffer size is not positive.
	ErrInvalidBufferSize = fmt.Errorf("%w: buffer size must be positive", ErrOutOfRange)

	// ErrInvalidDistance is returned by Move when the offset is not positive.
	ErrInvalidDistance = fmt.Errorf("%w: offset must be positive", ErrOutOfRange)

	// ErrInvalidLength is returned by MoveTo when the length is not positive.
	ErrInvalidLength = fmt.Errorf("%w: length must be positive", ErrOutOfRange)
)

// OffsetError indicates an offset that lies beyond the end of the stream.
//
// It satisfies errors.Is(err, ErrInvalidArgument).
type OffsetError struct {
	Op     string
	Name   string
	Offset int64
	Len    int64
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("%s: %s %d beyond stream length %d", e.Op, e.Name, e.Offset, e.Len)
}

func (e *OffsetError) Unwrap() error { return ErrInvalidArgument }

func checkOffset(op, name string, off, length int64) error {
	if off < 0 || off > length {
		return &OffsetError{Op: op, Name: name, Offset: off, Len: length}
	}
	return nil
}
