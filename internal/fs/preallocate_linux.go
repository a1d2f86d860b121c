//go:build linux

package fs

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Preallocate extends f to off+n bytes, reserving the new blocks when the
// filesystem supports it. Files without a descriptor fall back to Truncate.
func Preallocate(f File, off, n int64) error {
	if n <= 0 {
		return nil
	}
	if fd, ok := f.(interface{ Fd() uintptr }); ok {
		err := unix.Fallocate(int(fd.Fd()), 0, off, n)
		if err == nil {
			return nil
		}
		if !errors.Is(err, unix.EOPNOTSUPP) && !errors.Is(err, unix.ENOSYS) {
			return err
		}
	}
	return f.Truncate(off + n)
}
