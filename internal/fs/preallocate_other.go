//go:build !linux

package fs

// Preallocate extends f to off+n bytes.
func Preallocate(f File, off, n int64) error {
	if n <= 0 {
		return nil
	}
	return f.Truncate(off + n)
}
