package storage

import (
	"os"

	"github.com/hupe1980/streamedit/internal/fs"
)

// File is a local file usable as a streamedit.Stream.
//
// Growing the file through Truncate reserves the new blocks up front where the
// filesystem supports it, so a full disk fails the grow step instead of a
// write in the middle of a shift.
type File struct {
	f fs.File
}

// OpenFile opens the named file for editing, creating it if it does not exist.
func OpenFile(name string) (*File, error) {
	return openFile(fs.Default, name, os.O_RDWR|os.O_CREATE)
}

// CreateFile creates or truncates the named file.
func CreateFile(name string) (*File, error) {
	return openFile(fs.Default, name, os.O_RDWR|os.O_CREATE|os.O_TRUNC)
}

func openFile(fsys fs.FileSystem, name string, flag int) (*File, error) {
	f, err := fsys.OpenFile(name, flag, 0o644)
	if err != nil {
		return nil, err
	}
	return &File{f: f}, nil
}

// NewFile wraps an already open file handle.
func NewFile(f fs.File) *File {
	return &File{f: f}
}

// Name returns the path of the file.
func (f *File) Name() string { return fs.Name(f.f) }

func (f *File) Read(p []byte) (int, error)  { return f.f.Read(p) }
func (f *File) Write(p []byte) (int, error) { return f.f.Write(p) }

func (f *File) ReadAt(p []byte, off int64) (int, error)  { return f.f.ReadAt(p, off) }
func (f *File) WriteAt(p []byte, off int64) (int, error) { return f.f.WriteAt(p, off) }

func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.f.Seek(offset, whence)
}

// Size returns the current file size.
func (f *File) Size() (int64, error) {
	info, err := f.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Truncate changes the size of the file. The cursor is not moved.
func (f *File) Truncate(size int64) error {
	cur, err := f.Size()
	if err != nil {
		return err
	}
	if size > cur {
		return fs.Preallocate(f.f, cur, size-cur)
	}
	return f.f.Truncate(size)
}

// Sync commits the file contents to stable storage.
func (f *File) Sync() error { return f.f.Sync() }

// Close closes the file.
func (f *File) Close() error { return f.f.Close() }
