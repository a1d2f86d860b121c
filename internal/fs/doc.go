// Package fs provides filesystem abstractions for testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: an open file that can be read, written, sought and resized
//   - [FileSystem]: filesystem operations (open, remove, rename, etc.)
//
// # Implementations
//
//   - [LocalFS]: Production implementation using standard os package
//   - [FaultyFS]: Test utility for fault injection (simulate I/O errors)
//
// # Usage
//
// Production code should use fs.Default (which is [LocalFS]):
//
//	file, err := fs.Default.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
//
// Tests can inject [FaultyFS] to simulate failures in the middle of a shift:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.SetLimit(1024) // Fail after 1KB written
//
// # Preallocation
//
// [Preallocate] grows a file by reserving its blocks (fallocate on Linux), so
// running out of space is reported before any data has been shifted.
//
// This package intentionally does NOT include context.Context parameters.
// Filesystem operations are non-interruptible at the syscall level.
package fs
