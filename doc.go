// Package streamedit edits seekable byte streams in place.
//
// An Editor inserts, removes and relocates byte ranges inside any Stream (a
// file, an in-memory buffer or a spooled remote blob) while holding at most
// one scratch buffer of a configurable size in memory. It can also search the
// stream for a byte pattern.
//
// # Quick Start
//
//	f, _ := storage.OpenFile("data.bin")
//	defer f.Close()
//
//	ed, _ := streamedit.New(f, streamedit.WithBufferSize(64*1024))
//
//	ctx := context.Background()
//	_ = ed.Insert(ctx, 5, []byte{33, 33, 33, 33}) // open a gap at 5 and fill it
//	removed, _ := ed.CutBytes(ctx, 5, 4)          // take the same bytes out again
//	_ = ed.MoveTo(ctx, 4, 0, 4)                   // move [4,8) to the front
//
//	off, _ := ed.Find(ctx, []byte{3, 4, 5})
//	for off, err := range ed.FindAll(ctx, []byte{3, 4, 5}) {
//	    ...
//	}
//
// # Operations
//
//   - WriteStart and Insert grow the stream by the inserted length.
//   - Cut and CutBytes shrink it; the length is clamped to the end of the stream.
//   - Move opens a zero-filled gap.
//   - MoveTo relocates a block; the stream length is unchanged.
//   - Find, FindAll and FindAllSet locate non-overlapping occurrences of a pattern.
//
// Every edit copies the affected tail in chunks of at most the buffer size, so
// memory use does not depend on the stream length. Edits are not atomic: an
// I/O error part way through leaves the stream partially shifted.
//
// # Errors
//
// Argument errors satisfy errors.Is(err, ErrInvalidArgument) and are detected
// before the stream is modified. Offsets beyond the stream are reported as
// *OffsetError. I/O errors from the stream are returned unchanged.
//
// # Resources and Observability
//
// WithResourceController charges scratch buffers against a memory budget and
// throttles chunk copies. WithLogger and WithMetricsCollector report every
// operation.
//
// # Subpackages
//
//   - storage: in-memory and file-backed Streams
//   - spool: blobs from a blobstore.BlobStore edited through a local copy
//   - blobstore: memory, local, S3 and MinIO blob stores
//   - resource: memory, worker and IO budgets
package streamedit
