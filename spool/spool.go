package spool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/streamedit/blobstore"
	"github.com/hupe1980/streamedit/internal/fs"
	"github.com/hupe1980/streamedit/internal/hash"
	"github.com/hupe1980/streamedit/resource"
	"github.com/hupe1980/streamedit/storage"
	"golang.org/x/sync/errgroup"
)

// Spool is a local, editable copy of a blob.
//
// A Spool is not safe for concurrent use.
type Spool struct {
	store    blobstore.BlobStore
	name     string
	o        options
	file     *storage.File
	path     string
	manifest Manifest
	closed   bool
}

// Open downloads the named blob into a new Spool positioned at offset 0.
//
// The blob's manifest decides how it is decoded. Uncompressed blobs are
// fetched as parallel ranges of WithPartSize bytes. Content that does not
// match the manifest's size or checksum fails with ErrCorrupt.
func Open(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Spool, error) {
	o := applyOptions(optFns)
	if !o.compression.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, o.compression)
	}

	sp, err := open(ctx, store, name, o)
	if err != nil {
		o.logger.LogDownload(ctx, name, 0, "", err)
		return nil, err
	}
	o.logger.LogDownload(ctx, name, sp.manifest.Size, string(sp.manifest.Compression), nil)
	return sp, nil
}

func open(ctx context.Context, store blobstore.BlobStore, name string, o options) (*Spool, error) {
	m, found, err := readManifest(ctx, store, name)
	if err != nil {
		return nil, err
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("spool: open %s: %w", name, err)
	}
	defer blob.Close()

	if !found {
		m = Manifest{
			Version:     manifestVersion,
			Compression: CompressionNone,
			Size:        blob.Size(),
			StoredSize:  blob.Size(),
		}
	} else if m.StoredSize != blob.Size() {
		return nil, fmt.Errorf("%w: %s is %d bytes, manifest says %d", ErrCorrupt, name, blob.Size(), m.StoredSize)
	}

	sp, err := newSpool(store, name, o)
	if err != nil {
		return nil, err
	}
	sp.manifest = m

	if err := sp.download(ctx, blob, m, found); err != nil {
		_ = sp.Close()
		return nil, fmt.Errorf("spool: download %s: %w", name, err)
	}
	return sp, nil
}

// Create returns an empty Spool for the named blob. Nothing is written to
// store until Commit.
func Create(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Spool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o := applyOptions(optFns)
	if !o.compression.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, o.compression)
	}
	return newSpool(store, name, o)
}

func newSpool(store blobstore.BlobStore, name string, o options) (*Spool, error) {
	f, err := o.fs.CreateTemp(o.tempDir, "spool-*")
	if err != nil {
		return nil, err
	}
	return &Spool{
		store: store,
		name:  name,
		o:     o,
		file:  storage.NewFile(f),
		path:  fs.Name(f),
	}, nil
}

func readManifest(ctx context.Context, store blobstore.BlobStore, name string) (Manifest, bool, error) {
	data, err := blobstore.ReadAll(ctx, store, ManifestName(name))
	if errors.Is(err, blobstore.ErrNotFound) {
		return Manifest{}, false, nil
	}
	if err != nil {
		return Manifest{}, false, err
	}
	m, err := decodeManifest(data)
	if err != nil {
		return Manifest{}, false, err
	}
	return m, true, nil
}

func (s *Spool) download(ctx context.Context, blob blobstore.Blob, m Manifest, verify bool) error {
	var err error
	if m.Compression == CompressionNone {
		err = s.fetchRanges(ctx, blob, m.Size)
	} else {
		err = s.fetchStream(ctx, blob, m)
	}
	if err != nil {
		return err
	}

	if verify {
		h := hash.NewCRC32C()
		if _, err := io.Copy(h, io.NewSectionReader(s.file, 0, m.Size)); err != nil {
			return err
		}
		if sum := h.Sum32(); sum != m.CRC32C {
			return fmt.Errorf("%w: crc32c %08x, manifest says %08x", ErrCorrupt, sum, m.CRC32C)
		}
	}
	_, err = s.file.Seek(0, io.SeekStart)
	return err
}

// fetchRanges copies size bytes of blob into the local file, one range per part.
func (s *Spool) fetchRanges(ctx context.Context, blob blobstore.Blob, size int64) error {
	if err := s.file.Truncate(size); err != nil {
		return err
	}

	rc := s.o.resources
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.o.concurrency)

	for off := int64(0); off < size; off += s.o.partSize {
		n := min(s.o.partSize, size-off)
		g.Go(func() error {
			if err := rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer rc.ReleaseWorker()

			r, err := blob.ReadRange(gctx, off, n)
			if err != nil {
				return err
			}
			defer r.Close()

			copied, err := io.Copy(io.NewOffsetWriter(s.file, off), resource.NewRateLimitedReader(gctx, r, rc))
			if err != nil {
				return err
			}
			if copied != n {
				return fmt.Errorf("%w: range at %d returned %d of %d bytes", ErrCorrupt, off, copied, n)
			}
			return nil
		})
	}
	return g.Wait()
}

// fetchStream decodes the whole blob into the local file.
func (s *Spool) fetchStream(ctx context.Context, blob blobstore.Blob, m Manifest) error {
	if m.Size == 0 {
		return nil
	}
	r, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return err
	}
	defer r.Close()

	dec, err := decompressor(resource.NewRateLimitedReader(ctx, r, s.o.resources), m.Compression)
	if err != nil {
		return err
	}
	defer dec.Close()

	n, err := io.Copy(io.NewOffsetWriter(s.file, 0), dec)
	if err != nil {
		return err
	}
	if n != m.Size {
		return fmt.Errorf("%w: decoded %d bytes, manifest says %d", ErrCorrupt, n, m.Size)
	}
	return nil
}

// Commit uploads the current content, replacing the blob and its manifest.
// The cursor is not moved.
func (s *Spool) Commit(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}

	m, err := s.commit(ctx)
	s.o.logger.LogCommit(ctx, s.name, m.Size, m.StoredSize, string(m.Compression), err)
	if err != nil {
		return fmt.Errorf("spool: commit %s: %w", s.name, err)
	}
	s.manifest = m
	return nil
}

func (s *Spool) commit(ctx context.Context) (Manifest, error) {
	size, err := s.file.Size()
	if err != nil {
		return Manifest{}, err
	}

	w, err := s.store.Create(ctx, s.name)
	if err != nil {
		return Manifest{}, err
	}
	m, err := s.upload(ctx, w, size)
	if err != nil {
		_ = w.Abort()
		return m, err
	}
	if err := w.Close(); err != nil {
		return m, err
	}

	data, err := encodeManifest(s.o.codec, m)
	if err != nil {
		return m, err
	}
	return m, s.store.Put(ctx, ManifestName(s.name), data)
}

func (s *Spool) upload(ctx context.Context, w io.Writer, size int64) (Manifest, error) {
	counter := &countingWriter{w: resource.NewRateLimitedWriter(ctx, w, s.o.resources)}
	zw, err := compressor(counter, s.o.compression, s.o.level)
	if err != nil {
		return Manifest{}, err
	}

	h := hash.NewCRC32C()
	src := io.TeeReader(io.NewSectionReader(s.file, 0, size), h)
	if _, err := io.Copy(zw, src); err != nil {
		_ = zw.Close()
		return Manifest{}, err
	}
	if err := zw.Close(); err != nil {
		return Manifest{}, err
	}

	return Manifest{
		Version:     manifestVersion,
		Compression: s.o.compression,
		Size:        size,
		StoredSize:  counter.n,
		CRC32C:      h.Sum32(),
		CommittedAt: time.Now().UTC(),
	}, nil
}

// Name returns the name of the blob.
func (s *Spool) Name() string { return s.name }

// Path returns the path of the local copy.
func (s *Spool) Path() string { return s.path }

// Manifest returns the manifest of the last download or commit.
func (s *Spool) Manifest() Manifest { return s.manifest }

// Size returns the current length of the local copy.
func (s *Spool) Size() (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.file.Size()
}

func (s *Spool) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.file.Read(p)
}

func (s *Spool) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.file.Write(p)
}

func (s *Spool) ReadAt(p []byte, off int64) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.file.ReadAt(p, off)
}

func (s *Spool) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.file.Seek(offset, whence)
}

// Truncate changes the length of the local copy.
func (s *Spool) Truncate(size int64) error {
	if s.closed {
		return ErrClosed
	}
	return s.file.Truncate(size)
}

// Close discards the local copy without committing. Closing twice is a no-op.
func (s *Spool) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.file.Close()
	if rmErr := s.o.fs.Remove(s.path); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
