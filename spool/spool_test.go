package spool

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/hupe1980/streamedit"
	"github.com/hupe1980/streamedit/blobstore"
	"github.com/hupe1980/streamedit/codec"
	"github.com/hupe1980/streamedit/internal/fs"
	"github.com/hupe1980/streamedit/resource"
	"github.com/hupe1980/streamedit/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readSpool(t *testing.T, sp *Spool) []byte {
	t.Helper()
	size, err := sp.Size()
	require.NoError(t, err)
	buf := make([]byte, size)
	_, err = sp.ReadAt(buf, 0)
	if size > 0 {
		require.NoError(t, err)
	}
	return buf
}

func TestSpool_EditAndCommit(t *testing.T) {
	ctx := context.Background()

	for _, c := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		t.Run(string(c), func(t *testing.T) {
			store := blobstore.NewMemoryStore()
			data := bytes.Repeat([]byte("the quick brown fox "), 500)
			require.NoError(t, store.Put(ctx, "doc.bin", data))

			sp, err := Open(ctx, store, "doc.bin",
				WithCompression(c),
				WithPartSize(1000),
				WithTempDir(t.TempDir()),
			)
			require.NoError(t, err)
			defer sp.Close()

			// Blobs written by others have no manifest.
			assert.Equal(t, CompressionNone, sp.Manifest().Compression)
			assert.Equal(t, data, readSpool(t, sp))

			ed, err := streamedit.New(sp, streamedit.WithBufferSize(333))
			require.NoError(t, err)
			require.NoError(t, ed.Insert(ctx, 5, []byte("INSERTED")))
			require.NoError(t, ed.Cut(ctx, 9000, 500))
			want := testutil.Cut(testutil.Insert(data, 5, []byte("INSERTED")), 9000, 500)

			require.NoError(t, sp.Commit(ctx))
			m := sp.Manifest()
			assert.Equal(t, c, m.Compression)
			assert.Equal(t, int64(len(want)), m.Size)
			assert.False(t, m.CommittedAt.IsZero())

			stored, err := blobstore.ReadAll(ctx, store, "doc.bin")
			require.NoError(t, err)
			assert.Equal(t, int64(len(stored)), m.StoredSize)
			if c == CompressionNone {
				assert.Equal(t, want, stored)
			} else {
				assert.Less(t, len(stored), len(want), "repetitive data compresses")
			}

			// Reopening honours the manifest regardless of the caller's options.
			again, err := Open(ctx, store, "doc.bin", WithPartSize(777), WithTempDir(t.TempDir()))
			require.NoError(t, err)
			defer again.Close()
			assert.Equal(t, want, readSpool(t, again))
			assert.Equal(t, m.CRC32C, again.Manifest().CRC32C)
		})
	}
}

func TestSpool_Create(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	sp, err := Create(ctx, store, "new.bin", WithTempDir(t.TempDir()), WithCodec(codec.JSON{}))
	require.NoError(t, err)
	defer sp.Close()

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names, "nothing is written before Commit")

	_, err = sp.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, sp.Commit(ctx))

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"new.bin", "new.bin.manifest"}, names)

	raw, err := blobstore.ReadAll(ctx, store, ManifestName("new.bin"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("json\n")))
}

func TestSpool_EmptyBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	for _, c := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		sp, err := Create(ctx, store, "empty-"+string(c), WithCompression(c), WithTempDir(t.TempDir()))
		require.NoError(t, err)
		require.NoError(t, sp.Commit(ctx))
		require.NoError(t, sp.Close())

		sp, err = Open(ctx, store, "empty-"+string(c), WithTempDir(t.TempDir()))
		require.NoError(t, err)
		size, err := sp.Size()
		require.NoError(t, err)
		assert.Zero(t, size)
		require.NoError(t, sp.Close())
	}
}

func TestSpool_NotFound(t *testing.T) {
	_, err := Open(context.Background(), blobstore.NewMemoryStore(), "missing", WithTempDir(t.TempDir()))
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestSpool_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	sp, err := Create(ctx, store, "doc", WithTempDir(t.TempDir()))
	require.NoError(t, err)
	_, err = sp.Write([]byte("original content"))
	require.NoError(t, err)
	require.NoError(t, sp.Commit(ctx))
	require.NoError(t, sp.Close())

	t.Run("Checksum", func(t *testing.T) {
		// Same length, different bytes.
		require.NoError(t, store.Put(ctx, "doc", []byte("tampered content")))
		_, err := Open(ctx, store, "doc", WithTempDir(t.TempDir()))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("Size", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "doc", []byte("short")))
		_, err := Open(ctx, store, "doc", WithTempDir(t.TempDir()))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("Manifest", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, ManifestName("doc"), []byte("xml\n<manifest/>")))
		_, err := Open(ctx, store, "doc", WithTempDir(t.TempDir()))
		assert.ErrorIs(t, err, ErrInvalidManifest)

		require.NoError(t, store.Put(ctx, ManifestName("doc"), []byte("no header")))
		_, err = Open(ctx, store, "doc", WithTempDir(t.TempDir()))
		assert.ErrorIs(t, err, ErrInvalidManifest)
	})
}

func TestSpool_Closed(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sp, err := Create(ctx, blobstore.NewMemoryStore(), "x", WithTempDir(dir))
	require.NoError(t, err)

	path := sp.Path()
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, sp.Close())
	require.NoError(t, sp.Close())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "local copy is removed")

	_, err = sp.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
	_, err = sp.Seek(0, io.SeekStart)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, sp.Commit(ctx), ErrClosed)
}

func TestSpool_UnknownCompression(t *testing.T) {
	_, err := Create(context.Background(), blobstore.NewMemoryStore(), "x", WithCompression("brotli"))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestSpool_CommitFailureKeepsPreviousBlob(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	require.NoError(t, blobstore.NewLocalStore(root).Put(ctx, "doc", []byte("v1")))

	ffs := fs.NewFaultyFS(nil)
	fault := fs.NoFault()
	fault.FailAfterBytes = 1
	ffs.AddRule("doc", fault)
	store := blobstore.NewLocalStoreWithFS(root, ffs)

	sp, err := Open(ctx, store, "doc", WithTempDir(t.TempDir()))
	require.NoError(t, err)
	defer sp.Close()

	_, err = sp.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	_, err = sp.Write([]byte(" and v2"))
	require.NoError(t, err)

	assert.ErrorIs(t, sp.Commit(ctx), fs.ErrInjected)

	got, err := blobstore.ReadAll(ctx, store, "doc")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"doc"}, names, "aborted upload leaves no blob or manifest")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary upload file is removed")
}

func TestSpool_DownloadFailureRemovesLocalCopy(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "doc", []byte("content")))

	dir := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	fault := fs.NoFault()
	fault.FailOnTruncate = true
	ffs.AddRule(dir, fault)

	_, err := Open(ctx, store, "doc", WithTempDir(dir), WithFileSystem(ffs))
	assert.ErrorIs(t, err, fs.ErrInjected)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSpool_ResourceController(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	data := testutil.NewRNG(2).Bytes(64 * 1024)
	require.NoError(t, store.Put(ctx, "doc", data))

	rc := resource.NewController(resource.Config{MaxWorkers: 2, IOLimitBytesPerSec: 64 << 20})
	sp, err := Open(ctx, store, "doc",
		WithResourceController(rc),
		WithConcurrency(8),
		WithPartSize(4096),
		WithTempDir(t.TempDir()),
	)
	require.NoError(t, err)
	defer sp.Close()

	assert.Equal(t, data, readSpool(t, sp))
	assert.True(t, rc.TryAcquireWorker(), "workers are released")
	rc.ReleaseWorker()
}

func TestSpool_Logging(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	logger := streamedit.NewLogger(slog.NewTextHandler(&logs, nil))
	store := blobstore.NewMemoryStore()

	sp, err := Create(ctx, store, "doc", WithLogger(logger), WithTempDir(t.TempDir()), WithCompression(CompressionZstd))
	require.NoError(t, err)
	_, err = sp.Write([]byte("abc"))
	require.NoError(t, err)
	require.NoError(t, sp.Commit(ctx))
	require.NoError(t, sp.Close())

	_, err = Open(ctx, store, "missing", WithLogger(logger), WithTempDir(t.TempDir()))
	require.Error(t, err)

	out := logs.String()
	assert.Contains(t, out, "commit completed")
	assert.Contains(t, out, "compression=zstd")
	assert.Contains(t, out, "download failed")
}
