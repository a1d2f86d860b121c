// Package blobstoretest provides a conformance suite for blobstore.BlobStore
// implementations.
package blobstoretest

import (
	"context"
	"io"
	"testing"

	"github.com/hupe1980/streamedit/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises store with blobs named below prefix. The store must not
// contain other blobs below prefix.
func Run(t *testing.T, store blobstore.BlobStore, prefix string) {
	t.Helper()
	ctx := context.Background()
	name := func(s string) string { return prefix + s }

	t.Run("CreateAndRead", func(t *testing.T) {
		data := []byte("hello world, this is a test blob")

		w, err := store.Create(ctx, name("data-001.bin"))
		require.NoError(t, err)
		n, err := w.Write(data[:10])
		require.NoError(t, err)
		require.Equal(t, 10, n)
		_, err = w.Write(data[10:])
		require.NoError(t, err)
		require.NoError(t, w.Close())

		blob, err := store.Open(ctx, name("data-001.bin"))
		require.NoError(t, err)
		defer blob.Close()
		require.Equal(t, int64(len(data)), blob.Size())

		buf := make([]byte, 5)
		n, err = blob.ReadAt(ctx, buf, 6)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, "world", string(buf))

		got, err := blobstore.ReadAll(ctx, store, name("data-001.bin"))
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("ReadRangeBoundaries", func(t *testing.T) {
		data := []byte("0123456789")
		require.NoError(t, store.Put(ctx, name("boundary.bin"), data))

		blob, err := store.Open(ctx, name("boundary.bin"))
		require.NoError(t, err)
		defer blob.Close()

		read := func(off, length int64) string {
			r, err := blob.ReadRange(ctx, off, length)
			require.NoError(t, err)
			defer r.Close()
			b, err := io.ReadAll(r)
			require.NoError(t, err)
			return string(b)
		}
		assert.Equal(t, "0123456789", read(0, 10))
		assert.Equal(t, "234", read(2, 3))
		assert.Equal(t, "89", read(8, 5))

		_, err = blob.ReadRange(ctx, 20, 5)
		assert.ErrorIs(t, err, io.EOF)

		buf := make([]byte, 4)
		n, err := blob.ReadAt(ctx, buf, 8)
		assert.Equal(t, 2, n)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, "89", string(buf[:n]))
	})

	t.Run("EmptyBlob", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, name("empty.bin"), nil))
		got, err := blobstore.ReadAll(ctx, store, name("empty.bin"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, name("over.bin"), []byte("first")))
		require.NoError(t, store.Put(ctx, name("over.bin"), []byte("second")))
		got, err := blobstore.ReadAll(ctx, store, name("over.bin"))
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("Abort", func(t *testing.T) {
		w, err := store.Create(ctx, name("aborted.bin"))
		require.NoError(t, err)
		_, err = w.Write([]byte("partial"))
		require.NoError(t, err)
		require.NoError(t, w.Abort())

		_, err = store.Open(ctx, name("aborted.bin"))
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("ListAndDelete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, name("list/a.bin"), []byte("a")))
		require.NoError(t, store.Put(ctx, name("list/b.bin"), []byte("b")))
		require.NoError(t, store.Put(ctx, name("list/sub/c.bin"), []byte("c")))

		names, err := store.List(ctx, name("list/"))
		require.NoError(t, err)
		assert.Equal(t, []string{name("list/a.bin"), name("list/b.bin"), name("list/sub/c.bin")}, names)

		require.NoError(t, store.Delete(ctx, name("list/a.bin")))
		require.NoError(t, store.Delete(ctx, name("list/a.bin")), "deleting twice is not an error")

		names, err = store.List(ctx, name("list/"))
		require.NoError(t, err)
		assert.Equal(t, []string{name("list/b.bin"), name("list/sub/c.bin")}, names)

		for _, n := range names {
			require.NoError(t, store.Delete(ctx, n))
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Open(ctx, name("missing.bin"))
		assert.ErrorIs(t, err, blobstore.ErrNotFound)

		_, err = blobstore.ReadAll(ctx, store, name("missing.bin"))
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}
