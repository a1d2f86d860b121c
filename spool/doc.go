// Package spool makes blobs in a blobstore.BlobStore editable as streams.
//
// Open downloads a blob into a local temporary file and returns a Spool, which
// satisfies streamedit.Stream. Edits happen locally; Commit uploads the
// current content and Close discards the local copy.
//
//	sp, err := spool.Open(ctx, store, "report.bin", spool.WithCompression(spool.CompressionZstd))
//	if err != nil {
//	    return err
//	}
//	defer sp.Close()
//
//	ed, _ := streamedit.New(sp)
//	if err := ed.Insert(ctx, 0, header); err != nil {
//	    return err
//	}
//	return sp.Commit(ctx)
//
// Every committed blob is accompanied by a manifest blob named
// name + ManifestSuffix that records its compression, logical size and CRC32C.
// Blobs without a manifest are read as uncompressed.
package spool
