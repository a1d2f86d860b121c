// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("documents/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	sp, err := spool.Open(ctx, store, "report.bin")
//
// # Features
//
//   - Range reads for parallel downloads
//   - Multipart uploads through the SDK upload manager
//   - CRC32C checksums on single-shot puts
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
