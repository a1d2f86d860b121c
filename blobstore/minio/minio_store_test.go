package minio

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hupe1980/streamedit/blobstore/blobstoretest"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := envOr("MINIO_ENDPOINT", "localhost:9000")
	accessKey := envOr("MINIO_ACCESS_KEY", "minioadmin")
	secretKey := envOr("MINIO_SECRET_KEY", "minioadmin")
	bucket := "test-streamedit"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	_, err = client.ListBuckets(ctx)
	cancel()
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	ctx = context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	prefix := fmt.Sprintf("run-%d/", time.Now().UnixNano())
	blobstoretest.Run(t, NewStore(client, bucket, prefix), "")
}

func TestNewStore_Prefix(t *testing.T) {
	for in, want := range map[string]string{
		"":      "",
		"docs":  "docs/",
		"docs/": "docs/",
		"/a/b/": "a/b/",
	} {
		s := NewStore(nil, "bucket", in)
		assert.Equal(t, want+"x.bin", s.key("x.bin"), "prefix %q", in)
	}
}
