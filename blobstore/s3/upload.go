package s3

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/streamedit/blobstore"
)

var errAborted = errors.New("upload aborted")

// writableBlob streams writes through a pipe into the upload manager, which
// runs in its own goroutine until the pipe is closed.
type writableBlob struct {
	pw   *io.PipeWriter
	pr   *io.PipeReader
	done chan error

	mu       sync.Mutex
	finished bool
	closeErr error
}

func newWritableBlob(ctx context.Context, uploader *manager.Uploader, bucket, key string, checksum bool) *writableBlob {
	pr, pw := io.Pipe()
	b := &writableBlob{
		pw:   pw,
		pr:   pr,
		done: make(chan error, 1),
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   pr,
	}
	if checksum {
		input.ChecksumAlgorithm = types.ChecksumAlgorithmCrc32c
	}

	go func() {
		_, err := uploader.Upload(ctx, input)
		// Unblock a writer still waiting on the pipe.
		_ = pr.CloseWithError(err)
		b.done <- err
	}()

	return b
}

func (b *writableBlob) Write(p []byte) (int, error) {
	b.mu.Lock()
	finished := b.finished
	b.mu.Unlock()
	if finished {
		return 0, blobstore.ErrClosed
	}
	return b.pw.Write(p)
}

// Close finishes the upload and waits for it to complete.
func (b *writableBlob) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finished {
		return b.closeErr
	}
	b.finished = true

	if err := b.pw.Close(); err != nil {
		b.closeErr = err
		return err
	}
	b.closeErr = <-b.done
	return b.closeErr
}

// Abort cancels the upload. The upload manager aborts any multipart upload it
// started unless LeavePartsOnError is set.
func (b *writableBlob) Abort() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finished {
		return nil
	}
	b.finished = true
	b.closeErr = errAborted

	_ = b.pw.CloseWithError(errAborted)
	<-b.done
	return nil
}
