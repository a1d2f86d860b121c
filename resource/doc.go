// Package resource bounds the memory and I/O an editing session may use.
//
// The Controller manages three resource types:
//
//   - Memory: scratch buffers reserved per operation (non-blocking, fail-fast)
//   - Workers: concurrent part transfers during spool downloads
//   - IO: token bucket limiting the bytes moved per second by chunk copies
//
// # Memory
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 4 << 20, // 4MB of scratch buffers
//	})
//
//	if err := rc.AcquireMemory(1 << 20); err != nil {
//	    // ErrMemoryLimitExceeded - caller decides retry/backoff
//	}
//	defer rc.ReleaseMemory(1 << 20)
//
// # IO Rate Limiting
//
//	rc := resource.NewController(resource.Config{
//	    IOLimitBytesPerSec: 32 << 20, // 32MB/s
//	})
//
//	if err := rc.AcquireIO(ctx, len(chunk)); err != nil {
//	    return err
//	}
//
//	writer := resource.NewRateLimitedWriter(ctx, file, rc)
//	reader := resource.NewRateLimitedReader(ctx, file, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
