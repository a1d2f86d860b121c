package streamedit

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with streamedit-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithBufferSize adds a buffer_size field to the logger.
func (l *Logger) WithBufferSize(size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("buffer_size", size),
	}
}

// WithStream adds a stream name field to the logger (useful when one process
// edits several streams).
func (l *Logger) WithStream(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("stream", name),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(ctx context.Context, start int64, n int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "insert failed",
			"start", start,
			"bytes", n,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "insert completed",
			"start", start,
			"bytes", n,
		)
	}
}

// LogCut logs a cut operation.
func (l *Logger) LogCut(ctx context.Context, start, n int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "cut failed",
			"start", start,
			"length", n,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "cut completed",
			"start", start,
			"length", n,
		)
	}
}

// LogMove logs a move (shift with zero fill) operation.
func (l *Logger) LogMove(ctx context.Context, start, offset int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "move failed",
			"start", start,
			"offset", offset,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "move completed",
			"start", start,
			"offset", offset,
		)
	}
}

// LogMoveTo logs a region relocation.
func (l *Logger) LogMoveTo(ctx context.Context, start, to, n int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "move to failed",
			"start", start,
			"to", to,
			"length", n,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "move to completed",
			"start", start,
			"to", to,
			"length", n,
		)
	}
}

// LogFind logs a search.
func (l *Logger) LogFind(ctx context.Context, patternLen, matches int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "find failed",
			"pattern_length", patternLen,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "find completed",
			"pattern_length", patternLen,
			"matches", matches,
		)
	}
}

// LogDownload logs the transfer of a blob into a local spool.
func (l *Logger) LogDownload(ctx context.Context, blob string, size int64, compression string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "download failed",
			"blob", blob,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "download completed",
			"blob", blob,
			"size", size,
			"compression", compression,
		)
	}
}

// LogCommit logs the upload of a spool back to its blob store.
func (l *Logger) LogCommit(ctx context.Context, blob string, size, stored int64, compression string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "commit failed",
			"blob", blob,
			"size", size,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "commit completed",
			"blob", blob,
			"size", size,
			"stored_size", stored,
			"compression", compression,
		)
	}
}
