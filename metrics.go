package streamedit

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordInsert is called after each WriteStart or Insert.
	// n is the number of bytes inserted.
	RecordInsert(n int, duration time.Duration, err error)

	// RecordCut is called after each Cut or CutBytes.
	// n is the number of bytes removed.
	RecordCut(n int64, duration time.Duration, err error)

	// RecordMove is called after each Move or MoveTo.
	// n is the shift distance (Move) or the number of bytes relocated (MoveTo).
	RecordMove(n int64, duration time.Duration, err error)

	// RecordFind is called when a Find completes or a FindAll sequence ends.
	RecordFind(matches int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordCut(int64, time.Duration, error)  {}
func (NoopMetricsCollector) RecordMove(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordFind(int, time.Duration, error)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	InsertCount    atomic.Int64
	InsertErrors   atomic.Int64
	InsertedBytes  atomic.Int64
	CutCount       atomic.Int64
	CutErrors      atomic.Int64
	CutBytes       atomic.Int64
	MoveCount      atomic.Int64
	MoveErrors     atomic.Int64
	MovedBytes     atomic.Int64
	FindCount      atomic.Int64
	FindErrors     atomic.Int64
	FindMatches    atomic.Int64
	FindTotalNanos atomic.Int64
	TotalEditNanos atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(n int, duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.TotalEditNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
		return
	}
	b.InsertedBytes.Add(int64(n))
}

// RecordCut implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCut(n int64, duration time.Duration, err error) {
	b.CutCount.Add(1)
	b.TotalEditNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CutErrors.Add(1)
		return
	}
	b.CutBytes.Add(n)
}

// RecordMove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMove(n int64, duration time.Duration, err error) {
	b.MoveCount.Add(1)
	b.TotalEditNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MoveErrors.Add(1)
		return
	}
	b.MovedBytes.Add(n)
}

// RecordFind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFind(matches int, duration time.Duration, err error) {
	b.FindCount.Add(1)
	b.FindTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FindErrors.Add(1)
	}
	b.FindMatches.Add(int64(matches))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	edits := b.InsertCount.Load() + b.CutCount.Load() + b.MoveCount.Load()
	return BasicMetricsStats{
		InsertCount:   b.InsertCount.Load(),
		InsertErrors:  b.InsertErrors.Load(),
		InsertedBytes: b.InsertedBytes.Load(),
		CutCount:      b.CutCount.Load(),
		CutErrors:     b.CutErrors.Load(),
		CutBytes:      b.CutBytes.Load(),
		MoveCount:     b.MoveCount.Load(),
		MoveErrors:    b.MoveErrors.Load(),
		MovedBytes:    b.MovedBytes.Load(),
		FindCount:     b.FindCount.Load(),
		FindErrors:    b.FindErrors.Load(),
		FindMatches:   b.FindMatches.Load(),
		FindAvgNanos:  avg(b.FindTotalNanos.Load(), b.FindCount.Load()),
		EditAvgNanos:  avg(b.TotalEditNanos.Load(), edits),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount   int64
	InsertErrors  int64
	InsertedBytes int64
	CutCount      int64
	CutErrors     int64
	CutBytes      int64
	MoveCount     int64
	MoveErrors    int64
	MovedBytes    int64
	FindCount     int64
	FindErrors    int64
	FindMatches   int64
	FindAvgNanos  int64
	EditAvgNanos  int64
}
