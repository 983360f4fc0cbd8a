package bitdex

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    insertCounter  prometheus.Counter
//	    setOpHistogram *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordSetOp(op string, results int, duration time.Duration, err error) {
//	    p.setOpHistogram.WithLabelValues(op).Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordInsert is called after each insert operation.
	RecordInsert(duration time.Duration)

	// RecordBatchInsert is called after each batch insert operation.
	// count is the number of ids in the batch.
	RecordBatchInsert(count int, duration time.Duration)

	// RecordLookup is called after each single-key read (Get, List,
	// ListRawWords, GetAsBinary). err is nil if successful.
	RecordLookup(op string, duration time.Duration, err error)

	// RecordSetOp is called after each two-key operation (And, Or).
	// results is the number of ids returned.
	RecordSetOp(op string, results int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration)                    {}
func (NoopMetricsCollector) RecordBatchInsert(int, time.Duration)          {}
func (NoopMetricsCollector) RecordLookup(string, time.Duration, error)     {}
func (NoopMetricsCollector) RecordSetOp(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// It may be shared by several indexes.
type BasicMetricsCollector struct {
	InsertCount           atomic.Int64
	InsertTotalNanos      atomic.Int64
	BatchInsertCount      atomic.Int64
	BatchInsertItems      atomic.Int64
	BatchInsertTotalNanos atomic.Int64
	LookupCount           atomic.Int64
	LookupErrors          atomic.Int64
	LookupTotalNanos      atomic.Int64
	SetOpCount            atomic.Int64
	SetOpErrors           atomic.Int64
	SetOpResults          atomic.Int64
	SetOpTotalNanos       atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
}

// RecordBatchInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchInsert(count int, duration time.Duration) {
	b.BatchInsertCount.Add(1)
	b.BatchInsertItems.Add(int64(count))
	b.BatchInsertTotalNanos.Add(duration.Nanoseconds())
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(op string, duration time.Duration, err error) {
	b.LookupCount.Add(1)
	b.LookupTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LookupErrors.Add(1)
	}
}

// RecordSetOp implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSetOp(op string, results int, duration time.Duration, err error) {
	b.SetOpCount.Add(1)
	b.SetOpTotalNanos.Add(duration.Nanoseconds())
	b.SetOpResults.Add(int64(results))
	if err != nil {
		b.SetOpErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:         b.InsertCount.Load(),
		InsertAvgNanos:      avg(b.InsertTotalNanos.Load(), b.InsertCount.Load()),
		BatchInsertCount:    b.BatchInsertCount.Load(),
		BatchInsertItems:    b.BatchInsertItems.Load(),
		BatchInsertAvgNanos: avg(b.BatchInsertTotalNanos.Load(), b.BatchInsertCount.Load()),
		LookupCount:         b.LookupCount.Load(),
		LookupErrors:        b.LookupErrors.Load(),
		LookupAvgNanos:      avg(b.LookupTotalNanos.Load(), b.LookupCount.Load()),
		SetOpCount:          b.SetOpCount.Load(),
		SetOpErrors:         b.SetOpErrors.Load(),
		SetOpResults:        b.SetOpResults.Load(),
		SetOpAvgNanos:       avg(b.SetOpTotalNanos.Load(), b.SetOpCount.Load()),
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
	InsertCount         int64
	InsertAvgNanos      int64
	BatchInsertCount    int64
	BatchInsertItems    int64
	BatchInsertAvgNanos int64
	LookupCount         int64
	LookupErrors        int64
	LookupAvgNanos      int64
	SetOpCount          int64
	SetOpErrors         int64
	SetOpResults        int64
	SetOpAvgNanos       int64
}
