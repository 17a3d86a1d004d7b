package johari

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// metrics/prometheus package provides a Prometheus implementation.
//
// kind is the assessment kind of the store the operation touched.
type MetricsCollector interface {
	// RecordSubmission is called after each self (peer == false) or peer submission.
	RecordSubmission(kind string, peer bool, duration time.Duration, err error)

	// RecordQuery is called after each classification query.
	RecordQuery(kind string, duration time.Duration, err error)

	// RecordLoad is called after each store load with the number of subjects read.
	RecordLoad(kind string, subjects int, duration time.Duration, err error)

	// RecordSave is called after each store save with the number of subjects written.
	RecordSave(kind string, subjects int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSubmission(string, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordQuery(string, time.Duration, error)            {}
func (NoopMetricsCollector) RecordLoad(string, int, time.Duration, error)        {}
func (NoopMetricsCollector) RecordSave(string, int, time.Duration, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SelfSubmissions   atomic.Int64
	PeerSubmissions   atomic.Int64
	SubmissionErrors  atomic.Int64
	SubmissionNanos   atomic.Int64
	QueryCount        atomic.Int64
	QueryErrors       atomic.Int64
	QueryTotalNanos   atomic.Int64
	LoadCount         atomic.Int64
	LoadErrors        atomic.Int64
	SaveCount         atomic.Int64
	SaveErrors        atomic.Int64
	LastSavedSubjects atomic.Int64
}

// RecordSubmission implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSubmission(_ string, peer bool, duration time.Duration, err error) {
	if peer {
		b.PeerSubmissions.Add(1)
	} else {
		b.SelfSubmissions.Add(1)
	}
	b.SubmissionNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SubmissionErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(_ string, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(_ string, _ int, _ time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(_ string, subjects int, _ time.Duration, err error) {
	b.SaveCount.Add(1)
	if err != nil {
		b.SaveErrors.Add(1)
		return
	}
	b.LastSavedSubjects.Store(int64(subjects))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SelfSubmissions:   b.SelfSubmissions.Load(),
		PeerSubmissions:   b.PeerSubmissions.Load(),
		SubmissionErrors:  b.SubmissionErrors.Load(),
		SubmissionAvgNs:   avg(b.SubmissionNanos.Load(), b.SelfSubmissions.Load()+b.PeerSubmissions.Load()),
		QueryCount:        b.QueryCount.Load(),
		QueryErrors:       b.QueryErrors.Load(),
		QueryAvgNanos:     avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		LoadCount:         b.LoadCount.Load(),
		LoadErrors:        b.LoadErrors.Load(),
		SaveCount:         b.SaveCount.Load(),
		SaveErrors:        b.SaveErrors.Load(),
		LastSavedSubjects: b.LastSavedSubjects.Load(),
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
	SelfSubmissions   int64
	PeerSubmissions   int64
	SubmissionErrors  int64
	SubmissionAvgNs   int64
	QueryCount        int64
	QueryErrors       int64
	QueryAvgNanos     int64
	LoadCount         int64
	LoadErrors        int64
	SaveCount         int64
	SaveErrors        int64
	LastSavedSubjects int64
}
