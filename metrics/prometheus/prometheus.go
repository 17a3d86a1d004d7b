// Package prometheus exports assessment metrics through client_golang.
//
//	c, _ := prometheus.NewCollector(prom.DefaultRegisterer)
//	a, _ := johari.Open(ctx, vocab, store, johari.WithMetricsCollector(c))
package prometheus

import (
	"strconv"
	"time"

	"github.com/hupe1980/johari"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "johari"

var _ johari.MetricsCollector = (*Collector)(nil)

// Collector implements johari.MetricsCollector.
type Collector struct {
	submissions *prometheus.CounterVec
	queries     *prometheus.CounterVec
	opLatency   *prometheus.HistogramVec
	subjects    *prometheus.GaugeVec
}

// NewCollector creates the metric vectors and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Total trait submissions",
		}, []string{"kind", "peer", "status"}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total classification queries",
		}, []string{"kind", "status"}),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of assessment operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "op", "status"}),
		subjects: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "subjects",
			Help:      "Subjects in the most recently loaded or saved store",
		}, []string{"kind"}),
	}

	for _, col := range []prometheus.Collector{c.submissions, c.queries, c.opLatency, c.subjects} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordSubmission implements johari.MetricsCollector.
func (c *Collector) RecordSubmission(kind string, peer bool, d time.Duration, err error) {
	c.submissions.WithLabelValues(kind, strconv.FormatBool(peer), status(err)).Inc()
	c.opLatency.WithLabelValues(kind, "submit", status(err)).Observe(d.Seconds())
}

// RecordQuery implements johari.MetricsCollector.
func (c *Collector) RecordQuery(kind string, d time.Duration, err error) {
	c.queries.WithLabelValues(kind, status(err)).Inc()
	c.opLatency.WithLabelValues(kind, "query", status(err)).Observe(d.Seconds())
}

// RecordLoad implements johari.MetricsCollector.
func (c *Collector) RecordLoad(kind string, subjects int, d time.Duration, err error) {
	c.opLatency.WithLabelValues(kind, "load", status(err)).Observe(d.Seconds())
	if err == nil {
		c.subjects.WithLabelValues(kind).Set(float64(subjects))
	}
}

// RecordSave implements johari.MetricsCollector.
func (c *Collector) RecordSave(kind string, subjects int, d time.Duration, err error) {
	c.opLatency.WithLabelValues(kind, "save", status(err)).Observe(d.Seconds())
	if err == nil {
		c.subjects.WithLabelValues(kind).Set(float64(subjects))
	}
}
