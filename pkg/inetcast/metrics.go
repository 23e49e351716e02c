package inetcast

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for the result dimension of rowsTotal.
const (
	resultConverted = "converted"
	resultNull      = "null"
)

// metrics is a container of metrics for a [Converter].
type metrics struct {
	// registry to collect metrics as a unit.
	reg *prometheus.Registry

	rowsTotal     *prometheus.CounterVec
	recordsTotal  prometheus.Counter
	failuresTotal prometheus.Counter

	recordSeconds prometheus.Histogram
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()

	return &metrics{
		reg: reg,

		rowsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "inet_cast_rows_total",
			Help: "Total number of rows converted to the inet type, by result",
		}, []string{"result"}),
		recordsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "inet_cast_records_total",
			Help: "Total number of record batches converted successfully",
		}),
		failuresTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "inet_cast_failures_total",
			Help: "Total number of record batch conversions aborted by a malformed value or a missing column",
		}),

		recordSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name: "inet_cast_record_seconds",
			Help: "Number of seconds spent converting one record batch",

			NativeHistogramBucketFactor:     1.1,
			NativeHistogramMaxBucketNumber:  100,
			NativeHistogramMinResetDuration: time.Hour,
		}),
	}
}

// Register registers metrics to report to reg.
func (m *metrics) Register(reg prometheus.Registerer) error { return reg.Register(m.reg) }

// Unregister unregisters metrics from the provided Registerer.
func (m *metrics) Unregister(reg prometheus.Registerer) { reg.Unregister(m.reg) }
