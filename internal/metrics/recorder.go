package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/rieminer7000/internal/model"
)

var (
	recorderFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "recorder",
		Name:      "flush_total",
		Help:      "Count of tuple record flushes.",
	}, []string{"network", "sink", "status"})
	recorderFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "recorder",
		Name:      "flush_duration_seconds",
		Help:      "Duration of tuple record flushes.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "sink", "status"})
	recorderFlushSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "recorder",
		Name:      "flush_size",
		Help:      "Number of tuple records per flush.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"network", "sink"})
)

// Recorder tracks metrics for the tuple record sinks.
type Recorder struct {
	network model.Network
}

// NewRecorder constructs a Recorder with defaults.
func NewRecorder(network model.Network) *Recorder {
	return &Recorder{network: networkLabel(network)}
}

// ObserveFlush records one flush of records to sink.
func (m Recorder) ObserveFlush(sink string, records int, err error, started time.Time) {
	s := status(err)
	recorderFlushTotal.WithLabelValues(string(m.network), sink, s).Inc()
	recorderFlushDuration.WithLabelValues(string(m.network), sink, s).Observe(time.Since(started).Seconds())
	recorderFlushSize.WithLabelValues(string(m.network), sink).Observe(float64(records))
}
