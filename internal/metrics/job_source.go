package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/rieminer7000/internal/model"
)

var (
	jobSourceRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "job_source",
		Name:      "refresh_total",
		Help:      "Count of job refresh attempts.",
	}, []string{"network", "status"})
	jobSourceRefreshDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "job_source",
		Name:      "refresh_duration_seconds",
		Help:      "Duration of job refresh attempts.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
	jobSourceJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "job_source",
		Name:      "jobs_total",
		Help:      "Count of jobs handed to the coordinator.",
	}, []string{"network"})
	jobSourceHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "job_source",
		Name:      "height",
		Help:      "Height of the latest job.",
	}, []string{"network"})
	jobSourceDifficulty = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "job_source",
		Name:      "difficulty",
		Help:      "Network difficulty of the latest job.",
	}, []string{"network"})
	jobSourceSignalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "job_source",
		Name:      "block_signals_total",
		Help:      "Count of new block notifications.",
	}, []string{"network"})
)

// JobSource tracks metrics for the job producers.
type JobSource struct {
	network model.Network
}

// NewJobSource constructs a JobSource with defaults.
func NewJobSource(network model.Network) *JobSource {
	return &JobSource{network: networkLabel(network)}
}

// ObserveRefresh records a template refresh attempt.
func (m JobSource) ObserveRefresh(err error, started time.Time) {
	s := status(err)
	jobSourceRefreshTotal.WithLabelValues(string(m.network), s).Inc()
	jobSourceRefreshDuration.WithLabelValues(string(m.network), s).Observe(time.Since(started).Seconds())
}

// ObserveJob records a job handed to the coordinator.
func (m JobSource) ObserveJob(job *model.Job) {
	jobSourceJobsTotal.WithLabelValues(string(m.network)).Inc()
	jobSourceHeight.WithLabelValues(string(m.network)).Set(float64(job.Height))
	jobSourceDifficulty.WithLabelValues(string(m.network)).Set(job.Difficulty)
}

// ObserveSignal records a new block notification.
func (m JobSource) ObserveSignal() {
	jobSourceSignalsTotal.WithLabelValues(string(m.network)).Inc()
}
