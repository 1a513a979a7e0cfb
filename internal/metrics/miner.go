package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/rieminer7000/internal/model"
)

var (
	sieveSegmentDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sieve",
		Name:      "segment_duration_seconds",
		Help:      "Duration of sieving one segment.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
	}, []string{"network"})
	sieveSegmentCandidates = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sieve",
		Name:      "segment_candidates",
		Help:      "Number of candidates surviving one segment.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
	}, []string{"network"})

	verifyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "verifier",
		Name:      "candidates_total",
		Help:      "Count of verified candidates.",
	}, []string{"network", "status"})
	verifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "verifier",
		Name:      "candidate_duration_seconds",
		Help:      "Duration of verifying one candidate.",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 16),
	}, []string{"network", "status"})
	verifyRunLength = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "verifier",
		Name:      "runs_total",
		Help:      "Count of verified candidates by run length.",
	}, []string{"network", "length"})

	coordinatorInstallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "coordinator",
		Name:      "installs_total",
		Help:      "Count of job slot replacements.",
	}, []string{"network"})
	coordinatorGeneration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "coordinator",
		Name:      "generation",
		Help:      "Current job generation.",
	}, []string{"network"})
	coordinatorSubmitTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "coordinator",
		Name:      "submissions_total",
		Help:      "Count of submissions by tuple length.",
	}, []string{"network", "length", "status"})
	coordinatorSubmitDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "coordinator",
		Name:      "submission_duration_seconds",
		Help:      "Duration of submissions.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
)

// Miner tracks the sieve, verifier and coordinator metrics of one session.
type Miner struct {
	network model.Network
}

// NewMiner constructs a Miner with defaults.
func NewMiner(network model.Network) *Miner {
	return &Miner{network: networkLabel(network)}
}

// ObserveSegment records one sieved segment.
func (m Miner) ObserveSegment(candidates int, started time.Time) {
	sieveSegmentDuration.WithLabelValues(string(m.network)).Observe(time.Since(started).Seconds())
	sieveSegmentCandidates.WithLabelValues(string(m.network)).Observe(float64(candidates))
}

// ObserveVerify records one verified candidate.
func (m Miner) ObserveVerify(length int, err error, started time.Time) {
	s := status(err)
	verifyTotal.WithLabelValues(string(m.network), s).Inc()
	verifyDuration.WithLabelValues(string(m.network), s).Observe(time.Since(started).Seconds())
	if err == nil {
		verifyRunLength.WithLabelValues(string(m.network), strconv.Itoa(length)).Inc()
	}
}

// ObserveInstall records a job slot replacement.
func (m Miner) ObserveInstall(generation uint64) {
	coordinatorInstallsTotal.WithLabelValues(string(m.network)).Inc()
	coordinatorGeneration.WithLabelValues(string(m.network)).Set(float64(generation))
}

// ObserveSubmit records a submission outcome and duration.
func (m Miner) ObserveSubmit(err error, length int, started time.Time) {
	s := status(err)
	coordinatorSubmitTotal.WithLabelValues(string(m.network), strconv.Itoa(length), s).Inc()
	coordinatorSubmitDuration.WithLabelValues(string(m.network), s).Observe(time.Since(started).Seconds())
}
