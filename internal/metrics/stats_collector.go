package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goodnatureofminers/rieminer7000/internal/miner"
)

// SnapshotSource provides the miner statistics.
type SnapshotSource interface {
	Stats() miner.Snapshot
}

type statDesc struct {
	desc  *prometheus.Desc
	kind  prometheus.ValueType
	value func(miner.Snapshot) float64
}

// StatsCollector mirrors miner statistics to Prometheus. Every scrape takes a
// single snapshot so the exported values are consistent with each other.
type StatsCollector struct {
	source SnapshotSource
	stats  []statDesc
	runs   *prometheus.Desc
}

// NewStatsCollector creates a collector over source. Register it with a
// prometheus.Registerer.
func NewStatsCollector(source SnapshotSource) *StatsCollector {
	counter := func(name, help string, value func(miner.Snapshot) float64) statDesc {
		return statDesc{
			desc:  prometheus.NewDesc(prometheus.BuildFQName(namespace, "stats", name), help, nil, nil),
			kind:  prometheus.CounterValue,
			value: value,
		}
	}
	gauge := func(name, help string, value func(miner.Snapshot) float64) statDesc {
		s := counter(name, help, value)
		s.kind = prometheus.GaugeValue
		return s
	}

	return &StatsCollector{
		source: source,
		stats: []statDesc{
			counter("segments_total", "Segments sieved.", func(s miner.Snapshot) float64 { return float64(s.Segments) }),
			counter("stale_segments_total", "Segments discarded after a job change.", func(s miner.Snapshot) float64 { return float64(s.StaleSegments) }),
			counter("candidates_queued_total", "Candidates handed to verifiers.", func(s miner.Snapshot) float64 { return float64(s.CandidatesQueued) }),
			counter("stale_candidates_total", "Candidates discarded after a job change.", func(s miner.Snapshot) float64 { return float64(s.StaleCandidates) }),
			counter("candidates_verified_total", "Candidates verified.", func(s miner.Snapshot) float64 { return float64(s.CandidatesVerified) }),
			counter("primes_total", "Primes confirmed.", func(s miner.Snapshot) float64 { return float64(s.Primes) }),
			counter("verify_failures_total", "Candidates whose primality test failed.", func(s miner.Snapshot) float64 { return float64(s.VerifyFailures) }),
			counter("results_reported_total", "Results reported to the coordinator.", func(s miner.Snapshot) float64 { return float64(s.ResultsReported) }),
			counter("jobs_installed_total", "Jobs installed.", func(s miner.Snapshot) float64 { return float64(s.Coordinator.JobsInstalled) }),
			counter("stale_results_total", "Results discarded after a job change.", func(s miner.Snapshot) float64 { return float64(s.Coordinator.StaleResults) }),
			counter("submitted_total", "Results submitted.", func(s miner.Snapshot) float64 { return float64(s.Coordinator.Submitted) }),
			gauge("queue_length", "Candidates waiting for a verifier.", func(s miner.Snapshot) float64 { return float64(s.QueueLength) }),
			gauge("candidates_per_second", "Average verification rate.", func(s miner.Snapshot) float64 { return s.CandidatesPerSecond() }),
			gauge("ratio", "Observed 1-tuple to 2-tuple ratio.", func(s miner.Snapshot) float64 { return s.Ratio() }),
		},
		runs: prometheus.NewDesc(prometheus.BuildFQName(namespace, "stats", "tuples_total"),
			"Verified runs reaching at least the given length.", []string{"length"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, s := range c.stats {
		ch <- s.desc
	}
	ch <- c.runs
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := c.source.Stats()
	for _, s := range c.stats {
		ch <- prometheus.MustNewConstMetric(s.desc, s.kind, s.value(snapshot))
	}
	for n := 1; n < len(snapshot.Runs); n++ {
		ch <- prometheus.MustNewConstMetric(c.runs, prometheus.CounterValue, float64(snapshot.AtLeast(n)), strconv.Itoa(n))
	}
}
