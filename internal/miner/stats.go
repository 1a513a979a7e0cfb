package miner

import (
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/rieminer7000/internal/constellation"
	"github.com/goodnatureofminers/rieminer7000/internal/coordinator"
)

// Stats are the pipeline counters. All methods are safe for concurrent use.
type Stats struct {
	started time.Time

	segments           atomic.Uint64
	staleSegments      atomic.Uint64
	candidatesQueued   atomic.Uint64
	staleCandidates    atomic.Uint64
	candidatesVerified atomic.Uint64
	primes             atomic.Uint64
	verifyFailures     atomic.Uint64
	resultsReported    atomic.Uint64
	tuples             [constellation.MaxLength + 1]atomic.Uint64
}

func newStats() *Stats {
	return &Stats{started: time.Now()}
}

func (s *Stats) recordRun(length int) {
	s.candidatesVerified.Add(1)
	s.primes.Add(uint64(length))
	s.tuples[length].Add(1)
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Elapsed            time.Duration
	Segments           uint64
	StaleSegments      uint64
	CandidatesQueued   uint64
	StaleCandidates    uint64
	CandidatesVerified uint64
	Primes             uint64
	VerifyFailures     uint64
	ResultsReported    uint64
	QueueLength        int
	// Runs[n] is the number of verified candidates whose run length was n.
	Runs        []uint64
	Coordinator coordinator.Counters
}

// Snapshot copies the counters. Runs is trimmed to patternLength+1 entries.
func (s *Stats) Snapshot(patternLength int) Snapshot {
	runs := make([]uint64, patternLength+1)
	for i := range runs {
		runs[i] = s.tuples[i].Load()
	}
	return Snapshot{
		Elapsed:            time.Since(s.started),
		Segments:           s.segments.Load(),
		StaleSegments:      s.staleSegments.Load(),
		CandidatesQueued:   s.candidatesQueued.Load(),
		StaleCandidates:    s.staleCandidates.Load(),
		CandidatesVerified: s.candidatesVerified.Load(),
		Primes:             s.primes.Load(),
		VerifyFailures:     s.verifyFailures.Load(),
		ResultsReported:    s.resultsReported.Load(),
		Runs:               runs,
	}
}

// AtLeast returns the number of runs of length n or more.
func (s Snapshot) AtLeast(n int) uint64 {
	var total uint64
	for i := n; i < len(s.Runs); i++ {
		total += s.Runs[i]
	}
	return total
}

// CandidatesPerSecond is the average verification rate.
func (s Snapshot) CandidatesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.CandidatesVerified) / s.Elapsed.Seconds()
}

// Ratio estimates how many runs reaching length 1 it takes to see one of
// length 2. It returns 0 while there is not enough data.
func (s Snapshot) Ratio() float64 {
	two := s.AtLeast(2)
	if two == 0 {
		return 0
	}
	return float64(s.AtLeast(1)) / float64(two)
}

// EstimatedTupleTime extrapolates the average time to find a run of length
// n from the observed rate of 1-tuples and the ratio.
func (s Snapshot) EstimatedTupleTime(n int) time.Duration {
	ones := s.AtLeast(1)
	r := s.Ratio()
	if ones == 0 || r == 0 || n < 1 {
		return 0
	}
	perOne := s.Elapsed.Seconds() / float64(ones)
	est := perOne
	for i := 1; i < n; i++ {
		est *= r
	}
	if est > float64(1<<62)/float64(time.Second) {
		return time.Duration(1 << 62)
	}
	return time.Duration(est * float64(time.Second))
}
