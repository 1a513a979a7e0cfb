package miner

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// StatsSource provides statistics snapshots.
type StatsSource interface {
	Stats() Snapshot
}

// Reporter logs a statistics line at a fixed interval.
type Reporter struct {
	logger   *zap.Logger
	source   StatsSource
	interval time.Duration
	length   int
}

// NewReporter creates a reporter. length is the tuple length used for the
// time estimate.
func NewReporter(logger *zap.Logger, source StatsSource, interval time.Duration, length int) *Reporter {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Reporter{logger: logger, source: source, interval: interval, length: length}
}

// Run logs until ctx is canceled.
func (r *Reporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	var last Snapshot
	for {
		select {
		case <-ctx.Done():
			r.log(r.source.Stats(), last)
			return nil
		case <-ticker.C:
			s := r.source.Stats()
			r.log(s, last)
			last = s
		}
	}
}

func (r *Reporter) log(s, last Snapshot) {
	var rate float64
	if d := s.Elapsed - last.Elapsed; d > 0 {
		rate = float64(s.CandidatesVerified-last.CandidatesVerified) / d.Seconds()
	}
	r.logger.Info("statistics",
		zap.Duration("elapsed", s.Elapsed.Truncate(time.Second)),
		zap.Float64("candidatesPerSecond", rate),
		zap.Float64("ratio", s.Ratio()),
		zap.String("tuples", FormatRuns(s)),
		zap.Duration("estimatedTupleTime", s.EstimatedTupleTime(r.length).Truncate(time.Second)),
		zap.Int("queue", s.QueueLength),
		zap.Uint64("staleCandidates", s.StaleCandidates),
		zap.Uint64("submitted", s.Coordinator.Submitted),
	)
}

// FormatRuns renders the number of runs reaching each length, e.g.
// "(120 14 2 0)".
func FormatRuns(s Snapshot) string {
	var b strings.Builder
	b.WriteByte('(')
	for n := 1; n < len(s.Runs); n++ {
		if n > 1 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatUint(s.AtLeast(n), 10))
	}
	b.WriteByte(')')
	return b.String()
}
