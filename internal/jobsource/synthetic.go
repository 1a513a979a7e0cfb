// Package jobsource produces mining jobs for the coordinator and submits the
// tuples it finds.
package jobsource

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/rieminer7000/internal/constellation"
	"github.com/goodnatureofminers/rieminer7000/internal/model"
	"github.com/goodnatureofminers/rieminer7000/internal/riecoin"
)

// ErrFinished is returned by Run once a session limit is reached.
var ErrFinished = errors.New("session limit reached")

const defaultLimitCheck = time.Second

// SyntheticConfig configures locally generated jobs. Zero durations and
// limits disable the corresponding behavior.
type SyntheticConfig struct {
	Network    model.Network
	Difficulty float64
	// BlockInterval is the time between synthetic blocks. Zero keeps one job
	// for the whole session.
	BlockInterval   time.Duration
	TimeLimit       time.Duration
	PrimeCountLimit uint64
	MinLength       int
	Seed            chainhash.Hash
}

// Synthetic generates jobs without a node, for benchmarking and searching.
type Synthetic struct {
	logger        *zap.Logger
	cfg           SyntheticConfig
	constellation *constellation.Constellation
	coord         Coordinator
	progress      Progress
	metrics       Metrics
	limitCheck    time.Duration
	height        uint32
}

// NewSynthetic creates a synthetic source. progress is required when a
// prime count limit is set.
func NewSynthetic(
	logger *zap.Logger,
	cfg SyntheticConfig,
	c *constellation.Constellation,
	coord Coordinator,
	progress Progress,
	metrics Metrics,
) (*Synthetic, error) {
	if coord == nil {
		return nil, errors.New("coordinator is required")
	}
	if metrics == nil {
		return nil, errors.New("job source metrics is required")
	}
	if cfg.PrimeCountLimit > 0 && progress == nil {
		return nil, errors.New("prime count limit needs a progress source")
	}
	if cfg.Difficulty < 1 {
		return nil, fmt.Errorf("difficulty must be at least 1, got %g", cfg.Difficulty)
	}
	if cfg.Network == "" {
		cfg.Network = model.Benchmark
	}
	return &Synthetic{
		logger:        logger.With(zap.String("network", string(cfg.Network))),
		cfg:           cfg,
		constellation: c,
		coord:         coord,
		progress:      progress,
		metrics:       metrics,
		limitCheck:    defaultLimitCheck,
	}, nil
}

// Job builds the synthetic job for height.
func (s *Synthetic) Job(height uint32) *model.Job {
	var buf [4 + chainhash.HashSize]byte
	binary.LittleEndian.PutUint32(buf[:4], height)
	copy(buf[4:], s.cfg.Seed[:])
	hash := chainhash.DoubleHashH(buf[:])

	return &model.Job{
		ID:            fmt.Sprintf("%s-%d", s.cfg.Network, height),
		Network:       s.cfg.Network,
		Height:        height,
		BaseHash:      hash,
		Target:        riecoin.Target(hash, uint64(s.cfg.Difficulty)),
		Difficulty:    s.cfg.Difficulty,
		MinLength:     s.cfg.MinLength,
		Constellation: s.constellation,
		CreatedAt:     time.Now(),
	}
}

// Run installs a first job, then a new one every block interval. It returns
// nil when ctx is canceled and ErrFinished once a limit is reached.
func (s *Synthetic) Run(ctx context.Context) error {
	s.install()

	var blocks, deadline, check <-chan time.Time
	if s.cfg.BlockInterval > 0 {
		ticker := time.NewTicker(s.cfg.BlockInterval)
		defer ticker.Stop()
		blocks = ticker.C
	}
	if s.cfg.TimeLimit > 0 {
		timer := time.NewTimer(s.cfg.TimeLimit)
		defer timer.Stop()
		deadline = timer.C
	}
	if s.cfg.PrimeCountLimit > 0 {
		ticker := time.NewTicker(s.limitCheck)
		defer ticker.Stop()
		check = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-blocks:
			s.install()
		case <-deadline:
			s.logger.Info("time limit reached", zap.Duration("limit", s.cfg.TimeLimit))
			return ErrFinished
		case <-check:
			if primes := s.progress.Stats().Primes; primes >= s.cfg.PrimeCountLimit {
				s.logger.Info("prime count limit reached", zap.Uint64("primes", primes))
				return ErrFinished
			}
		}
	}
}

func (s *Synthetic) install() {
	s.height++
	job := s.Job(s.height)
	generation := s.coord.InstallJob(job)
	s.metrics.ObserveJob(job)
	s.logger.Info("new job",
		zap.String("job", job.ID),
		zap.Uint64("generation", generation),
		zap.Float64("difficulty", job.Difficulty),
	)
}
