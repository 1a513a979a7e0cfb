// Package miner runs the sieve and verification workers against the job held
// by the coordinator.
package miner

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/rieminer7000/internal/constellation"
	"github.com/goodnatureofminers/rieminer7000/internal/coordinator"
	"github.com/goodnatureofminers/rieminer7000/internal/model"
	"github.com/goodnatureofminers/rieminer7000/internal/primetable"
	"github.com/goodnatureofminers/rieminer7000/internal/sieve"
	"github.com/goodnatureofminers/rieminer7000/internal/verifier"
	"github.com/goodnatureofminers/rieminer7000/pkg/queue"
)

const (
	// pushRecheck bounds how long a sieve worker blocks on a full queue
	// before it checks whether its job is still current.
	pushRecheck = 100 * time.Millisecond
	// staleCheckEvery is the number of pushed candidates between generation
	// checks.
	staleCheckEvery = 256
)

// errStaleWork is returned by prepare for a generation that is no longer
// current.
var errStaleWork = errors.New("work generation superseded")

type preparedJob struct {
	generation uint64
	prepared   *sieve.Prepared
	err        error
}

// Pool owns the worker goroutines and the candidate queue between them.
type Pool struct {
	logger   *zap.Logger
	params   Params
	engine   *sieve.Engine
	verifier *verifier.Verifier
	coord    Coordinator
	metrics  Metrics
	queue    *queue.Bounded[sieve.Candidate]
	stats    *Stats

	prepareMu sync.Mutex
	prepared  atomic.Pointer[preparedJob]
	ran       atomic.Bool
}

// NewPool builds the sieve engine for c and the candidate queue. params must
// have been normalized. metrics may be nil.
func NewPool(
	ctx context.Context,
	logger *zap.Logger,
	params Params,
	c *constellation.Constellation,
	table primetable.Table,
	coord Coordinator,
	metrics Metrics,
) (*Pool, error) {
	engine, err := sieve.NewEngine(ctx, logger.Named("sieve"), params.SieveConfig(), c, table)
	if err != nil {
		return nil, fmt.Errorf("create sieve engine: %w", err)
	}
	return &Pool{
		logger:   logger,
		params:   params,
		engine:   engine,
		verifier: verifier.New(params.PrimalityTest, verifier.DefaultRounds),
		coord:    coord,
		metrics:  metrics,
		queue:    queue.NewBounded[sieve.Candidate](params.QueueSize),
		stats:    newStats(),
	}, nil
}

// Engine returns the sieve engine.
func (p *Pool) Engine() *sieve.Engine { return p.engine }

// Stats returns a snapshot of the pipeline and coordinator counters.
func (p *Pool) Stats() Snapshot {
	s := p.stats.Snapshot(p.params.Pattern.Len())
	s.QueueLength = p.queue.Len()
	s.Coordinator = p.coord.Counters()
	return s
}

// Run starts the workers and blocks until ctx is canceled. The queue is
// closed on shutdown and every worker is joined before Run returns. A pool
// runs once.
func (p *Pool) Run(ctx context.Context) error {
	if !p.ran.CompareAndSwap(false, true) {
		return errors.New("pool already ran")
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < p.params.SieveWorkers; i++ {
		logger := p.logger.Named("sieve-worker").With(zap.Int("worker", i))
		g.Go(func() error { return p.sieveLoop(gctx, logger) })
	}
	for i := 0; i < p.params.Threads-p.params.SieveWorkers; i++ {
		logger := p.logger.Named("verify-worker").With(zap.Int("worker", i))
		g.Go(func() error { return p.verifyLoop(gctx, logger) })
	}
	g.Go(func() error {
		<-gctx.Done()
		p.queue.Close()
		return nil
	})

	p.logger.Info("worker pool started",
		zap.Int("sieveWorkers", p.params.SieveWorkers),
		zap.Int("verifyWorkers", p.params.Threads-p.params.SieveWorkers),
		zap.Int("queueSize", p.params.QueueSize),
	)
	err := g.Wait()
	p.logger.Info("worker pool stopped")
	return err
}

// prepare returns the shared per-job state, computing it once per generation.
// The shared slot only moves forward: a generation older than the stored one
// or than the coordinator's is never prepared.
func (p *Pool) prepare(ctx context.Context, work *coordinator.Work) (*sieve.Prepared, error) {
	if pj := p.prepared.Load(); pj != nil && pj.generation == work.Generation {
		return pj.prepared, pj.err
	}

	p.prepareMu.Lock()
	defer p.prepareMu.Unlock()
	pj := p.prepared.Load()
	if pj != nil && pj.generation == work.Generation {
		return pj.prepared, pj.err
	}
	if (pj != nil && pj.generation > work.Generation) || p.coord.Generation() != work.Generation {
		return nil, errStaleWork
	}

	started := time.Now()
	prepared, err := p.engine.Prepare(ctx, work.Job)
	if err != nil && ctx.Err() != nil {
		return nil, err
	}
	p.prepared.Store(&preparedJob{generation: work.Generation, prepared: prepared, err: err})
	if err == nil {
		p.logger.Debug("job prepared",
			zap.String("job", work.Job.ID),
			zap.Uint64("generation", work.Generation),
			zap.Duration("took", time.Since(started)),
		)
	}
	return prepared, err
}

func (p *Pool) sieveLoop(ctx context.Context, logger *zap.Logger) error {
	seg := p.engine.NewSegment()
	var candidates []sieve.Candidate

	for ctx.Err() == nil {
		work, ok := p.coord.Current()
		if !ok {
			if err := p.coord.Wait(ctx, work.Generation); err != nil {
				return nil
			}
			continue
		}

		prepared, err := p.prepare(ctx, work)
		if errors.Is(err, errStaleWork) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error("job preparation failed", zap.String("job", work.Job.ID), zap.Error(err))
			if err := p.coord.Wait(ctx, work.Generation); err != nil {
				return nil
			}
			continue
		}

		index := work.Claim()
		unit, ok := p.engine.Unit(index)
		if !ok {
			if index == p.engine.Units() {
				logger.Info("job exhausted", zap.String("job", work.Job.ID), zap.Uint64("units", index))
			}
			if err := p.coord.Wait(ctx, work.Generation); err != nil {
				return nil
			}
			continue
		}

		started := time.Now()
		p.engine.Sieve(prepared, unit, seg)
		if p.coord.Generation() != work.Generation {
			p.stats.staleSegments.Add(1)
			continue
		}
		candidates = seg.Candidates(work.Generation, candidates[:0])
		p.stats.segments.Add(1)
		if p.metrics != nil {
			p.metrics.ObserveSegment(len(candidates), started)
		}

		if err := p.push(ctx, work.Generation, candidates); err != nil {
			if errors.Is(err, queue.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
	return nil
}

// push hands candidates to the verifiers, blocking while the queue is full.
// Candidates left over when the generation changes are dropped.
func (p *Pool) push(ctx context.Context, generation uint64, candidates []sieve.Candidate) error {
	for i, c := range candidates {
		if i%staleCheckEvery == 0 && p.coord.Generation() != generation {
			p.stats.staleCandidates.Add(uint64(len(candidates) - i))
			return nil
		}
		if ok, err := p.queue.TryPush(c); err != nil {
			return err
		} else if ok {
			p.stats.candidatesQueued.Add(1)
			continue
		}
		for {
			pushCtx, cancel := context.WithTimeout(ctx, pushRecheck)
			err := p.queue.Push(pushCtx, c)
			cancel()
			if err == nil {
				p.stats.candidatesQueued.Add(1)
				break
			}
			if !errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return err
			}
			if p.coord.Generation() != generation {
				p.stats.staleCandidates.Add(uint64(len(candidates) - i))
				return nil
			}
		}
	}
	return nil
}

func (p *Pool) verifyLoop(ctx context.Context, logger *zap.Logger) error {
	pattern := p.params.Pattern
	for {
		c, err := p.queue.Pop(ctx)
		if err != nil {
			return nil
		}

		pj := p.prepared.Load()
		if pj == nil || pj.prepared == nil || pj.generation != c.Generation || p.coord.Generation() != c.Generation {
			p.stats.staleCandidates.Add(1)
			continue
		}

		started := time.Now()
		base := pj.prepared.Base(c.K, c.OffsetIndex)
		length, err := p.verifier.Verify(base, pattern, c.Eliminated)
		if p.metrics != nil {
			p.metrics.ObserveVerify(length, err, started)
		}
		if err != nil {
			p.stats.verifyFailures.Add(1)
			logger.Error("candidate verification failed",
				zap.Uint64("k", c.K),
				zap.Int("offsetIndex", c.OffsetIndex),
				zap.Error(err),
			)
			continue
		}
		p.stats.recordRun(length)

		if length >= p.params.TupleLengthMin {
			p.report(ctx, logger, c, base, length)
		}
	}
}

func (p *Pool) report(ctx context.Context, logger *zap.Logger, c sieve.Candidate, base *big.Int, length int) {
	result := model.Result{Generation: c.Generation, Base: base, Length: length, OffsetIndex: c.OffsetIndex}
	if p.coord.ReportResult(ctx, result) {
		p.stats.resultsReported.Add(1)
		logger.Debug("result reported", zap.Int("length", length), zap.Uint64("k", c.K))
	}
}
