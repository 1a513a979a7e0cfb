// Package coordinator owns the active mining job. Jobs are swapped atomically
// and every swap starts a new generation; work derived from an older
// generation is discarded when it is reported.
package coordinator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/rieminer7000/internal/model"
)

// ErrNoSubmitter is returned by Run when the coordinator has no submitter.
var ErrNoSubmitter = errors.New("no submitter configured")

// State of the job slot.
type State int32

const (
	// Idle means no job has been installed yet.
	Idle State = iota
	// Active means the slot holds a job workers may claim units from.
	Active
	// Superseded means the last job was withdrawn without a replacement.
	Superseded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Superseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// DefaultRestartDifficultyFactor is the relative difficulty increase that
// invalidates a job.
const DefaultRestartDifficultyFactor = 1.05

const dispatchBuffer = 64

// Work is an immutable snapshot of the slot. Workers keep it for the duration
// of one unit and claim units through its cursor.
type Work struct {
	Job        *model.Job
	Generation uint64
	cursor     atomic.Uint64
}

// Claim returns the next unclaimed unit index. Indexes are never handed out
// twice for the same generation.
func (w *Work) Claim() uint64 {
	return w.cursor.Add(1) - 1
}

// Claimed returns the number of indexes handed out so far.
func (w *Work) Claimed() uint64 {
	return w.cursor.Load()
}

// Counters are the coordinator statistics.
type Counters struct {
	JobsInstalled   uint64
	Supersessions   uint64
	StaleResults    uint64
	ResultsReported uint64
	Submitted       uint64
	SubmitFailed    uint64
}

// Coordinator holds the active job slot and dispatches qualifying results.
type Coordinator struct {
	logger    *zap.Logger
	metrics   Metrics
	submitter Submitter
	factor    float64

	slot  atomic.Pointer[Work]
	state atomic.Int32

	// mu serializes slot replacement and guards changed.
	mu      sync.Mutex
	changed chan struct{}

	submissions chan model.Submission

	installed    atomic.Uint64
	superseded   atomic.Uint64
	staleResults atomic.Uint64
	reported     atomic.Uint64
	submitted    atomic.Uint64
	submitFailed atomic.Uint64
}

// New creates an idle coordinator. A factor below 1 falls back to
// DefaultRestartDifficultyFactor.
func New(logger *zap.Logger, metrics Metrics, submitter Submitter, restartDifficultyFactor float64) *Coordinator {
	if restartDifficultyFactor < 1 {
		restartDifficultyFactor = DefaultRestartDifficultyFactor
	}
	c := &Coordinator{
		logger:      logger,
		metrics:     metrics,
		submitter:   submitter,
		factor:      restartDifficultyFactor,
		changed:     make(chan struct{}),
		submissions: make(chan model.Submission, dispatchBuffer),
	}
	c.slot.Store(&Work{})
	return c
}

// InstallJob makes job the active job and returns its generation. Installing
// the job that is already active changes nothing. It never waits for workers.
func (c *Coordinator) InstallJob(job *model.Job) uint64 {
	if job == nil {
		generation, _ := c.supersede(nil)
		return generation
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.slot.Load()
	if current.Job == job {
		return current.Generation
	}
	next := &Work{Job: job, Generation: current.Generation + 1}
	c.swap(next, Active)
	c.installed.Add(1)
	if c.metrics != nil {
		c.metrics.ObserveInstall(next.Generation)
	}

	c.logger.Info("job installed",
		zap.String("job", job.ID),
		zap.Uint32("height", job.Height),
		zap.Float64("difficulty", job.Difficulty),
		zap.Uint64("generation", next.Generation),
	)
	return next.Generation
}

// supersede drops the active job. With expected set, nothing happens unless
// it is still the active generation.
func (c *Coordinator) supersede(expected *uint64) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.slot.Load()
	if expected != nil && current.Generation != *expected {
		return current.Generation, false
	}
	if current.Job == nil {
		return current.Generation, false
	}
	next := &Work{Generation: current.Generation + 1}
	c.swap(next, Superseded)
	c.superseded.Add(1)
	return next.Generation, true
}

func (c *Coordinator) swap(next *Work, state State) {
	c.slot.Store(next)
	c.state.Store(int32(state))
	close(c.changed)
	c.changed = make(chan struct{})
}

// Generation returns the current generation.
func (c *Coordinator) Generation() uint64 {
	return c.slot.Load().Generation
}

// Current returns a snapshot of the slot. The bool is false when no job is
// active.
func (c *Coordinator) Current() (*Work, bool) {
	w := c.slot.Load()
	return w, w.Job != nil
}

// State returns the slot state.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// Wait blocks until the generation differs from generation.
func (c *Coordinator) Wait(ctx context.Context, generation uint64) error {
	for {
		c.mu.Lock()
		if c.slot.Load().Generation != generation {
			c.mu.Unlock()
			return nil
		}
		changed := c.changed
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}

// ObserveDifficulty supersedes the active job when the network difficulty
// reached its recorded difficulty times the restart factor. It reports
// whether the job was superseded.
func (c *Coordinator) ObserveDifficulty(difficulty float64) bool {
	w := c.slot.Load()
	if w.Job == nil || difficulty < w.Job.Difficulty*c.factor {
		return false
	}
	generation := w.Generation
	if _, ok := c.supersede(&generation); !ok {
		return false
	}
	c.logger.Info("difficulty increased, job superseded",
		zap.String("job", w.Job.ID),
		zap.Float64("jobDifficulty", w.Job.Difficulty),
		zap.Float64("networkDifficulty", difficulty),
	)
	return true
}

// ReportResult accepts a verified run. Results of an older generation are
// counted and dropped. Runs reaching the job's minimum length are queued for
// submission; the return value reports whether that happened.
func (c *Coordinator) ReportResult(ctx context.Context, r model.Result) bool {
	w := c.slot.Load()
	if w.Job == nil || r.Generation != w.Generation {
		c.staleResults.Add(1)
		return false
	}
	if r.Length < w.Job.MinLength {
		return false
	}

	sub := model.Submission{
		Job:        w.Job,
		Generation: w.Generation,
		Base:       r.Base,
		Length:     r.Length,
		FoundAt:    time.Now(),
	}
	select {
	case <-ctx.Done():
		return false
	case c.submissions <- sub:
		c.reported.Add(1)
		return true
	}
}

// Run forwards queued results to the submitter until ctx is done. A result
// whose generation became stale while queued is dropped.
func (c *Coordinator) Run(ctx context.Context) error {
	if c.submitter == nil {
		return ErrNoSubmitter
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case sub := <-c.submissions:
			c.dispatch(ctx, sub)
		}
	}
}

func (c *Coordinator) dispatch(ctx context.Context, sub model.Submission) {
	if sub.Generation != c.Generation() {
		c.staleResults.Add(1)
		c.logger.Debug("stale result dropped before submission",
			zap.Uint64("generation", sub.Generation),
			zap.Int("length", sub.Length),
		)
		return
	}

	started := time.Now()
	err := c.submitter.Submit(ctx, sub)
	if c.metrics != nil {
		c.metrics.ObserveSubmit(err, sub.Length, started)
	}
	if err != nil {
		c.submitFailed.Add(1)
		c.logger.Error("submission failed",
			zap.String("job", sub.Job.ID),
			zap.Int("length", sub.Length),
			zap.Error(err),
		)
		return
	}
	c.submitted.Add(1)
	c.logger.Info("result submitted",
		zap.String("job", sub.Job.ID),
		zap.Int("length", sub.Length),
		zap.String("base", sub.Base.String()),
	)
}

// Counters returns a snapshot of the coordinator statistics.
func (c *Coordinator) Counters() Counters {
	return Counters{
		JobsInstalled:   c.installed.Load(),
		Supersessions:   c.superseded.Load(),
		StaleResults:    c.staleResults.Load(),
		ResultsReported: c.reported.Load(),
		Submitted:       c.submitted.Load(),
		SubmitFailed:    c.submitFailed.Load(),
	}
}
