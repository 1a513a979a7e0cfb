// Package recorder writes found tuples to the tuples file and ClickHouse.
package recorder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/rieminer7000/internal/model"
	"github.com/goodnatureofminers/rieminer7000/pkg/batcher"
)

const (
	sinkFile       = "file"
	sinkClickhouse = "clickhouse"
)

// Config selects the sinks. An empty TuplesFile disables the file sink.
type Config struct {
	TuplesFile string
	Batch      batcher.Config
}

// Recorder batches tuple records and flushes them to every configured sink.
type Recorder struct {
	logger     *zap.Logger
	tuplesFile string
	repo       Repository
	metrics    Metrics
	batcher    *batcher.Batcher[model.TupleRecord]
	now        func() time.Time
}

// New creates a recorder. repo and metrics may be nil.
func New(logger *zap.Logger, cfg Config, repo Repository, metrics Metrics) *Recorder {
	r := &Recorder{
		logger:     logger,
		tuplesFile: cfg.TuplesFile,
		repo:       repo,
		metrics:    metrics,
		now:        time.Now,
	}
	r.batcher = batcher.New(logger.Named("batcher"), cfg.Batch, r.flush)
	return r
}

// Start begins flushing in the background.
func (r *Recorder) Start(ctx context.Context) { r.batcher.Start(ctx) }

// Stop flushes pending records and waits for the background loop.
func (r *Recorder) Stop() { r.batcher.Stop() }

// Record queues a submitted tuple.
func (r *Recorder) Record(ctx context.Context, s model.Submission) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate record id: %w", err)
	}
	rec := model.TupleRecord{
		ID:      id.String(),
		Length:  uint8(s.Length),
		Base:    s.Base.String(),
		FoundAt: s.FoundAt,
	}
	if s.FoundAt.IsZero() {
		rec.FoundAt = r.now()
	}
	if job := s.Job; job != nil {
		rec.Network = job.Network
		rec.JobID = job.ID
		rec.Height = job.Height
		rec.Difficulty = job.Difficulty
		if job.Constellation != nil {
			rec.Pattern = job.Constellation.Pattern.String()
		}
	}
	return r.batcher.Add(ctx, rec)
}

func (r *Recorder) flush(ctx context.Context, records []model.TupleRecord) error {
	var errs []error
	if r.tuplesFile != "" {
		started := time.Now()
		err := r.appendFile(records)
		r.observe(sinkFile, len(records), err, started)
		if err != nil {
			errs = append(errs, fmt.Errorf("write tuples file: %w", err))
		}
	}
	if r.repo != nil {
		started := time.Now()
		err := r.repo.InsertTuples(ctx, records)
		r.observe(sinkClickhouse, len(records), err, started)
		if err != nil {
			errs = append(errs, fmt.Errorf("insert tuples: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (r *Recorder) observe(sink string, records int, err error, started time.Time) {
	if r.metrics != nil {
		r.metrics.ObserveFlush(sink, records, err, started)
	}
}

func (r *Recorder) appendFile(records []model.TupleRecord) (err error) {
	f, err := os.OpenFile(r.tuplesFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	w := bufio.NewWriter(f)
	for _, rec := range records {
		if _, err = fmt.Fprintln(w, FormatLine(rec)); err != nil {
			return err
		}
	}
	return w.Flush()
}

// FormatLine renders a record as a tuples file line.
func FormatLine(rec model.TupleRecord) string {
	return fmt.Sprintf("%s %d-tuple %s pattern %s height %d difficulty %.2f job %s",
		rec.FoundAt.UTC().Format(time.RFC3339), rec.Length, rec.Base, rec.Pattern, rec.Height, rec.Difficulty, rec.JobID)
}
