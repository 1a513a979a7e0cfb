package jobsource

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/rieminer7000/internal/model"
)

// Tally accepts submissions of synthetic jobs. Full length tuples count as
// blocks.
type Tally struct {
	logger        *zap.Logger
	recorder      Recorder
	patternLength int
	tuples        atomic.Uint64
	blocks        atomic.Uint64
}

// NewTally creates a submitter for synthetic jobs. recorder may be nil.
func NewTally(logger *zap.Logger, recorder Recorder, patternLength int) *Tally {
	return &Tally{logger: logger, recorder: recorder, patternLength: patternLength}
}

// Submit counts the tuple and records it.
func (t *Tally) Submit(ctx context.Context, s model.Submission) error {
	t.tuples.Add(1)
	if s.Length >= t.patternLength {
		blocks := t.blocks.Add(1)
		t.logger.Info("block found",
			zap.String("job", s.Job.ID),
			zap.Uint64("blocks", blocks),
			zap.Stringer("base", s.Base),
		)
	} else {
		t.logger.Info("tuple found", zap.Int("length", s.Length), zap.Stringer("base", s.Base))
	}

	if t.recorder == nil {
		return nil
	}
	if err := t.recorder.Record(ctx, s); err != nil {
		return fmt.Errorf("record tuple: %w", err)
	}
	return nil
}

// Tuples is the number of submissions.
func (t *Tally) Tuples() uint64 { return t.tuples.Load() }

// Blocks is the number of full length submissions.
func (t *Tally) Blocks() uint64 { return t.blocks.Load() }
