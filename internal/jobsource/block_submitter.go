package jobsource

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/rieminer7000/internal/model"
	"github.com/goodnatureofminers/rieminer7000/internal/riecoin"
)

// ErrNotNodeJob is returned for submissions whose job did not come from a
// node template.
var ErrNotNodeJob = errors.New("submission has no block template")

// BlockSubmitter turns results into blocks and submits them to the node.
type BlockSubmitter struct {
	logger   *zap.Logger
	client   NodeClient
	recorder Recorder
}

// NewBlockSubmitter creates a submitter. recorder may be nil.
func NewBlockSubmitter(logger *zap.Logger, client NodeClient, recorder Recorder) *BlockSubmitter {
	return &BlockSubmitter{logger: logger, client: client, recorder: recorder}
}

// Submit encodes the base as the header offset and sends the block.
func (b *BlockSubmitter) Submit(ctx context.Context, s model.Submission) error {
	if s.Job == nil {
		return ErrNotNodeJob
	}
	work, ok := s.Job.Payload.(*BlockWork)
	if !ok {
		return ErrNotNodeJob
	}

	header := work.Header
	offset, err := riecoin.EncodeOffset(s.Base, s.Job.Target, uint64(s.Job.Difficulty))
	if err != nil {
		return fmt.Errorf("encode offset: %w", err)
	}
	header.Offset = offset
	block := riecoin.Block{Header: header, Transactions: work.Transactions}
	blockHex, err := block.Hex()
	if err != nil {
		return fmt.Errorf("serialize block: %w", err)
	}

	submitErr := b.client.SubmitBlock(blockHex)
	if submitErr != nil {
		b.logger.Warn("block not accepted", zap.String("job", s.Job.ID), zap.Error(submitErr))
	} else {
		b.logger.Info("block submitted",
			zap.String("job", s.Job.ID),
			zap.Uint32("height", s.Job.Height),
			zap.Int("length", s.Length),
			zap.Stringer("base", s.Base),
		)
	}

	if b.recorder != nil {
		if err := b.recorder.Record(ctx, s); err != nil {
			b.logger.Error("record tuple failed", zap.Error(err))
		}
	}
	return submitErr
}
