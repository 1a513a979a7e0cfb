package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/rieminer7000/internal/model"
)

const insertTuplesQuery = `
INSERT INTO constellation_tuples (
	id,
	network,
	job_id,
	height,
	length,
	pattern,
	base,
	difficulty,
	found_at
) VALUES`

// InsertTuples stores tuple rows in ClickHouse.
func (r *Repository) InsertTuples(ctx context.Context, tuples []model.TupleRecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_tuples", firstNetwork(tuples), err, start)
	}()

	if len(tuples) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertTuplesQuery)
	if err != nil {
		return fmt.Errorf("prepare tuples batch: %w", err)
	}

	for _, tuple := range tuples {
		if err = batch.Append(
			tuple.ID,
			string(tuple.Network),
			tuple.JobID,
			tuple.Height,
			tuple.Length,
			tuple.Pattern,
			tuple.Base,
			tuple.Difficulty,
			tuple.FoundAt,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append tuple: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert tuples: %w", err)
	}
	return nil
}

func firstNetwork(tuples []model.TupleRecord) model.Network {
	if len(tuples) == 0 {
		return ""
	}
	return tuples[0].Network
}
