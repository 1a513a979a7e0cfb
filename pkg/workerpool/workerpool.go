// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Chunks splits [0, n) into consecutive ranges of at most chunkSize elements and
// runs process for each range on up to workerCount goroutines.
// The first error cancels the context passed to the remaining calls, and
// onCancel (if set) is invoked once.
func Chunks(
	ctx context.Context,
	workerCount int,
	n int,
	chunkSize int,
	process func(ctx context.Context, lo, hi int) error,
	onCancel func(),
) error {
	if n <= 0 {
		return ctx.Err()
	}
	if workerCount < 1 {
		workerCount = 1
	}
	if chunkSize < 1 {
		chunkSize = (n + workerCount - 1) / workerCount
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)

	for lo := 0; lo < n; lo += chunkSize {
		if gctx.Err() != nil {
			break
		}
		lo, hi := lo, min(lo+chunkSize, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return process(gctx, lo, hi)
		})
	}

	err := g.Wait()
	if err != nil && onCancel != nil {
		onCancel()
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}
