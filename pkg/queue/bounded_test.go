package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBounded_FIFO(t *testing.T) {
	q := NewBounded[int](3)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, q.Push(ctx, i))
	}
	assert.Equal(t, 3, q.Len())

	ok, err := q.TryPush(4)
	require.NoError(t, err)
	assert.False(t, ok, "push into a full queue must not succeed")

	for i := 1; i <= 3; i++ {
		got, err := q.Pop(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, got)
	}
}

func TestBounded_PushBlocksWhenFull(t *testing.T) {
	q := NewBounded[int](1)
	require.NoError(t, q.Push(context.Background(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := q.Push(ctx, 2)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, q.Len())
}

func TestBounded_CloseWakesBlockedCallers(t *testing.T) {
	tests := []struct {
		name  string
		block func(q *Bounded[int]) error
		fill  bool
	}{
		{
			name: "blocked pop",
			block: func(q *Bounded[int]) error {
				_, err := q.Pop(context.Background())
				return err
			},
		},
		{
			name: "blocked push",
			block: func(q *Bounded[int]) error {
				return q.Push(context.Background(), 2)
			},
			fill: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewBounded[int](1)
			if tt.fill {
				require.NoError(t, q.Push(context.Background(), 1))
			}

			done := make(chan error, 1)
			go func() { done <- tt.block(q) }()

			time.Sleep(10 * time.Millisecond)
			q.Close()
			q.Close()

			select {
			case err := <-done:
				assert.True(t, errors.Is(err, ErrClosed), "got %v", err)
			case <-time.After(time.Second):
				t.Fatal("blocked caller was not woken by Close")
			}
			assert.True(t, q.Closed())
		})
	}
}

func TestBounded_NeverExceedsCapacity(t *testing.T) {
	const capacity = 4
	q := NewBounded[int](capacity)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var produced atomic.Int64
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if err := q.Push(ctx, i); err != nil {
					return
				}
				produced.Add(1)
			}
		}()
	}

	consumed := 0
	for consumed < 200 {
		assert.LessOrEqual(t, q.Len(), capacity)
		_, err := q.Pop(ctx)
		require.NoError(t, err)
		consumed++
		time.Sleep(100 * time.Microsecond)
		assert.LessOrEqual(t, produced.Load()-int64(consumed), int64(capacity))
	}
	wg.Wait()
}
