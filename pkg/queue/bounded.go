// Package queue provides a bounded multi-producer multi-consumer queue.
package queue

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Push and Pop once the queue has been closed.
var ErrClosed = errors.New("queue closed")

// Bounded is a FIFO queue with a fixed capacity. Push blocks while the queue is
// full and Pop blocks while it is empty; Close wakes every blocked caller.
// Items still buffered when the queue is closed are dropped.
type Bounded[T any] struct {
	items     chan T
	closed    chan struct{}
	closeOnce sync.Once
}

// NewBounded creates a queue holding at most capacity items.
func NewBounded[T any](capacity int) *Bounded[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Bounded[T]{
		items:  make(chan T, capacity),
		closed: make(chan struct{}),
	}
}

// Push appends item, waiting for free space.
func (q *Bounded[T]) Push(ctx context.Context, item T) error {
	select {
	case <-q.closed:
		return ErrClosed
	default:
	}

	select {
	case <-q.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	case q.items <- item:
		return nil
	}
}

// TryPush appends item only if there is free space right now.
func (q *Bounded[T]) TryPush(item T) (bool, error) {
	select {
	case <-q.closed:
		return false, ErrClosed
	default:
	}

	select {
	case q.items <- item:
		return true, nil
	default:
		return false, nil
	}
}

// Pop removes the oldest item, waiting until one is available.
func (q *Bounded[T]) Pop(ctx context.Context) (T, error) {
	var zero T
	select {
	case <-q.closed:
		return zero, ErrClosed
	default:
	}

	select {
	case <-q.closed:
		return zero, ErrClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	case item := <-q.items:
		return item, nil
	}
}

// Len returns the number of buffered items.
func (q *Bounded[T]) Len() int { return len(q.items) }

// Cap returns the queue capacity.
func (q *Bounded[T]) Cap() int { return cap(q.items) }

// Close marks the queue closed. It is safe to call more than once.
func (q *Bounded[T]) Close() {
	q.closeOnce.Do(func() { close(q.closed) })
}

// Closed reports whether Close has been called.
func (q *Bounded[T]) Closed() bool {
	select {
	case <-q.closed:
		return true
	default:
		return false
	}
}
