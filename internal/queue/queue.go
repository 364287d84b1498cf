// Package queue provides the FIFO hand-off of pending job ids from the
// submission path to the worker.
package queue

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Queue is an unbounded FIFO of job ids. Enqueue never blocks the submitter;
// Dequeue blocks the single consumer until an id arrives or the context is
// cancelled. Safe for concurrent producers.
type Queue struct {
	mu    sync.Mutex
	items []uuid.UUID

	// wake carries at most one token so a blocked Dequeue is nudged without
	// the producer ever waiting.
	wake chan struct{}
}

// New creates an empty Queue.
func New() *Queue {
	return &Queue{
		wake: make(chan struct{}, 1),
	}
}

// Enqueue appends id to the queue and wakes the consumer if it is waiting.
func (q *Queue) Enqueue(id uuid.UUID) {
	q.mu.Lock()
	q.items = append(q.items, id)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Dequeue removes and returns the oldest id, blocking while the queue is
// empty. Returns the context error once ctx is cancelled; the worker treats
// that as its stop signal.
func (q *Queue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			id := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return id, nil
		}
		q.mu.Unlock()

		select {
		case <-q.wake:
		case <-ctx.Done():
			return uuid.Nil, ctx.Err()
		}
	}
}

// Len returns the number of ids currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
