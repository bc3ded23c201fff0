package telemetry

import (
	"sync"
	"sync/atomic"

	"github.com/gammazero/deque"
)

// Channel hands items from one producer goroutine to one consumer goroutine.
// Push never blocks; when the queue is at its limit the oldest item is
// discarded. A zero limit means unbounded.
type Channel[T any] struct {
	mu      sync.Mutex
	queue   deque.Deque[T]
	limit   int
	dropped atomic.Uint64
}

func NewChannel[T any](limit int) *Channel[T] {
	if limit < 0 {
		limit = 0
	}

	return &Channel[T]{limit: limit}
}

// Push enqueues item. It never returns an error; any internal failure
// drops the item and bumps Dropped.
func (c *Channel[T]) Push(item T) {
	defer func() {
		if r := recover(); r != nil {
			c.dropped.Add(1)
		}
	}()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.limit > 0 && c.queue.Len() >= c.limit {
		c.queue.PopFront()
		c.dropped.Add(1)
	}
	c.queue.PushBack(item)
}

// DrainAll removes and returns every queued item in FIFO order. It returns
// an empty slice immediately when nothing is queued.
func (c *Channel[T]) DrainAll() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.queue.Len()
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, c.queue.PopFront())
	}

	return out
}

// Len reports the number of queued items
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.queue.Len()
}

// Dropped reports how many items were discarded since creation
func (c *Channel[T]) Dropped() uint64 {
	return c.dropped.Load()
}
