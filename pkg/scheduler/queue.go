package scheduler

import (
	"log/slog"
	"sync"
)

// Queue is a manually driven Scheduler. Nothing runs until the owner calls
// RunOne or Flush, which makes it the scheduler of choice for tests and for
// one-shot server-side rendering.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	logger  *slog.Logger
}

// NewQueue creates an empty Queue.
func NewQueue(logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{logger: logger.With("component", "scheduler")}
}

// Schedule enqueues fn.
func (q *Queue) Schedule(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len returns the number of queued functions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// RunOne runs the oldest queued function. It reports false when the queue
// was empty.
func (q *Queue) RunOne() bool {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.mu.Unlock()
		return false
	}
	fn := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	q.mu.Unlock()

	run(q.logger, fn)
	return true
}

// Flush runs queued functions, including ones they schedule, until the
// queue is empty. It returns how many ran.
func (q *Queue) Flush() int {
	n := 0
	for q.RunOne() {
		n++
	}
	return n
}

// FlushN is Flush bounded to at most max functions.
func (q *Queue) FlushN(max int) int {
	n := 0
	for n < max && q.RunOne() {
		n++
	}
	return n
}
