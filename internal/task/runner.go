// Package task provides a small fire-and-forget executor for work that must
// not delay an HTTP response, such as transactional email sends. Failures are
// logged, never returned to the caller, and nothing is retried.
package task

import (
	"log/slog"
	"sync"
)

type job struct {
	name string
	fn   func() error
}

type Runner struct {
	jobs chan job
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewRunner starts a runner with the given queue capacity and a single worker
// goroutine. Enqueueing never blocks; jobs are dropped once the queue is full.
func NewRunner(queueSize int) *Runner {
	r := &Runner{
		jobs: make(chan job, queueSize),
	}

	r.wg.Add(1)
	go r.work()

	return r
}

// Go enqueues fn for background execution. A returned error is logged under
// the job name. Calls after Close, or while the queue is full, are dropped
// with a warning so the caller never waits.
func (r *Runner) Go(name string, fn func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		slog.Warn("task runner closed, dropping job", "job", name)
		return
	}

	select {
	case r.jobs <- job{name: name, fn: fn}:
	default:
		slog.Warn("task queue full, dropping job", "job", name)
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	close(r.jobs)
	r.wg.Wait()
}

func (r *Runner) work() {
	defer r.wg.Done()

	for j := range r.jobs {
		r.run(j)
	}
}

func (r *Runner) run(j job) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("background job panicked", "job", j.name, "panic", rec)
		}
	}()

	err := j.fn()
	if err != nil {
		slog.Error("background job failed", "job", j.name, "error", err)
	}
}
