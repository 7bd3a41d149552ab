// Package worker runs background jobs off the request path.
package worker

import (
	"context"
	"sync"

	"github.com/petalworks/gardencore/internal/logger"
)

// Job is a unit of background work
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function into a Job
type JobFunc func(ctx context.Context) error

// Process runs the function
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool executes queued jobs on a fixed set of goroutines. A failing job is
// logged and dropped; it never stops the worker.
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
}

// NewPool creates a pool; call Start to launch the workers
func NewPool(workers, queueSize int) *Pool {
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			ctx := context.Background()
			if err := job.Process(ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgJobFailed, "error", err)
			}
		case <-p.quit:
			return
		}
	}
}

// Enqueue queues a job, blocking when the queue is full
func (p *Pool) Enqueue(job Job) {
	p.jobQueue <- job
}

// Stop stops the workers and waits for them to finish
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
}
