// Package worker provides the bounded worker pool and outbound rate
// limiting used when sources are processed in parallel.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	GetError() error
}

// Pool runs jobs on a fixed number of workers. The channels hold only
// a small buffer, so the producer and the result reader must run
// concurrently: Submit from one goroutine, call Close after the last
// job, and drain with Wait. Wait returns only after Close.
type Pool struct {
	workers   int
	jobs      chan Job
	results   chan Result
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	waitOnce  sync.Once
}

// NewPool creates a pool with the given number of workers. Cancelling
// ctx aborts queued and in-flight jobs.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. It blocks while the queue is full and returns
// without queuing once the pool's context ends. Submitting after Close
// is a programming error.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Close marks the queue complete. No Submit may follow.
func (p *Pool) Close() {
	p.closeOnce.Do(func() { close(p.jobs) })
}

// Wait drains results until the workers finish the closed queue, then
// returns everything collected. Call it concurrently with submission;
// a producer that outruns the result buffer blocks otherwise.
func (p *Pool) Wait() []Result {
	var results []Result
	p.waitOnce.Do(func() {
		go func() {
			p.wg.Wait()
			close(p.results)
		}()
		for result := range p.results {
			results = append(results, result)
		}
	})
	return results
}

// Shutdown cancels queued and in-flight jobs and stops the workers.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
