// ABOUTME: Bounded worker pool for running batches of context-aware tasks
// ABOUTME: Submit-and-wait pattern; Wait reports every task error joined together

// Package pool runs tasks on a fixed set of worker goroutines.
package pool

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Task is a unit of work. It should return promptly once ctx is done.
type Task func(ctx context.Context) error

type job struct {
	ctx  context.Context //nolint:containedctx // Carried from Go to the worker that runs the task
	task Task
}

// WorkerPool manages a pool of worker goroutines for parallel task execution
type WorkerPool struct {
	workers  int
	taskChan chan job
	workerWg sync.WaitGroup // tracks worker goroutines lifetime
	taskWg   sync.WaitGroup // tracks submitted tasks completion

	mu   sync.Mutex
	errs []error
}

// NewWorkerPool starts a pool with the given number of workers.
// workers <= 0 uses one worker per CPU.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		workers:  workers,
		taskChan: make(chan job, workers),
	}

	for range workers {
		pool.workerWg.Add(1)

		go func() {
			defer pool.workerWg.Done()

			for j := range pool.taskChan {
				pool.run(j)
				pool.taskWg.Done()
			}
		}()
	}

	return pool
}

// Go submits a task. Tasks whose context is already done when a worker picks
// them up are skipped and report the context's error.
// Blocks while all workers are busy and the queue is full.
func (p *WorkerPool) Go(ctx context.Context, task Task) {
	p.taskWg.Add(1)
	p.taskChan <- job{ctx: ctx, task: task}
}

func (p *WorkerPool) run(j job) {
	if err := j.ctx.Err(); err != nil {
		p.record(err)

		return
	}

	if err := j.task(j.ctx); err != nil {
		p.record(err)
	}
}

func (p *WorkerPool) record(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// One cancellation per batch is enough to report
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		for _, e := range p.errs {
			if errors.Is(e, err) {
				return
			}
		}
	}

	p.errs = append(p.errs, err)
}

// Wait blocks until all submitted tasks have completed and returns their
// errors joined, or nil. The error list is reset for the next batch.
func (p *WorkerPool) Wait() error {
	p.taskWg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	err := errors.Join(p.errs...)
	p.errs = nil

	return err
}

// Workers returns the number of worker goroutines
func (p *WorkerPool) Workers() int {
	return p.workers
}

// Close shuts down the worker pool and waits for all workers to exit
func (p *WorkerPool) Close() {
	close(p.taskChan)
	p.workerWg.Wait()
}
