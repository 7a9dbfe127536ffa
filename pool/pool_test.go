// ABOUTME: Tests for the worker pool
// ABOUTME: Verifies bounded concurrency, error joining and cancellation

package pool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	p := NewWorkerPool(3)
	defer p.Close()

	var done int32

	for range 20 {
		p.Go(context.Background(), func(context.Context) error {
			atomic.AddInt32(&done, 1)

			return nil
		})
	}

	if err := p.Wait(); err != nil {
		t.Fatalf("Wait() = %v, want nil", err)
	}

	if got := atomic.LoadInt32(&done); got != 20 {
		t.Errorf("ran %d tasks, want 20", got)
	}
}

func TestWorkerPool_BoundedConcurrency(t *testing.T) {
	p := NewWorkerPool(2)
	defer p.Close()

	var running, peak int32

	for range 8 {
		p.Go(context.Background(), func(context.Context) error {
			n := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
					break
				}
			}

			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)

			return nil
		})
	}

	_ = p.Wait()

	if got := atomic.LoadInt32(&peak); got > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", got)
	}
}

func TestWorkerPool_JoinsErrors(t *testing.T) {
	p := NewWorkerPool(2)
	defer p.Close()

	errA := errors.New("a failed")
	errB := errors.New("b failed")

	p.Go(context.Background(), func(context.Context) error { return errA })
	p.Go(context.Background(), func(context.Context) error { return nil })
	p.Go(context.Background(), func(context.Context) error { return errB })

	err := p.Wait()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Wait() = %v, want both task errors", err)
	}

	// Errors belong to one batch
	p.Go(context.Background(), func(context.Context) error { return nil })
	if err := p.Wait(); err != nil {
		t.Errorf("second batch Wait() = %v, want nil", err)
	}
}

func TestWorkerPool_SkipsCancelledTasks(t *testing.T) {
	p := NewWorkerPool(1)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int32

	for range 5 {
		p.Go(ctx, func(context.Context) error {
			atomic.AddInt32(&ran, 1)

			return nil
		})
	}

	err := p.Wait()
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() = %v, want context.Canceled", err)
	}

	if got := atomic.LoadInt32(&ran); got != 0 {
		t.Errorf("%d tasks ran after cancellation, want 0", got)
	}
}

func TestNewWorkerPool_DefaultsToCPUs(t *testing.T) {
	p := NewWorkerPool(0)
	defer p.Close()

	if p.Workers() < 1 {
		t.Errorf("Workers() = %d, want at least 1", p.Workers())
	}
}
