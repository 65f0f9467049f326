// Package pool provides a fixed-size pool for running single tasks and
// awaiting their results.
package pool

import (
	"context"
	"errors"
	"sync"

	"github.com/intel/forGoSearch/config"
	"github.com/intel/forGoSearch/gsync"
	"github.com/intel/forGoSearch/internal"
	"golang.org/x/sync/semaphore"
)

// ErrClosed is returned by Submit after Close has been called.
var ErrClosed = errors.New("pool closed")

// Pool runs submitted tasks on at most Workers goroutines at a time.
type Pool struct {
	workers int
	sem     *semaphore.Weighted

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// New returns a pool of the given size, or a *config.WorkerCountError if
// workers < 1.
func New(workers int) (*Pool, error) {
	if err := config.ValidateWorkers(workers); err != nil {
		return nil, err
	}
	return &Pool{
		workers: workers,
		sem:     semaphore.NewWeighted(int64(workers)),
	}, nil
}

// Workers returns the size of the pool.
func (p *Pool) Workers() int { return p.workers }

// Submit schedules task on the pool and returns a future for its result. It
// blocks while all workers are busy, and returns ctx.Err() if ctx is done
// before a worker becomes free.
//
// If the task panics, the panic is recovered and re-raised by the future's
// Wait.
func Submit[T any](ctx context.Context, p *Pool, task func() T) (*gsync.Future[T], error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrClosed
	}
	p.wg.Add(1)
	p.mu.Unlock()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		p.wg.Done()
		return nil, err
	}

	f := gsync.NewFuture[T]()
	go func() {
		defer p.wg.Done()
		defer p.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				f.Fail(internal.WrapPanic(r))
			}
		}()
		f.Complete(task())
	}()
	return f, nil
}

// Close stops the pool from accepting tasks and waits for the running ones to
// finish. It is safe to call Close more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
}
