// Package gsync provides the synchronization cells the search strategies
// share between a coordinator and its workers.
package gsync

import (
	"context"
	"sync"

	"github.com/intel/forGoSearch/config"
	"github.com/intel/forGoSearch/interpolation"
)

// Slot is a single result index shared by all workers of one search. Every
// write happens under the slot's mutex. A new Slot holds
// interpolation.NotFound.
type Slot struct {
	mu     sync.Mutex
	policy config.MergePolicy
	index  int
	writes int
}

func NewSlot(policy config.MergePolicy) *Slot {
	return &Slot{policy: policy, index: interpolation.NotFound}
}

// Store offers index to the slot and reports whether the slot now holds it.
// Which of several offered indices survives is decided by the merge policy.
func (s *Slot) Store(index int) (stored bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	switch s.policy {
	case config.FirstWriterWins:
		stored = s.index == interpolation.NotFound
	case config.LowestIndexWins:
		stored = s.index == interpolation.NotFound || index < s.index
	default:
		stored = true
	}
	if stored {
		s.index = index
	}
	return
}

// Load returns the current index and the number of Store calls so far.
func (s *Slot) Load() (index, writes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index, s.writes
}

// Future is the result of a single task. Its value can only be observed
// through Wait, which returns once the task has completed.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	p     interface{}
}

func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Complete records the task's value. Only the first call to Complete or
// Fail has an effect.
func (f *Future[T]) Complete(value T) {
	f.once.Do(func() {
		f.value = value
		close(f.done)
	})
}

// Fail records a panic value recovered from the task; Wait re-panics with
// it.
func (f *Future[T]) Fail(p interface{}) {
	f.once.Do(func() {
		f.p = p
		close(f.done)
	})
}

// Done is closed once the task has completed.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Wait blocks until the task has completed or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		if f.p != nil {
			panic(f.p)
		}
		return f.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
