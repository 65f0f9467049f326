// Package parallel provides the partitioned interpolation search: the array
// is divided into one contiguous range per worker, every worker searches its
// own range concurrently, and hits are merged into a single lock-guarded
// result.
package parallel

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/intel/forGoSearch/config"
	"github.com/intel/forGoSearch/gsync"
	"github.com/intel/forGoSearch/internal"
	"github.com/intel/forGoSearch/interpolation"
	"golang.org/x/exp/constraints"
)

// Range is an inclusive range of array indices assigned to one worker.
type Range struct {
	Low, High int
}

// Len returns the number of indices in r.
func (r Range) Len() int { return r.High - r.Low + 1 }

func (r Range) String() string { return fmt.Sprintf("[%d,%d]", r.Low, r.High) }

// Partition divides the indices [0, n) into workers contiguous,
// non-overlapping ranges. Every range but the last holds n / workers
// indices; the last one also takes the remainder.
//
// If workers > n, Partition uses n workers, one index each, so that no empty
// range is produced. For n == 0 there are no ranges.
//
// Partition returns a *config.WorkerCountError if workers < 1.
func Partition(n, workers int) ([]Range, error) {
	if err := config.ValidateWorkers(workers); err != nil {
		return nil, err
	}
	if n < 0 {
		panic(fmt.Sprintf("invalid array length: %v", n))
	}
	if workers > n {
		workers = n
	}
	if workers == 0 {
		return nil, nil
	}
	ranges := make([]Range, workers)
	chunk := n / workers
	for i := range ranges {
		low := i * chunk
		high := low + chunk - 1
		if i == workers-1 {
			high = n - 1
		}
		ranges[i] = Range{Low: low, High: high}
	}
	return ranges, nil
}

// Do receives a list of ranges and a task, and invokes the task for each
// range in parallel, passing the position of the range in the list along.
//
// Each task is invoked in its own goroutine, and Do returns only when all
// tasks have terminated.
//
// If one or more tasks panic, the corresponding goroutines recover the
// panics, and Do eventually panics with the left-most recovered panic value.
func Do(ranges []Range, task func(worker int, r Range)) {
	switch len(ranges) {
	case 0:
		return
	case 1:
		task(0, ranges[0])
		return
	}
	panics := make([]interface{}, len(ranges))
	var wg sync.WaitGroup
	wg.Add(len(ranges))
	for i, r := range ranges {
		go func() {
			defer func() {
				panics[i] = internal.WrapPanic(recover())
				wg.Done()
			}()
			task(i, r)
		}()
	}
	wg.Wait()
	for _, p := range panics {
		if p != nil {
			panic(p)
		}
	}
}

// Result describes the outcome of a partitioned search.
type Result struct {
	// Index is the position of the key, or interpolation.NotFound.
	Index int
	// Ranges are the ranges that were searched, one per worker.
	Ranges []Range
	// Hits is the number of workers that found the key. It can exceed one
	// only if the key occurs in more than one range.
	Hits int
	// Probes is the total number of probe positions computed.
	Probes int
	// Duration is the wall time from dispatch to the end of the join.
	Duration time.Duration
}

// Found reports whether the key was found.
func (r Result) Found() bool { return r.Index != interpolation.NotFound }

// Workers returns the number of workers that were dispatched.
func (r Result) Workers() int { return len(r.Ranges) }

type options struct {
	policy config.MergePolicy
}

// Option configures Search.
type Option func(*options)

// WithMergePolicy selects how hits from several workers are merged. The
// default is config.LastWriterWins.
func WithMergePolicy(policy config.MergePolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// Search receives a sorted sequence, a worker count, and a key, divides the
// sequence with Partition, and runs an interpolation search over each range
// in its own goroutine.
//
// A worker that finds the key writes its index into a shared slot under the
// slot's mutex. Search returns only after all workers have terminated; the
// result is never visible before that.
//
// Search returns a *config.WorkerCountError, without starting any worker, if
// workers < 1. Not finding the key is not an error; the result's Index is
// then interpolation.NotFound.
func Search[T constraints.Integer](
	seq interpolation.Sequence[T],
	workers int,
	key T,
	optFns ...Option,
) (Result, error) {
	o := options{policy: config.LastWriterWins}
	for _, fn := range optFns {
		fn(&o)
	}
	ranges, err := Partition(seq.Len(), workers)
	if err != nil {
		return Result{Index: interpolation.NotFound}, err
	}

	start := time.Now()
	slot := gsync.NewSlot(o.policy)
	var probes atomic.Int64
	Do(ranges, func(_ int, r Range) {
		index, n, _ := interpolation.Loop(seq, r.Low, r.High, key, func(lo, hi int) (int, error) {
			return interpolation.Probe(seq, lo, hi, key), nil
		})
		probes.Add(int64(n))
		if index != interpolation.NotFound {
			slot.Store(index)
		}
	})

	index, hits := slot.Load()
	return Result{
		Index:    index,
		Ranges:   ranges,
		Hits:     hits,
		Probes:   int(probes.Load()),
		Duration: time.Since(start),
	}, nil
}
