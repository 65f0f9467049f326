// Package speculative provides a partitioned interpolation search, similar to
// the one in package parallel, except that the remaining workers stop early
// once one worker has found the key.
package speculative

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/intel/forGoSearch/config"
	"github.com/intel/forGoSearch/gsync"
	"github.com/intel/forGoSearch/internal"
	"github.com/intel/forGoSearch/interpolation"
	"github.com/intel/forGoSearch/parallel"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
)

// errFound is returned by the worker that stored the result. It cancels the
// group's context and never leaves Search.
var errFound = errors.New("key found")

// Search receives a sorted sequence, a worker count, and a key, divides the
// sequence with parallel.Partition, and runs an interpolation search over
// each range in its own goroutine.
//
// The first worker that finds the key stores its index and signals the other
// workers, which check for that signal before every probe and give up. Later
// hits are discarded, so if the key occurs in several ranges the result is
// whichever worker got there first. Search still waits for every worker to
// terminate before it returns.
//
// If ctx is done before the key is found, the workers stop and Search
// returns ctx.Err(). Search returns a *config.WorkerCountError, without
// starting any worker, if workers < 1.
//
// If one or more workers panic, Search panics with the left-most recovered
// panic value after all workers have terminated.
func Search[T constraints.Integer](
	ctx context.Context,
	seq interpolation.Sequence[T],
	workers int,
	key T,
) (parallel.Result, error) {
	ranges, err := parallel.Partition(seq.Len(), workers)
	if err != nil {
		return parallel.Result{Index: interpolation.NotFound}, err
	}

	start := time.Now()
	slot := gsync.NewSlot(config.FirstWriterWins)
	var probes atomic.Int64
	panics := make([]interface{}, len(ranges))

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range ranges {
		g.Go(func() error {
			defer func() {
				panics[i] = internal.WrapPanic(recover())
			}()
			index, n, err := interpolation.Loop(seq, r.Low, r.High, key, func(lo, hi int) (int, error) {
				if err := gctx.Err(); err != nil {
					return 0, err
				}
				return interpolation.Probe(seq, lo, hi, key), nil
			})
			probes.Add(int64(n))
			if err != nil {
				return err
			}
			if index != interpolation.NotFound && slot.Store(index) {
				return errFound
			}
			return nil
		})
	}
	err = g.Wait()
	for _, p := range panics {
		if p != nil {
			panic(p)
		}
	}

	index, hits := slot.Load()
	result := parallel.Result{
		Index:    index,
		Ranges:   ranges,
		Hits:     hits,
		Probes:   int(probes.Load()),
		Duration: time.Since(start),
	}
	if index == interpolation.NotFound && err != nil && !errors.Is(err, errFound) {
		return result, err
	}
	return result, nil
}
