// Package cooperative provides an interpolation search that keeps a single
// sequential loop over the whole array and hands the probe computation of
// every iteration to a worker pool.
//
// Only one task is ever in flight, so the pool does not make the search
// faster. The package exists to run the search in the "one productive task,
// the rest of the pool idle" shape: the loop submits the probe, awaits it,
// and only then reads the position.
package cooperative

import (
	"context"
	"time"

	"github.com/intel/forGoSearch/interpolation"
	"github.com/intel/forGoSearch/pool"
	"golang.org/x/exp/constraints"
)

// Result describes the outcome of a cooperative search.
type Result struct {
	// Index is the position of the key, or interpolation.NotFound.
	Index int
	// Workers is the size of the pool the probes ran on.
	Workers int
	// Probes is the number of probe tasks that were submitted.
	Probes int
	// Duration is the wall time of the whole loop.
	Duration time.Duration
}

// Found reports whether the key was found.
func (r Result) Found() bool { return r.Index != interpolation.NotFound }

// Search looks for key in seq with a pool of the given size computing the
// probe positions.
//
// Search returns a *config.WorkerCountError, before creating the pool, if
// workers < 1. If ctx is done while a probe is pending, Search returns
// ctx.Err(). Not finding the key is not an error.
func Search[T constraints.Integer](
	ctx context.Context,
	seq interpolation.Sequence[T],
	workers int,
	key T,
) (Result, error) {
	result := Result{Index: interpolation.NotFound, Workers: workers}
	p, err := pool.New(workers)
	if err != nil {
		return result, err
	}
	defer p.Close()

	start := time.Now()
	result.Index, result.Probes, err = interpolation.Loop(seq, 0, seq.Len()-1, key,
		func(l, r int) (int, error) {
			f, err := pool.Submit(ctx, p, func() int {
				return interpolation.Probe(seq, l, r, key)
			})
			if err != nil {
				return 0, err
			}
			return f.Wait(ctx)
		})
	result.Duration = time.Since(start)
	if err != nil {
		result.Index = interpolation.NotFound
	}
	return result, err
}
