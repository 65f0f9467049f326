package forGoSearch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/intel/forGoSearch/config"
	"github.com/intel/forGoSearch/cooperative"
	"github.com/intel/forGoSearch/internal"
	"github.com/intel/forGoSearch/interpolation"
	"github.com/intel/forGoSearch/metrics"
	"github.com/intel/forGoSearch/parallel"
	"github.com/intel/forGoSearch/speculative"
	"golang.org/x/exp/constraints"
)

// NotFound is the index reported when the key does not occur in the array.
const NotFound = interpolation.NotFound

// Result describes the outcome of a search run, whatever the strategy.
type Result struct {
	RunID    string
	Strategy config.Strategy
	Index    int
	Workers  int
	// Ranges is empty for the cooperative strategy, which does not partition
	// the array.
	Ranges   []parallel.Range
	Hits     int
	Probes   int
	Duration time.Duration
}

// Found reports whether the key was found.
func (r Result) Found() bool { return r.Index != NotFound }

// Search looks for key in seq with the configured strategy and worker count.
//
// Configuration errors are reported before any worker starts. Not finding
// the key is not an error; Result.Index is then NotFound.
func Search[T constraints.Integer](
	ctx context.Context,
	seq interpolation.Sequence[T],
	key T,
	optFns ...Option,
) (Result, error) {
	o := options{
		strategy: config.Partitioned,
		policy:   config.LastWriterWins,
		logger:   NoopLogger(),
		metrics:  metrics.Noop{},
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if !o.workersSet {
		o.workers = internal.DefaultWorkers(seq.Len())
	}

	result := Result{
		RunID:    uuid.NewString(),
		Strategy: o.strategy,
		Index:    NotFound,
		Workers:  o.workers,
	}
	log := o.logger.WithRunID(result.RunID).WithStrategy(o.strategy)
	log.LogDispatch(ctx, o.workers, seq.Len())

	err := config.ValidateWorkers(o.workers)
	if err == nil {
		err = dispatch(ctx, seq, key, &o, &result)
	}

	log.LogSearch(ctx, result, err)
	o.metrics.RecordSearch(metrics.Sample{
		Strategy: o.strategy.String(),
		Workers:  result.Workers,
		Found:    result.Found(),
		Probes:   result.Probes,
		Duration: result.Duration,
		Err:      err,
	})
	return result, err
}

func dispatch[T constraints.Integer](
	ctx context.Context,
	seq interpolation.Sequence[T],
	key T,
	o *options,
	result *Result,
) error {
	var (
		pr  parallel.Result
		err error
	)
	switch o.strategy {
	case config.Cooperative:
		var cr cooperative.Result
		cr, err = cooperative.Search(ctx, seq, o.workers, key)
		result.Index = cr.Index
		result.Probes = cr.Probes
		result.Duration = cr.Duration
		if cr.Found() {
			result.Hits = 1
		}
		return err
	case config.Speculative:
		pr, err = speculative.Search(ctx, seq, o.workers, key)
	case config.Partitioned:
		pr, err = parallel.Search(seq, o.workers, key, parallel.WithMergePolicy(o.policy))
	default:
		return &config.UnknownValueError{Setting: "strategy", Value: o.strategy.String()}
	}
	result.Index = pr.Index
	result.Workers = pr.Workers()
	result.Ranges = pr.Ranges
	result.Hits = pr.Hits
	result.Probes = pr.Probes
	result.Duration = pr.Duration
	return err
}
