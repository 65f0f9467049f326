package forGoSearch

import (
	"github.com/intel/forGoSearch/config"
	"github.com/intel/forGoSearch/metrics"
)

type options struct {
	workers    int
	workersSet bool
	strategy   config.Strategy
	policy     config.MergePolicy
	logger     *Logger
	metrics    metrics.Collector
}

// Option configures Search.
type Option func(*options)

// WithWorkers sets the number of workers. Without this option Search picks
// a count from runtime.NumCPU() and the array length. An explicit count below
// one is a configuration error.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
		o.workersSet = true
	}
}

// WithStrategy selects the search strategy. The default is
// config.Partitioned.
func WithStrategy(s config.Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithMergePolicy selects how the partitioned strategy merges hits from
// several workers. The speculative strategy always keeps the first hit; the
// cooperative strategy has a single writer and ignores the policy.
func WithMergePolicy(p config.MergePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithLogger configures the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics configures a metrics collector. Pass nil to disable metrics.
func WithMetrics(c metrics.Collector) Option {
	return func(o *options) {
		if c == nil {
			c = metrics.Noop{}
		}
		o.metrics = c
	}
}

// WithConfig applies the worker count, strategy and merge policy of c.
func WithConfig(c config.Config) Option {
	return func(o *options) {
		WithWorkers(c.Workers)(o)
		o.strategy = c.Strategy
		o.policy = c.MergePolicy
	}
}
