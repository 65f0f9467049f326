// Package metrics records the outcome of search runs.
package metrics

import (
	"sync/atomic"
	"time"
)

// Sample is what a single search run reports.
type Sample struct {
	Strategy string
	Workers  int
	Found    bool
	Probes   int
	Duration time.Duration
	Err      error
}

// Collector receives one Sample per search run. Implementations must be safe
// for concurrent use.
type Collector interface {
	RecordSearch(s Sample)
}

// Noop discards every sample.
type Noop struct{}

func (Noop) RecordSearch(Sample) {}

// Basic keeps running totals in memory.
type Basic struct {
	Searches   atomic.Int64
	Found      atomic.Int64
	Errors     atomic.Int64
	Probes     atomic.Int64
	TotalNanos atomic.Int64
}

// RecordSearch implements Collector.
func (b *Basic) RecordSearch(s Sample) {
	b.Searches.Add(1)
	b.TotalNanos.Add(s.Duration.Nanoseconds())
	b.Probes.Add(int64(s.Probes))
	if s.Err != nil {
		b.Errors.Add(1)
		return
	}
	if s.Found {
		b.Found.Add(1)
	}
}

// Stats is a point-in-time copy of a Basic collector.
type Stats struct {
	Searches        int64
	Found           int64
	Errors          int64
	Probes          int64
	AverageDuration time.Duration
}

// Stats returns the current totals.
func (b *Basic) Stats() Stats {
	s := Stats{
		Searches: b.Searches.Load(),
		Found:    b.Found.Load(),
		Errors:   b.Errors.Load(),
		Probes:   b.Probes.Load(),
	}
	if s.Searches > 0 {
		s.AverageDuration = time.Duration(b.TotalNanos.Load() / s.Searches)
	}
	return s
}
