package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus exports samples as Prometheus metrics:
//
//	forgosearch_searches_total{strategy,outcome}
//	forgosearch_probes_total{strategy}
//	forgosearch_search_duration_seconds{strategy}
//	forgosearch_workers{strategy}
type Prometheus struct {
	searches *prometheus.CounterVec
	probes   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	workers  *prometheus.GaugeVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forgosearch",
			Name:      "searches_total",
			Help:      "Search runs by strategy and outcome (found, not_found, error).",
		}, []string{"strategy", "outcome"}),
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forgosearch",
			Name:      "probes_total",
			Help:      "Interpolation probes computed.",
		}, []string{"strategy"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "forgosearch",
			Name:      "search_duration_seconds",
			Help:      "Wall time of a search run from dispatch to join.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"strategy"}),
		workers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "forgosearch",
			Name:      "workers",
			Help:      "Worker count of the most recent run.",
		}, []string{"strategy"}),
	}
	for _, c := range []prometheus.Collector{p.searches, p.probes, p.duration, p.workers} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// RecordSearch implements Collector.
func (p *Prometheus) RecordSearch(s Sample) {
	outcome := "not_found"
	switch {
	case s.Err != nil:
		outcome = "error"
	case s.Found:
		outcome = "found"
	}
	p.searches.WithLabelValues(s.Strategy, outcome).Inc()
	p.probes.WithLabelValues(s.Strategy).Add(float64(s.Probes))
	p.duration.WithLabelValues(s.Strategy).Observe(s.Duration.Seconds())
	p.workers.WithLabelValues(s.Strategy).Set(float64(s.Workers))
}
