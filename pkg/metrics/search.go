package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SearchMetrics records latency and result-set sizes for product search.
type SearchMetrics struct {
	duration *prometheus.HistogramVec
	results  prometheus.Histogram
	failures prometheus.Counter
}

// NewSearchMetrics registers the search metrics on the provided registerer.
func NewSearchMetrics(reg prometheus.Registerer) *SearchMetrics {
	if reg == nil {
		return &SearchMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "search_duration_seconds",
		Help:    "Duration of product search requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"sort"})
	results := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "search_result_count",
		Help:    "Matches found per search before pagination.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "search_failures_total",
		Help: "Search requests that returned an error.",
	})
	reg.MustRegister(duration, results, failures)
	return &SearchMetrics{
		duration: duration,
		results:  results,
		failures: failures,
	}
}

// ObserveSearch records one completed search.
func (s *SearchMetrics) ObserveSearch(sort string, duration time.Duration, matches int) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(sort)).Observe(duration.Seconds())
	s.results.Observe(float64(matches))
}

// IncFailure increments the search failure counter.
func (s *SearchMetrics) IncFailure() {
	if s == nil || s.failures == nil {
		return
	}
	s.failures.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
