package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics records metadata for location synchronization runs.
type SyncMetrics struct {
	duration *prometheus.HistogramVec
	products *prometheus.CounterVec
	failures *prometheus.CounterVec
	outbox   *prometheus.CounterVec
}

// NewSyncMetrics registers the sync metrics on the provided registerer.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		return &SyncMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sync_duration_seconds",
		Help:    "Duration of location sync operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"scope"})
	products := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_products_updated_total",
		Help: "Products whose location snapshot was rewritten.",
	}, []string{"seller_type"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_failures_total",
		Help: "Sync operations that returned an error.",
	}, []string{"scope"})
	outbox := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_events_total",
		Help: "Outbox events handled by the dispatcher, by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(duration, products, failures, outbox)
	return &SyncMetrics{
		duration: duration,
		products: products,
		failures: failures,
		outbox:   outbox,
	}
}

// ObserveDuration records the duration for the named sync scope.
func (s *SyncMetrics) ObserveDuration(scope string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(scope)).Observe(duration.Seconds())
}

// AddProductsUpdated adds to the updated-products counter for a seller type.
func (s *SyncMetrics) AddProductsUpdated(sellerType string, count int) {
	if s == nil || s.products == nil {
		return
	}
	s.products.WithLabelValues(normalizeLabel(sellerType)).Add(float64(count))
}

// IncFailure increments the failure counter for the named sync scope.
func (s *SyncMetrics) IncFailure(scope string) {
	if s == nil || s.failures == nil {
		return
	}
	s.failures.WithLabelValues(normalizeLabel(scope)).Inc()
}

// IncOutbox increments the outbox counter for an outcome
// (processed, retried, dead).
func (s *SyncMetrics) IncOutbox(outcome string) {
	if s == nil || s.outbox == nil {
		return
	}
	s.outbox.WithLabelValues(normalizeLabel(outcome)).Inc()
}
