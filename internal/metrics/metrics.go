package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors used across the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	CacheLookups        *prometheus.CounterVec
	CacheClears         prometheus.Counter
	SourceFetches       *prometheus.CounterVec
	SourceFetchDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expotrack_cache_lookups_total",
				Help: "Cache lookups by outcome (hit, miss, stale, bypass)",
			},
			[]string{"outcome"},
		),
		CacheClears: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "expotrack_cache_clears_total",
				Help: "Total number of manual cache clears",
			},
		),
		SourceFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expotrack_source_fetches_total",
				Help: "Upstream strategy attempts by kind, strategy and result",
			},
			[]string{"kind", "strategy", "result"},
		),
		SourceFetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "expotrack_source_fetch_duration_seconds",
				Help:    "Duration of upstream strategy attempts",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "strategy"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"handler", "method", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"handler", "method"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.CacheLookups,
			m.CacheClears,
			m.SourceFetches,
			m.SourceFetchDuration,
			m.HTTPRequestsTotal,
			m.HTTPRequestDuration,
		)
	}

	return m
}

// CacheLookup counts one cache lookup outcome
func (m *Metrics) CacheLookup(outcome string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(outcome).Inc()
}

// CacheCleared counts a manual cache wipe
func (m *Metrics) CacheCleared() {
	if m == nil {
		return
	}
	m.CacheClears.Inc()
}

// SourceFetch records one strategy attempt
func (m *Metrics) SourceFetch(kind, strategy, result string, seconds float64) {
	if m == nil {
		return
	}
	m.SourceFetches.WithLabelValues(kind, strategy, result).Inc()
	m.SourceFetchDuration.WithLabelValues(kind, strategy).Observe(seconds)
}

// HTTPRequest records one served request
func (m *Metrics) HTTPRequest(handler, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(handler, method, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(handler, method).Observe(seconds)
}
