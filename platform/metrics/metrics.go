// Package metrics provides Prometheus instrumentation for upstream calls and caches.
// This is part of the platform layer and contains no business logic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several clients can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		upstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homegate_upstream_requests_total",
				Help: "Total number of requests sent to the listing API",
			},
			[]string{"operation", "status"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "homegate_upstream_request_duration_seconds",
				Help:    "Listing API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "homegate_geo_cache_hits_total",
				Help: "Total number of geo lookup cache hits",
			},
		),
		cacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "homegate_geo_cache_misses_total",
				Help: "Total number of geo lookup cache misses",
			},
		),
	}

	m.registry.MustRegister(m.upstreamRequests, m.upstreamDuration, m.cacheHits, m.cacheMisses)
	return m
}

// ObserveUpstream records one upstream call. A status of 0 means the request never got a response.
func (m *Metrics) ObserveUpstream(operation string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.upstreamRequests.WithLabelValues(operation, label).Inc()
	m.upstreamDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// IncCacheHit increments the geo cache hit counter.
func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// IncCacheMiss increments the geo cache miss counter.
func (m *Metrics) IncCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

// Registry exposes the underlying registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
