package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the prometheus collectors the service reports.
type Metrics struct {
	registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	StageDuration   *prometheus.HistogramVec
	Recommendations prometheus.Counter
	CacheLookups    *prometheus.CounterVec
}

// New builds the collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tripnexus",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tripnexus",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Recommendation pipeline stage latency.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"stage"}),
		Recommendations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tripnexus",
			Subsystem: "pipeline",
			Name:      "recommendations_total",
			Help:      "Total recommendations returned to callers.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripnexus",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Recommendation cache lookups by outcome.",
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		m.RequestDuration,
		m.StageDuration,
		m.Recommendations,
		m.CacheLookups,
	)
	return m
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
