// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the HTTP and domain collectors. A nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPInFlight        prometheus.Gauge

	EventsCreated prometheus.Counter
	Subscriptions prometheus.Counter
	Moderations   *prometheus.CounterVec
	WSConnections prometheus.Gauge
}

// New registers all collectors on a fresh registry, plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		HTTPInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		EventsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "events_created_total",
			Help: "Events submitted for moderation.",
		}),
		Subscriptions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "event_subscriptions_total",
			Help: "Subscribers appended to events.",
		}),
		Moderations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "event_moderation_total",
				Help: "Moderation decisions by resulting status.",
			},
			[]string{"status"},
		),
		WSConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ws_connections_active",
			Help: "Open WebSocket connections.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal, m.HTTPRequestDuration, m.HTTPInFlight,
		m.EventsCreated, m.Subscriptions, m.Moderations, m.WSConnections,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) EventCreated() {
	if m != nil {
		m.EventsCreated.Inc()
	}
}

func (m *Metrics) Subscribed() {
	if m != nil {
		m.Subscriptions.Inc()
	}
}

func (m *Metrics) Moderated(status string) {
	if m != nil {
		m.Moderations.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) ConnOpened() {
	if m != nil {
		m.WSConnections.Inc()
	}
}

func (m *Metrics) ConnClosed() {
	if m != nil {
		m.WSConnections.Dec()
	}
}
