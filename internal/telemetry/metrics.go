package telemetry

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the Prometheus registry scraped at /metrics. This is the
// local pull-side view; the push-side OTel instruments live in Instruments.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "demoshop",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of HTTP requests currently being served.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "demoshop",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "demoshop",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"route", "method"}),
	}

	registry.MustRegister(m.httpInFlight, m.httpRequests, m.httpDuration)
	registry.MustRegister(collectors.NewGoCollector())

	return m
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RequestStarted marks a request in flight.
func (m *Metrics) RequestStarted() {
	m.httpInFlight.Inc()
}

// RequestFinished records the outcome of a served request. route is the
// matched pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) RequestFinished(route, method string, status int, seconds float64) {
	m.httpInFlight.Dec()
	m.httpDuration.WithLabelValues(route, method).Observe(seconds)
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}
