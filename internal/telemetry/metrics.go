// Package telemetry holds the Prometheus collectors of the API.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Booking outcomes.
const (
	BookingAccepted = "accepted"
	BookingConflict = "conflict"
	BookingBusy     = "busy"
	BookingError    = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	BookingDecisions *prometheus.CounterVec
	DegradedFigures  *prometheus.CounterVec
	RequestTotal     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// New registers every collector on a private registry.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		BookingDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_decisions_total",
			Help:      "Booking attempts by outcome",
		}, []string{"result"}),

		DegradedFigures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_degraded_figures_total",
			Help:      "Dashboard figures reported as zero because their query failed",
		}, []string{"figure"}),

		RequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "path"}),
	}

	m.registry.MustRegister(
		m.BookingDecisions,
		m.DegradedFigures,
		m.RequestTotal,
		m.RequestDuration,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// The Observe helpers accept a nil receiver so use cases run without metrics.

func (m *Metrics) ObserveBooking(result string) {
	if m == nil {
		return
	}
	m.BookingDecisions.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveDegraded(figures []string) {
	if m == nil {
		return
	}
	for _, f := range figures {
		m.DegradedFigures.WithLabelValues(f).Inc()
	}
}

func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
