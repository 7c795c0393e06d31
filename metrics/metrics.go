// Package metrics exposes Prometheus instrumentation for the API and the
// reservation lifecycle.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	reservationsCreated prometheus.Counter
	statusChanges       *prometheus.CounterVec
	seatings            prometheus.Counter
	finishes            prometheus.Counter
	rejections          *prometheus.CounterVec
}

// New builds a Metrics with its own registry, including Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservations_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reservations_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"method", "route"}),
		reservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reservations_created_total",
			Help: "Total number of reservations booked",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservations_status_changes_total",
			Help: "Total number of reservation status changes by target status",
		}, []string{"status"}),
		seatings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reservations_seatings_total",
			Help: "Total number of parties seated at a table",
		}),
		finishes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reservations_finishes_total",
			Help: "Total number of tables freed after a party finished",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservations_rejections_total",
			Help: "Total number of requests rejected by business rules",
		}, []string{"operation"}),
	}

	reg.MustRegister(
		m.requests,
		m.requestDuration,
		m.reservationsCreated,
		m.statusChanges,
		m.seatings,
		m.finishes,
		m.rejections,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ReservationCreated() {
	if m == nil {
		return
	}
	m.reservationsCreated.Inc()
}

func (m *Metrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) Seated() {
	if m == nil {
		return
	}
	m.seatings.Inc()
	m.statusChanges.WithLabelValues("seated").Inc()
}

func (m *Metrics) Finished() {
	if m == nil {
		return
	}
	m.finishes.Inc()
	m.statusChanges.WithLabelValues("finished").Inc()
}

// Rejected counts a request refused by a validation rule.
func (m *Metrics) Rejected(operation string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(operation).Inc()
}
