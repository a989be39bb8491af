// Package metrics owns the Prometheus registry and the collectors the
// service and HTTP middleware report to. A nil *Metrics is a no-op.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rejection reasons for student creation.
const (
	ReasonValidation = "validation"
	ReasonDuplicate  = "duplicate"
	ReasonRace       = "race"
)

// Metrics groups the collectors registered on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	studentsCreated prometheus.Counter
	createRejected  *prometheus.CounterVec
}

// New registers the collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	studentsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "students_created_total",
		Help: "Students persisted successfully",
	})

	createRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "students_create_rejected_total",
		Help: "Student creations rejected, by reason",
	}, []string{"reason"})

	registry.MustRegister(
		requestDuration,
		requestTotal,
		studentsCreated,
		createRejected,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		studentsCreated: studentsCreated,
		createRejected:  createRejected,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return m.handler
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, code).Observe(d.Seconds())
	m.requestTotal.WithLabelValues(method, path, code).Inc()
}

// StudentCreated counts a persisted student.
func (m *Metrics) StudentCreated() {
	if m == nil {
		return
	}
	m.studentsCreated.Inc()
}

// CreateRejected counts a rejected creation.
func (m *Metrics) CreateRejected(reason string) {
	if m == nil {
		return
	}
	m.createRejected.WithLabelValues(reason).Inc()
}
