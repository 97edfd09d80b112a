package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the portal's Prometheus collectors on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errors          *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	mirrorFailures  *prometheus.CounterVec
	modeChanges     *prometheus.CounterVec
}

// NewMetrics registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_http_errors_total",
			Help: "Total number of HTTP errors by code",
		}, []string{"path", "method", "code"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_submissions_recorded_total",
			Help: "Total number of recorded submissions",
		}, []string{"kind"}),
		mirrorFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_csv_mirror_failures_total",
			Help: "Total number of CSV mirror appends that failed after the relational insert",
		}, []string{"kind"}),
		modeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_mode_changes_total",
			Help: "Total number of mode changes",
		}, []string{"mode"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.errors,
		m.submissions,
		m.mirrorFailures,
		m.modeChanges,
		prometheus.NewGoCollector(),
	)
	return m
}

// Registry exposes the registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(path, method, code).Inc()
}

// RecordSubmission counts a persisted submission.
func (m *Metrics) RecordSubmission(kind string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(kind).Inc()
}

// RecordMirrorFailure counts a CSV append that failed after the insert.
func (m *Metrics) RecordMirrorFailure(kind string) {
	if m == nil {
		return
	}
	m.mirrorFailures.WithLabelValues(kind).Inc()
}

// RecordModeChange counts a mode switch.
func (m *Metrics) RecordModeChange(mode string) {
	if m == nil {
		return
	}
	m.modeChanges.WithLabelValues(mode).Inc()
}
