// Package metrics holds the Prometheus collectors of the miniforum server
// and the handler that exposes them on /metrics.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "miniforum"

// Outcomes recorded by AuthAttemptsTotal.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"
)

// Actions recorded by AuthAttemptsTotal.
const (
	ActionLogin          = "login"
	ActionRegister       = "register"
	ActionPasswordChange = "password_change"
	ActionPasswordReset  = "password_reset"
)

// Operations recorded by PostOperationsTotal.
const (
	OperationCreate = "create"
	OperationEdit   = "edit"
	OperationDelete = "delete"
)

// Metrics holds all Prometheus metrics. The Observe methods are no-ops on a
// nil *Metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Auth metrics
	AuthAttemptsTotal *prometheus.CounterVec

	// Session metrics
	SessionsStartedTotal *prometheus.CounterVec
	SessionsPurgedTotal  prometheus.Counter

	// Forum metrics
	PostOperationsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics. Go runtime and
// process collectors are registered alongside.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
			},
			[]string{"method", "route"},
		),
		AuthAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Credential operations by action and outcome",
			},
			[]string{"action", "result"},
		),
		SessionsStartedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_started_total",
				Help:      "Sessions created, split into anonymous and authenticated",
			},
			[]string{"kind"},
		),
		SessionsPurgedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_purged_total",
				Help:      "Expired sessions removed by the purge worker",
			},
		),
		PostOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "post_operations_total",
				Help:      "Post operations by kind and outcome",
			},
			[]string{"operation", "result"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.AuthAttemptsTotal,
		m.SessionsStartedTotal,
		m.SessionsPurgedTotal,
		m.PostOperationsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RegisterDBStats exposes the connection pool statistics of db.
func (m *Metrics) RegisterDBStats(db *sql.DB, dbName string) {
	if db == nil {
		return
	}
	m.registry.MustRegister(collectors.NewDBStatsCollector(db, dbName))
}

// ObserveHTTPRequest records a finished request. route is the matched route
// pattern, never the raw path, so label cardinality stays bounded.
func (m *Metrics) ObserveHTTPRequest(method, route string, status, size int, duration time.Duration) {
	if m == nil {
		return
	}

	if route == "" {
		route = "unmatched"
	}

	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	m.HTTPResponseSize.WithLabelValues(method, route).Observe(float64(size))
}

// ObserveAuth records the outcome of a credential operation.
func (m *Metrics) ObserveAuth(action, result string) {
	if m == nil {
		return
	}

	m.AuthAttemptsTotal.WithLabelValues(action, result).Inc()
}

// ObserveSessionStarted counts a new session.
func (m *Metrics) ObserveSessionStarted(authenticated bool) {
	if m == nil {
		return
	}

	kind := "anonymous"
	if authenticated {
		kind = "authenticated"
	}
	m.SessionsStartedTotal.WithLabelValues(kind).Inc()
}

// ObserveSessionsPurged adds n purged sessions.
func (m *Metrics) ObserveSessionsPurged(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsPurgedTotal.Add(float64(n))
}

// ObservePost records the outcome of a post operation.
func (m *Metrics) ObservePost(operation, result string) {
	if m == nil {
		return
	}

	m.PostOperationsTotal.WithLabelValues(operation, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
