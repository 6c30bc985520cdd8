// Package metrics provides Prometheus metrics for the activities service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels recorded for signup and unregister attempts.
const (
	ResultSuccess           = "success"
	ResultNotFound          = "not_found"
	ResultAlreadyRegistered = "already_registered"
	ResultNotRegistered     = "not_registered"
	ResultError             = "error"
)

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Domain
	signups         *prometheus.CounterVec
	unregistrations *prometheus.CounterVec
	activities      prometheus.Gauge
	participants    prometheus.Gauge
	enrolment       *prometheus.GaugeVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mergington",
		subsystem:        "activities",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.signups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "signups_total",
		Help:        "Signup attempts by activity and outcome",
		ConstLabels: m.constLabels,
	}, []string{"activity", "result"})

	m.unregistrations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "unregistrations_total",
		Help:        "Unregister attempts by activity and outcome",
		ConstLabels: m.constLabels,
	}, []string{"activity", "result"})

	m.activities = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "activities",
		Help:        "Number of activities offered",
		ConstLabels: m.constLabels,
	})

	m.participants = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "participants",
		Help:        "Total participants across all activities",
		ConstLabels: m.constLabels,
	})

	m.enrolment = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "activity_participants",
		Help:        "Participants per activity",
		ConstLabels: m.constLabels,
	}, []string{"activity"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "HTTP requests by endpoint, method and status code",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_seconds",
		Help:        "HTTP request latency in seconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "errors_total",
		Help:        "HTTP error responses by endpoint, method and error type",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})
}

// RecordSignup counts a signup attempt.
func (m *Manager) RecordSignup(activity, result string) {
	m.signups.WithLabelValues(activity, result).Inc()
}

// RecordUnregistration counts an unregister attempt.
func (m *Manager) RecordUnregistration(activity, result string) {
	m.unregistrations.WithLabelValues(activity, result).Inc()
}

// UpdateActivityCount sets the number of activities.
func (m *Manager) UpdateActivityCount(count int) {
	m.activities.Set(float64(count))
}

// UpdateParticipantCount sets the total participant count.
func (m *Manager) UpdateParticipantCount(count int) {
	m.participants.Set(float64(count))
}

// UpdateActivityParticipants sets the participant count of one activity.
func (m *Manager) UpdateActivityParticipants(activity string, count int) {
	m.enrolment.WithLabelValues(activity).Set(float64(count))
}

// DeleteActivityParticipants drops the series of an activity that no longer
// exists. It reports whether a series was removed.
func (m *Manager) DeleteActivityParticipants(activity string) bool {
	return m.enrolment.DeleteLabelValues(activity)
}

// RecordHTTPRequest counts a served request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes request latency in seconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, seconds float64) {
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(seconds)
}

// RecordErrorByEndpoint counts an error response.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// Package-level helpers delegate to the global manager.

func RecordSignup(activity, result string)         { globalManager.RecordSignup(activity, result) }
func RecordUnregistration(activity, result string) { globalManager.RecordUnregistration(activity, result) }
func UpdateActivityCount(count int)                { globalManager.UpdateActivityCount(count) }
func UpdateParticipantCount(count int)             { globalManager.UpdateParticipantCount(count) }

func UpdateActivityParticipants(activity string, count int) {
	globalManager.UpdateActivityParticipants(activity, count)
}

func DeleteActivityParticipants(activity string) bool {
	return globalManager.DeleteActivityParticipants(activity)
}

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, seconds float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, seconds)
}

func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
