// Package metrics holds the process-wide Prometheus collectors for booking
// outcomes, HTTP latency, and event-publish retries. The teacher's go.mod
// carries prometheus/client_golang without ever registering a collector;
// this wires it into the booking engine and the HTTP middleware chain.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the collectors shared across the booking engine, the
// event publisher, and the HTTP middleware chain.
type Metrics struct {
	BookingOutcomes      *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
	EventPublishRetries  prometheus.Counter
	EventPublishFailures prometheus.Counter
}

// New builds and registers the collectors against the default registry.
func New() *Metrics {
	m := &Metrics{
		BookingOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kayak_booking_outcomes_total",
			Help: "Count of booking attempts by inventory kind and outcome.",
		}, []string{"kind", "outcome"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kayak_http_request_duration_seconds",
			Help:    "HTTP request latency by route, method, and status class.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		EventPublishRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kayak_event_publish_retries_total",
			Help: "Count of failed out-of-band retry attempts for booking event publication.",
		}),
		EventPublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kayak_event_publish_failures_total",
			Help: "Count of booking events that exhausted their retry budget or were dropped because the retry queue was full.",
		}),
	}

	prometheus.MustRegister(m.BookingOutcomes, m.HTTPDuration, m.EventPublishRetries, m.EventPublishFailures)
	return m
}

// ObserveBookingOutcome is nil-receiver safe so callers needn't guard every
// call site when metrics are disabled in tests.
func (m *Metrics) ObserveBookingOutcome(kind, outcome string) {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) IncEventPublishRetry() {
	if m == nil {
		return
	}
	m.EventPublishRetries.Inc()
}

func (m *Metrics) IncEventPublishFailure() {
	if m == nil {
		return
	}
	m.EventPublishFailures.Inc()
}

// ObserveHTTPDuration records one request's latency against its route
// template (not the raw path, to keep cardinality bounded), method, and
// status class.
func (m *Metrics) ObserveHTTPDuration(route, method, statusClass string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPDuration.WithLabelValues(route, method, statusClass).Observe(d.Seconds())
}
