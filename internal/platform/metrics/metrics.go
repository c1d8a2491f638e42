// Package metrics provides Prometheus instruments for the portfolio service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

// Metrics holds the service instruments and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	// HTTPRequests counts responses. Labels: route, method, status.
	HTTPRequests *prometheus.CounterVec
	// HTTPDuration tracks handler latency. Labels: route.
	HTTPDuration *prometheus.HistogramVec
	// LocaleDecisions counts locale router outcomes. Labels: action.
	LocaleDecisions *prometheus.CounterVec
	// ActionOutcomes counts mutating action results. Labels: entity, operation, result.
	ActionOutcomes *prometheus.CounterVec
	// ExecuteRequests counts sandbox proxy calls. Labels: result.
	ExecuteRequests *prometheus.CounterVec
}

// New registers all instruments on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP responses by route class, method and status code",
			},
			[]string{"route", "method", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP handler duration in seconds by route class",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		LocaleDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "locale_router",
				Name:      "decisions_total",
				Help:      "Locale router decisions by action (pass, redirect, rewrite)",
			},
			[]string{"action"},
		),
		ActionOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "actions",
				Name:      "outcomes_total",
				Help:      "Mutating action results by entity, operation and result",
			},
			[]string{"entity", "operation", "result"},
		),
		ExecuteRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sandbox",
				Name:      "execute_requests_total",
				Help:      "Code execution proxy calls by result",
			},
			[]string{"result"},
		),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one completed request.
func (m *Metrics) ObserveHTTP(route string, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveLocaleDecision records one locale router decision.
func (m *Metrics) ObserveLocaleDecision(action string) {
	if m == nil {
		return
	}
	m.LocaleDecisions.WithLabelValues(action).Inc()
}

// ObserveAction records one mutating action outcome.
func (m *Metrics) ObserveAction(entity string, operation string, success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.ActionOutcomes.WithLabelValues(entity, operation, result).Inc()
}

// ObserveExecute records one sandbox proxy call.
func (m *Metrics) ObserveExecute(result string) {
	if m == nil {
		return
	}
	m.ExecuteRequests.WithLabelValues(result).Inc()
}
