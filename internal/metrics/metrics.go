// Package metrics holds the console's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Aggregation item kinds.
const (
	KindClientStats = "client_stats"
	KindTenantUsers = "tenant_users"
)

type Metrics struct {
	APIRequests         *prometheus.CounterVec
	APIRequestDuration  *prometheus.HistogramVec
	AggregationFailures *prometheus.CounterVec
	AggregationDuration prometheus.Histogram
	SessionsCleared     prometheus.Counter
	EndpointLatency     *prometheus.HistogramVec
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer to expose
// them on the default /metrics handler, or a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		APIRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "console_api_requests_total",
			Help: "Requests sent to the identity server admin API",
		}, []string{"method", "status"}),
		APIRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_api_request_duration_seconds",
			Help:    "Latency of identity server admin API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		AggregationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "console_dashboard_item_failures_total",
			Help: "Per-item dashboard fetches that failed and were substituted",
		}, []string{"kind"}),
		AggregationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "console_dashboard_compute_duration_seconds",
			Help:    "Duration of dashboard aggregation",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		SessionsCleared: f.NewCounter(prometheus.CounterOpts{
			Name: "console_sessions_cleared_total",
			Help: "Sessions cleared after the API answered 401",
		}),
		EndpointLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_endpoint_latency_seconds",
			Help:    "Latency of console server endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

func (m *Metrics) ObserveAPIRequest(method string, status int, start time.Time) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.APIRequests.WithLabelValues(method, label).Inc()
	m.APIRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementAggregationFailure(kind string) {
	if m == nil {
		return
	}
	m.AggregationFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveAggregation(start time.Time) {
	if m == nil {
		return
	}
	m.AggregationDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementSessionsCleared() {
	if m == nil {
		return
	}
	m.SessionsCleared.Inc()
}

func (m *Metrics) ObserveEndpointLatency(endpoint string, start time.Time) {
	if m == nil {
		return
	}
	m.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
