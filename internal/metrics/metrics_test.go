package metrics_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-console/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.ObserveAPIRequest("GET", 200, time.Now())
	m.ObserveAPIRequest("GET", 200, time.Now())
	m.ObserveAPIRequest("POST", 0, time.Now())
	m.IncrementAggregationFailure(metrics.KindTenantUsers)
	m.IncrementSessionsCleared()

	require.Equal(t, 2.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("GET", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.APIRequests.WithLabelValues("POST", "error")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.AggregationFailures.WithLabelValues(metrics.KindTenantUsers)))
	require.Equal(t, 0.0, testutil.ToFloat64(m.AggregationFailures.WithLabelValues(metrics.KindClientStats)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCleared))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	require.NotPanics(t, func() {
		m.ObserveAPIRequest("GET", 200, time.Now())
		m.IncrementAggregationFailure(metrics.KindClientStats)
		m.ObserveAggregation(time.Now())
		m.IncrementSessionsCleared()
		m.ObserveEndpointLatency("/healthz", time.Now())
	})
}

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	require.Panics(t, func() { metrics.New(reg) })
}
