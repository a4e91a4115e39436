package middleware

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-oracle/internal/ports"
)

// TestNewPrometheusMetrics verifies that all metric vectors are initialized.
func TestNewPrometheusMetrics(t *testing.T) {
	pm := NewPrometheusMetrics()

	assert.NotNil(t, pm.Registry())
	assert.NotNil(t, pm.evaluations)
	assert.NotNil(t, pm.checks)
	assert.NotNil(t, pm.operationCounter)
	assert.NotNil(t, pm.evaluationDuration)

	var _ ports.MetricsCollector = pm
}

// TestNewPrometheusMetrics_Isolated verifies that instances do not share a
// registry, so creating several never panics on duplicate registration.
func TestNewPrometheusMetrics_Isolated(t *testing.T) {
	assert.NotPanics(t, func() {
		a := NewPrometheusMetrics()
		b := NewPrometheusMetrics()
		assert.NotSame(t, a.Registry(), b.Registry())
	})
}

func TestPrometheusMetrics_RecordCounter(t *testing.T) {
	pm := NewPrometheusMetrics()

	pm.RecordCounter(MetricEvaluations, 1, map[string]string{"operation": "is_prime", "outcome": "affirmative"})
	pm.RecordCounter(MetricEvaluations, 1, map[string]string{"operation": "is_prime", "outcome": "affirmative"})
	pm.RecordCounter(MetricEvaluations, 1, map[string]string{"operation": "is_prime", "outcome": "negative"})
	pm.RecordCounter(MetricChecks, 1, map[string]string{"operation": "is_prime", "result": "fail"})
	pm.RecordCounter("custom_event", 3, map[string]string{"unit": "render"})
	pm.RecordCounter("custom_event", 1, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(pm.evaluations.WithLabelValues("is_prime", "affirmative")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.evaluations.WithLabelValues("is_prime", "negative")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.checks.WithLabelValues("is_prime", "fail")))
	assert.Equal(t, 3.0, testutil.ToFloat64(pm.operationCounter.WithLabelValues("custom_event", "render")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.operationCounter.WithLabelValues("custom_event", "unknown")))
}

func TestPrometheusMetrics_RecordLatency(t *testing.T) {
	pm := NewPrometheusMetrics()

	pm.RecordLatency("evaluate", 150*time.Microsecond, map[string]string{"unit": "oracle"})
	pm.RecordLatency("evaluate", 2*time.Millisecond, map[string]string{"unit": ""})

	count, err := testutil.GatherAndCount(pm.Registry(), "evaluation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per unit label")

	expected := `
# HELP evaluations_total Total number of candidate evaluations.
# TYPE evaluations_total counter
evaluations_total{operation="factorial",outcome="ok"} 1
`
	pm.RecordCounter(MetricEvaluations, 1, map[string]string{"operation": "factorial", "outcome": "ok"})
	assert.NoError(t, testutil.GatherAndCompare(pm.Registry(), strings.NewReader(expected), MetricEvaluations))
}

func TestPrometheusMetrics_Snapshot(t *testing.T) {
	pm := NewPrometheusMetrics()

	empty, err := pm.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, empty)

	pm.RecordCounter(MetricEvaluations, 1, map[string]string{"operation": "is_prime", "outcome": "affirmative"})
	pm.RecordCounter(MetricEvaluations, 2, map[string]string{"operation": "is_prime", "outcome": "negative"})
	pm.RecordLatency("is_prime", time.Millisecond, map[string]string{"unit": "decide"})
	pm.RecordLatency("is_prime", time.Millisecond, map[string]string{"unit": "render"})
	pm.RecordLatency("is_prime", time.Millisecond, map[string]string{"unit": "render"})

	snapshot, err := pm.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"evaluations_total":           3,
		"evaluation_duration_seconds": 3,
	}, snapshot)
}
