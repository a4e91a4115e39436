// Package middleware provides cross-cutting concerns for the oracle engine.
package middleware

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ahrav/go-oracle/internal/ports"
)

// Metric names accepted by RecordCounter.
const (
	// MetricEvaluations counts finished evaluations by operation and outcome.
	MetricEvaluations = "evaluations_total"

	// MetricChecks counts expected-output comparisons by result.
	MetricChecks = "checks_total"
)

// PrometheusMetrics implements the MetricsCollector interface using Prometheus.
//
// Metrics live in a private registry rather than the global one so that
// several instances (one per test, one per embedded runner) never collide
// on registration. Nothing is exported over the network; callers that want
// to expose the registry can wrap Registry() themselves.
type PrometheusMetrics struct {
	registry           *prometheus.Registry
	evaluations        *prometheus.CounterVec
	checks             *prometheus.CounterVec
	operationCounter   *prometheus.CounterVec
	evaluationDuration *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a PrometheusMetrics with its own registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	pm := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricEvaluations,
				Help: "Total number of candidate evaluations.",
			},
			[]string{"operation", "outcome"},
		),
		checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricChecks,
				Help: "Total number of output checks against an expected literal.",
			},
			[]string{"operation", "result"},
		),
		operationCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oracle_operations_total",
				Help: "Total number of other recorded operations.",
			},
			[]string{"operation", "unit"},
		),
		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "evaluation_duration_seconds",
				Help:    "Execution time of oracle operations.",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"operation", "unit"},
		),
	}

	pm.registry.MustRegister(pm.evaluations, pm.checks, pm.operationCounter, pm.evaluationDuration)
	return pm
}

// Registry returns the registry holding all metrics.
func (pm *PrometheusMetrics) Registry() *prometheus.Registry { return pm.registry }

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.evaluationDuration.WithLabelValues(operation, unitLabel(labels)).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case MetricEvaluations:
		pm.evaluations.WithLabelValues(labels["operation"], labels["outcome"]).Add(value)
	case MetricChecks:
		pm.checks.WithLabelValues(labels["operation"], labels["result"]).Add(value)
	default:
		pm.operationCounter.WithLabelValues(metric, unitLabel(labels)).Add(value)
	}
}

// Snapshot gathers the registry and returns, per metric family, the sum
// of its counter values or the total number of histogram observations.
// Families with no recorded series are omitted.
func (pm *PrometheusMetrics) Snapshot() (map[string]float64, error) {
	families, err := pm.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	snapshot := make(map[string]float64, len(families))
	for _, family := range families {
		var total float64
		for _, m := range family.GetMetric() {
			if c := m.GetCounter(); c != nil {
				total += c.GetValue()
			}
			if h := m.GetHistogram(); h != nil {
				total += float64(h.GetSampleCount())
			}
		}
		if len(family.GetMetric()) > 0 {
			snapshot[family.GetName()] = total
		}
	}
	return snapshot, nil
}

func unitLabel(labels map[string]string) string {
	if unit := labels["unit"]; unit != "" {
		return unit
	}
	return "unknown"
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
