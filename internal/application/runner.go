package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ahrav/go-oracle/internal/domain"
	"github.com/ahrav/go-oracle/internal/logging"
	"github.com/ahrav/go-oracle/internal/ports"
)

// Runner evaluates candidates against the unit pipeline described by a
// ProgramConfig. A Runner is built once per program and may evaluate any
// number of candidates; it holds no per-evaluation state.
type Runner struct {
	config   *ProgramConfig
	pipeline *Pipeline
	metrics  ports.MetricsCollector
	logger   *zap.Logger
	tracer   trace.Tracer
}

// NewRunner builds the pipeline for cfg using registry to construct each
// unit. A nil metrics collector or logger is replaced by a no-op.
func NewRunner(
	cfg *ProgramConfig,
	registry ports.UnitRegistry,
	metrics ports.MetricsCollector,
	logger *zap.Logger,
) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("program config cannot be nil")
	}
	if registry == nil {
		return nil, fmt.Errorf("unit registry cannot be nil")
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	logger = logging.OrNop(logger)

	pipeline := NewPipeline(cfg.Name)
	for _, uc := range cfg.Units {
		unit, err := createUnit(registry, uc)
		if err != nil {
			return nil, err
		}
		adapter := NewUnitAdapter(unit, uc.ID).WithMetrics(metrics, string(cfg.Operation))
		if err := pipeline.Add(adapter); err != nil {
			return nil, fmt.Errorf("failed to add unit %s: %w", uc.ID, err)
		}
	}

	return &Runner{
		config:   cfg,
		pipeline: pipeline,
		metrics:  metrics,
		logger:   logger.With(zap.String("program", cfg.Name)),
		tracer:   otel.Tracer("oracle-runner"),
	}, nil
}

// createUnit decodes the unit's parameters and asks the registry for an
// instance.
func createUnit(registry ports.UnitRegistry, uc UnitConfig) (ports.Unit, error) {
	params, err := decodeParameters(uc.Parameters)
	if err != nil {
		return nil, fmt.Errorf("unit %s: %w", uc.ID, err)
	}

	unit, err := registry.CreateUnit(uc.Type, uc.ID, params)
	if err != nil {
		return nil, err
	}
	if err := unit.Validate(); err != nil {
		return nil, fmt.Errorf("unit %s validation failed: %w", uc.ID, err)
	}
	return unit, nil
}

// Pipeline returns the runner's pipeline.
func (r *Runner) Pipeline() *Pipeline { return r.pipeline }

// Evaluate runs the pipeline for one candidate. When expected is non-nil
// the output is also compared against it by any exact_match unit, and the
// comparison is reported in Result.Check.
func (r *Runner) Evaluate(
	ctx context.Context,
	candidate domain.Candidate,
	expected *string,
) (domain.Result, error) {
	executionID := uuid.NewString()
	operation := string(r.config.Operation)

	ctx, span := r.tracer.Start(ctx, "Runner.Evaluate",
		trace.WithAttributes(
			attribute.String("program.name", r.config.Name),
			attribute.String("execution.id", executionID),
			attribute.String("eval.operation", operation),
			attribute.Int64("eval.candidate", int64(candidate)),
		),
	)
	defer span.End()

	logger := r.logger.With(
		zap.String("execution_id", executionID),
		zap.String("operation", operation),
		zap.Int64("candidate", int64(candidate)),
	)
	logger.Debug("evaluation started")

	state := domain.NewState()
	state = domain.With(state, domain.KeyCandidate, candidate)
	state = domain.With(state, domain.KeyOperation, r.config.Operation)
	state = domain.With(state, domain.KeyExecutionID, executionID)
	if expected != nil {
		state = domain.With(state, domain.KeyExpectedOutput, *expected)
	}

	start := time.Now()
	finalState, err := r.pipeline.Execute(ctx, state)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.metrics.RecordCounter(MetricEvaluations, 1, map[string]string{
			"operation": operation,
			"outcome":   "error",
		})
		logger.Error("evaluation failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return domain.Result{}, err
	}

	result, err := resultFromState(finalState, r.config.Operation, candidate, executionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Result{}, err
	}

	outcome := "ok"
	if result.Verdict != nil {
		outcome = result.Verdict.String()
	}
	r.metrics.RecordCounter(MetricEvaluations, 1, map[string]string{
		"operation": operation,
		"outcome":   outcome,
	})

	if result.Check != nil {
		checkResult := "fail"
		if result.Check.Passed {
			checkResult = "pass"
		}
		r.metrics.RecordCounter(MetricChecks, 1, map[string]string{
			"operation": operation,
			"result":    checkResult,
		})
		span.SetAttributes(attribute.Bool("check.passed", result.Check.Passed))
		logger.Debug("output checked",
			zap.Bool("passed", result.Check.Passed),
			zap.String("expected", result.Check.Expected),
			zap.Int("distance", result.Check.Distance),
		)
	}

	span.SetAttributes(attribute.String("eval.output", result.Output))
	span.SetStatus(codes.Ok, "evaluation completed")
	logger.Debug("evaluation finished",
		zap.String("output", result.Output),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	)

	return result, nil
}

// Metric names recorded by the runner. They match the names understood by
// middleware.PrometheusMetrics.
const (
	MetricEvaluations = "evaluations_total"
	MetricChecks      = "checks_total"
)

func resultFromState(
	state domain.State,
	operation domain.Operation,
	candidate domain.Candidate,
	executionID string,
) (domain.Result, error) {
	output, err := domain.MustGet(state, domain.KeyOutput)
	if err != nil {
		return domain.Result{}, fmt.Errorf("pipeline produced no output: %w", err)
	}

	result := domain.Result{
		ExecutionID: executionID,
		Operation:   operation,
		Candidate:   candidate,
		Output:      output,
	}
	if verdict, ok := domain.Get(state, domain.KeyVerdict); ok {
		result.Verdict = &verdict
	}
	if check, ok := domain.Get(state, domain.KeyCheck); ok {
		result.Check = &check
	}
	return result, nil
}
