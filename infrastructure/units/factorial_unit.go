package units

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-oracle/internal/domain"
	"github.com/ahrav/go-oracle/internal/ports"
)

var _ ports.Unit = (*FactorialUnit)(nil)

// FactorialUnit computes n! for the candidate and stores its decimal
// rendering as the program output. Negative candidates render as "-1".
type FactorialUnit struct {
	name   string
	tracer trace.Tracer
}

// NewFactorialUnit creates a FactorialUnit. The name must be non-empty.
func NewFactorialUnit(name string) (*FactorialUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}

	return &FactorialUnit{
		name:   name,
		tracer: otel.Tracer("factorial-unit"),
	}, nil
}

// Name returns the unit's identifier.
func (fu *FactorialUnit) Name() string { return fu.name }

// Execute reads domain.KeyCandidate and writes domain.KeyOutput.
func (fu *FactorialUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	_, span := fu.tracer.Start(ctx, "FactorialUnit.Execute",
		trace.WithAttributes(
			attribute.String("unit.type", "factorial"),
			attribute.String("unit.id", fu.name),
		),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return state, err
	}

	candidate, ok := domain.Get(state, domain.KeyCandidate)
	if !ok {
		span.RecordError(ErrMissingCandidate)
		return state, fmt.Errorf("%s: %w", fu.name, ErrMissingCandidate)
	}

	// 21! and above wrap; flag it on the span so it is visible when tracing.
	span.SetAttributes(
		attribute.Int64("eval.candidate", int64(candidate)),
		attribute.Bool("eval.overflow", candidate > 20),
	)

	output := strconv.FormatInt(domain.Factorial(candidate), 10)
	return domain.With(state, domain.KeyOutput, output), nil
}

// Validate always succeeds; the unit has no configuration.
func (fu *FactorialUnit) Validate() error { return nil }

// NewFactorialFromConfig is the registry factory for "factorial" units.
func NewFactorialFromConfig(id string, _ map[string]any) (ports.Unit, error) {
	return NewFactorialUnit(id)
}
