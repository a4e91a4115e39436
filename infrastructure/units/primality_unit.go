package units

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-oracle/internal/domain"
	"github.com/ahrav/go-oracle/internal/ports"
)

var _ ports.Unit = (*PrimalityUnit)(nil)

// PrimalityUnit decides whether the candidate in the state is prime and
// stores the outcome as a domain.Verdict.
//
// The decision is delegated to domain.IsPrime, so the unit adds no
// behavior of its own beyond reading and writing state and tracing.
type PrimalityUnit struct {
	name   string
	tracer trace.Tracer
}

// NewPrimalityUnit creates a PrimalityUnit. The name must be non-empty.
func NewPrimalityUnit(name string) (*PrimalityUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}

	return &PrimalityUnit{
		name:   name,
		tracer: otel.Tracer("primality-unit"),
	}, nil
}

// Name returns the unit's identifier.
func (pu *PrimalityUnit) Name() string { return pu.name }

// Execute reads domain.KeyCandidate and writes domain.KeyVerdict.
func (pu *PrimalityUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	_, span := pu.tracer.Start(ctx, "PrimalityUnit.Execute",
		trace.WithAttributes(
			attribute.String("unit.type", "primality"),
			attribute.String("unit.id", pu.name),
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
		return state, fmt.Errorf("%s: %w", pu.name, ErrMissingCandidate)
	}

	start := time.Now()
	verdict := domain.VerdictOf(domain.IsPrime(candidate))

	span.SetAttributes(
		attribute.Int64("eval.candidate", int64(candidate)),
		attribute.String("eval.verdict", verdict.String()),
		attribute.Int64("eval.latency_us", time.Since(start).Microseconds()),
	)

	return domain.With(state, domain.KeyVerdict, verdict), nil
}

// Validate always succeeds; the unit has no configuration.
func (pu *PrimalityUnit) Validate() error { return nil }

// NewPrimalityFromConfig is the registry factory for "primality" units.
// The unit takes no parameters, so config is ignored.
func NewPrimalityFromConfig(id string, _ map[string]any) (ports.Unit, error) {
	return NewPrimalityUnit(id)
}
