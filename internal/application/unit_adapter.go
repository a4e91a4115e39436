package application

import (
	"context"
	"time"

	"github.com/ahrav/go-oracle/internal/domain"
	"github.com/ahrav/go-oracle/internal/ports"
)

// UnitAdapter wraps a ports.Unit so it satisfies ports.Executable and can
// be added to a Pipeline.
type UnitAdapter struct {
	unit      ports.Unit
	id        string
	metrics   ports.MetricsCollector
	operation string
}

// NewUnitAdapter wraps unit under the given ID.
func NewUnitAdapter(unit ports.Unit, id string) *UnitAdapter {
	return &UnitAdapter{
		unit: unit,
		id:   id,
	}
}

// WithMetrics makes the adapter record the wrapped unit's execution time
// under operation, labelled with the adapter's ID.
func (ua *UnitAdapter) WithMetrics(metrics ports.MetricsCollector, operation string) *UnitAdapter {
	ua.metrics = metrics
	ua.operation = operation
	return ua
}

// Execute delegates to the wrapped unit.
func (ua *UnitAdapter) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	if ua.metrics == nil {
		return ua.unit.Execute(ctx, state)
	}

	start := time.Now()
	newState, err := ua.unit.Execute(ctx, state)
	ua.metrics.RecordLatency(ua.operation, time.Since(start), map[string]string{"unit": ua.id})
	return newState, err
}

// ID returns the adapter's identifier.
func (ua *UnitAdapter) ID() string { return ua.id }

// Unit returns the wrapped unit.
func (ua *UnitAdapter) Unit() ports.Unit { return ua.unit }

var _ ports.Executable = (*UnitAdapter)(nil)
