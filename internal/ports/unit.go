// Package ports defines the interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
package ports

import (
	"context"

	"github.com/ahrav/go-oracle/internal/domain"
)

// Unit is one step of an evaluation: it reads values from the State,
// computes something and returns a new State with its results added.
// Units are stateless and must never modify the State they receive.
type Unit interface {
	// Name returns the unit's identifier, used for logging and tracing.
	Name() string

	// Execute runs the unit against state and returns the resulting State.
	// Errors are returned, never panicked.
	//
	// Example:
	//
	//	newState, err := unit.Execute(ctx, state)
	//	if err != nil {
	//	    return state, fmt.Errorf("unit %s failed: %w", unit.Name(), err)
	//	}
	Execute(ctx context.Context, state domain.State) (domain.State, error)

	// Validate checks that the unit is properly configured.
	Validate() error
}

// UnitFactory builds a Unit from its ID and decoded YAML parameters.
type UnitFactory func(id string, config map[string]any) (Unit, error)

// UnitRegistry creates units by type name.
type UnitRegistry interface {
	// CreateUnit instantiates a unit of unitType with the given ID and
	// parameters.
	CreateUnit(unitType string, id string, config map[string]any) (Unit, error)

	// RegisterUnitFactory adds or replaces the factory for unitType.
	RegisterUnitFactory(unitType string, factory UnitFactory) error

	// GetSupportedTypes lists the registered unit types.
	GetSupportedTypes() []string
}
