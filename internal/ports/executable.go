package ports

import (
	"context"

	"github.com/ahrav/go-oracle/internal/domain"
)

// Executable is anything that can run against a State inside a pipeline:
// an adapted Unit or a nested Pipeline.
type Executable interface {
	// Execute processes state and returns the updated State.
	// The input State is immutable and MUST NOT be modified.
	Execute(ctx context.Context, state domain.State) (domain.State, error)

	// ID returns the executable's identifier, unique within its pipeline.
	ID() string
}

// Pipeline runs executables strictly in order, feeding each one the
// State produced by the previous one.
type Pipeline interface {
	Executable

	// Add appends exec to the end of the sequence.
	// Add returns an error for a nil executable or a duplicate ID.
	Add(exec Executable) error

	// Executables returns the ordered executables.
	// The returned slice should not be modified by callers.
	Executables() []Executable
}
