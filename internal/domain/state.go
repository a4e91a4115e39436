// Package domain contains pure, dependency-free domain models and the
// oracles that evaluate a candidate.
package domain

import (
	"fmt"
	"maps"
	"slices"
)

// Key is a typed handle for a value stored in State.
// The type parameter keeps Get and With type-safe at compile time.
type Key[T any] struct{ name string }

// NewKey creates a Key outside of the domain package.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the key's string name.
func (k Key[T]) Name() string { return k.name }

// Predefined state keys.
var (
	// KeyCandidate stores the integer under evaluation.
	KeyCandidate = Key[Candidate]{"candidate"}

	// KeyOperation stores which computation the program performs.
	KeyOperation = Key[Operation]{"operation"}

	// KeyVerdict stores the outcome of a decision unit.
	KeyVerdict = Key[Verdict]{"verdict"}

	// KeyOutput stores the literal the program will print.
	KeyOutput = Key[string]{"output"}

	// KeyExpectedOutput stores the literal a grader expects, when known.
	KeyExpectedOutput = Key[string]{"expected_output"}

	// KeyCheck stores the comparison of KeyOutput against KeyExpectedOutput.
	KeyCheck = Key[CheckResult]{"check"}

	// KeyExecutionID correlates one evaluation across logs and spans.
	KeyExecutionID = Key[string]{"execution.execution_id"}
)

// State is an immutable bag of evaluation data passed between units.
// Every write returns a new State; the receiver is never modified, so a
// State can be shared freely. Stored values are plain values (integers,
// strings, small structs), which makes the shallow map clone sufficient.
type State struct {
	data map[string]any
}

// NewState creates an empty State.
func NewState() State {
	return State{data: make(map[string]any)}
}

// Get returns the value stored under key and whether it exists with the
// expected type.
func Get[T any](s State, key Key[T]) (T, bool) {
	var zero T
	value, exists := s.data[key.name]
	if !exists {
		return zero, false
	}
	val, ok := value.(T)
	return val, ok
}

// MustGet is like Get but reports a missing or mistyped key as a
// *StateError.
func MustGet[T any](s State, key Key[T]) (T, error) {
	var zero T
	value, exists := s.data[key.name]
	if !exists {
		return zero, NewStateError(key.name, "Get", ErrKeyNotFound)
	}
	val, ok := value.(T)
	if !ok {
		return zero, NewStateError(key.name, "Get", ErrTypeMismatch)
	}
	return val, nil
}

// With returns a new State with key set to value.
func With[T any](s State, key Key[T], value T) State {
	newData := maps.Clone(s.data)
	if newData == nil {
		newData = make(map[string]any, 1)
	}
	newData[key.name] = value
	return State{data: newData}
}

// Has reports whether key is present, regardless of its type.
func Has[T any](s State, key Key[T]) bool {
	_, ok := s.data[key.name]
	return ok
}

// Keys returns the stored key names in sorted order.
func (s State) Keys() []string {
	return slices.Sorted(maps.Keys(s.data))
}

// Len returns the number of stored values.
func (s State) Len() int { return len(s.data) }

// String implements fmt.Stringer.
func (s State) String() string {
	return fmt.Sprintf("State%v", s.data)
}
