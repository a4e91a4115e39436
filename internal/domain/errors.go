package domain

import (
	"errors"
	"fmt"
)

// Common domain errors.
var (
	// ErrEmptyInput indicates that no token could be read from the input.
	ErrEmptyInput = errors.New("empty input")

	// ErrMalformedInput indicates that the input token is not an integer.
	ErrMalformedInput = errors.New("malformed input")

	// ErrCandidateOutOfRange indicates that the input integer does not fit
	// the configured candidate width.
	ErrCandidateOutOfRange = errors.New("candidate out of range")

	// ErrKeyNotFound indicates that a requested State key does not exist.
	ErrKeyNotFound = errors.New("key not found")

	// ErrTypeMismatch indicates that a stored value has an unexpected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidConfiguration indicates that configuration is invalid or incomplete.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// InputError describes a failure to turn raw input into a Candidate.
type InputError struct {
	// Token is the raw text that was read, if any.
	Token string

	// Err is one of ErrEmptyInput, ErrMalformedInput or
	// ErrCandidateOutOfRange, or an underlying read error.
	Err error
}

// Error implements the error interface for InputError.
func (e *InputError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("input error: %v", e.Err)
	}
	return fmt.Sprintf("input error: token=%q, err=%v", e.Token, e.Err)
}

// Unwrap returns the underlying error.
func (e *InputError) Unwrap() error { return e.Err }

// NewInputError creates a new InputError.
func NewInputError(token string, err error) *InputError {
	return &InputError{Token: token, Err: err}
}

// StateError represents an error that occurred during State operations.
type StateError struct {
	// Key is the name of the key involved in the failed operation.
	Key string

	// Operation describes what was being performed.
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for StateError.
func (e *StateError) Error() string {
	return fmt.Sprintf("state error: operation=%s, key=%s, err=%v", e.Operation, e.Key, e.Err)
}

// Unwrap returns the underlying error, supporting errors.Is and errors.As.
func (e *StateError) Unwrap() error { return e.Err }

// NewStateError creates a new StateError with the given details.
func NewStateError(key, operation string, err error) *StateError {
	return &StateError{
		Key:       key,
		Operation: operation,
		Err:       err,
	}
}

// ValidationError collects one or more validation failures for an entity.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the validation messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// Unwrap lets errors.Is match ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error { return ErrInvalidConfiguration }

// AddError adds a message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors returns true if any message was added.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
	}
}
