// Package units provides the evaluation units that implement ports.Unit
// for the oracle engine.
package units

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Common errors returned by units.
var (
	// ErrEmptyUnitName is returned when attempting to create a unit with an empty name.
	ErrEmptyUnitName = errors.New("unit name cannot be empty")

	// ErrMissingCandidate is returned when the state carries no candidate.
	ErrMissingCandidate = errors.New("candidate not found in state")

	// ErrMissingVerdict is returned when a renderer runs before any decision unit.
	ErrMissingVerdict = errors.New("verdict not found in state")

	// ErrMissingOutput is returned when a checker runs before any output was produced.
	ErrMissingOutput = errors.New("output not found in state")
)

// MaxLiteralLength bounds configured output literals and compared outputs.
const MaxLiteralLength = 1024

// Package-level validator instance for configuration validation.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("literal", ValidateLiteral)
	return v
}

// ValidateLiteral is a validator.Func accepting non-empty strings of at
// most MaxLiteralLength bytes that contain no whitespace. Output literals
// are compared byte for byte by graders, so whitespace inside them is
// almost always a configuration mistake.
func ValidateLiteral(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && len(s) <= MaxLiteralLength && strings.IndexFunc(s, unicode.IsSpace) < 0
}
