package application

import (
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-oracle/internal/domain"
)

// Defaults applied by the loader when a field is left unset.
const (
	DefaultBitSize  = 32
	DefaultLogLevel = "warn"
)

// ProgramConfig describes one oracle program: which operation it performs,
// how it reads and prints, and the ordered units that evaluate a candidate.
// Each binary embeds its ProgramConfig at build time.
type ProgramConfig struct {
	// Version specifies the configuration schema version (X.Y.Z).
	Version string `yaml:"version" validate:"required,semver"`
	// Name identifies the program in logs and spans.
	Name string `yaml:"name" validate:"required,min=1,max=100"`
	// Operation selects the computation performed on the candidate.
	Operation domain.Operation `yaml:"operation" validate:"required,oneof=is_prime factorial"`
	// Input controls how the candidate is parsed.
	Input InputConfig `yaml:"input"`
	// Output controls how the literal is printed.
	Output OutputConfig `yaml:"output"`
	// Log controls diagnostic logging on stderr.
	Log LogConfig `yaml:"log"`
	// Units lists the evaluation units in execution order.
	Units []UnitConfig `yaml:"units" validate:"required,min=1,max=10,dive"`
}

// InputConfig controls candidate parsing.
type InputConfig struct {
	// BitSize is the width a candidate must fit in. Default: 32.
	BitSize int `yaml:"bit_size" validate:"omitempty,min=8,max=64"`
}

// OutputConfig controls how the result is printed.
type OutputConfig struct {
	// TrailingNewline appends "\n" after the literal. Default: false.
	TrailingNewline bool `yaml:"trailing_newline"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: warn.
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// UnitConfig defines a single evaluation unit.
type UnitConfig struct {
	// ID is the unit's identifier within the program.
	ID string `yaml:"id" validate:"required,alphanum,min=1,max=100"`
	// Type selects the unit implementation.
	Type string `yaml:"type" validate:"required,oneof=primality factorial verdict_render exact_match"`
	// Parameters holds type-specific settings, checked by ValidateUnitParameters.
	Parameters yaml.Node `yaml:"parameters"`
}

// applyDefaults fills unset optional fields.
func (c *ProgramConfig) applyDefaults() {
	if c.Input.BitSize == 0 {
		c.Input.BitSize = DefaultBitSize
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
