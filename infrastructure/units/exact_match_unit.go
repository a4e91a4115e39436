package units

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-oracle/internal/domain"
	"github.com/ahrav/go-oracle/internal/ports"
)

var _ ports.Unit = (*ExactMatchUnit)(nil)

// ExactMatchUnit compares the program output with the literal a grader
// expects and records a domain.CheckResult.
//
// The comparison mirrors the grading harness: surrounding whitespace is
// stripped and the literals are compared exactly. When they differ the
// Levenshtein distance between the normalized strings is recorded so a
// near miss (for example "Yes" against "YES") is easy to spot.
//
// When the state carries no expected output the unit is a no-op, which
// lets the same pipeline serve both graded and ungraded runs.
//
// Concurrency: ExactMatchUnit is stateless and safe for concurrent execution.
type ExactMatchUnit struct {
	name   string
	config ExactMatchConfig
	tracer trace.Tracer
}

// ExactMatchConfig controls string normalization before comparison.
type ExactMatchConfig struct {
	// CaseSensitive controls case sensitivity during comparison.
	// When false, uses Unicode-aware case folding.
	// Default: true.
	CaseSensitive bool `yaml:"case_sensitive" json:"case_sensitive"`

	// TrimWhitespace strips leading and trailing whitespace before comparison.
	// Default: true.
	TrimWhitespace bool `yaml:"trim_whitespace" json:"trim_whitespace"`
}

// DefaultExactMatchConfig returns strict, case-sensitive matching with
// whitespace trimming, the policy graders apply to YES/NO literals.
func DefaultExactMatchConfig() ExactMatchConfig {
	return ExactMatchConfig{
		CaseSensitive:  true,
		TrimWhitespace: true,
	}
}

// NewExactMatchUnit creates a new ExactMatchUnit with validated configuration.
// Returns ErrEmptyUnitName if name is empty.
func NewExactMatchUnit(name string, config ExactMatchConfig) (*ExactMatchUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &ExactMatchUnit{
		name:   name,
		config: config,
		tracer: otel.Tracer("exact-match-unit"),
	}, nil
}

// Name returns the unit's identifier.
func (emu *ExactMatchUnit) Name() string { return emu.name }

// Execute compares domain.KeyOutput against domain.KeyExpectedOutput and
// writes domain.KeyCheck.
//
// Errors:
//   - expected output present but no output produced yet
//   - either literal exceeds MaxLiteralLength
func (emu *ExactMatchUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	_, span := emu.tracer.Start(ctx, "ExactMatchUnit.Execute",
		trace.WithAttributes(
			attribute.String("unit.type", "exact_match"),
			attribute.String("unit.id", emu.name),
			attribute.Bool("config.case_sensitive", emu.config.CaseSensitive),
			attribute.Bool("config.trim_whitespace", emu.config.TrimWhitespace),
		),
	)
	defer span.End()

	expected, ok := domain.Get(state, domain.KeyExpectedOutput)
	if !ok {
		span.SetAttributes(attribute.Bool("eval.skipped", true))
		return state, nil
	}

	actual, ok := domain.Get(state, domain.KeyOutput)
	if !ok {
		span.RecordError(ErrMissingOutput)
		return state, fmt.Errorf("%s: %w", emu.name, ErrMissingOutput)
	}

	if len(expected) > MaxLiteralLength {
		err := fmt.Errorf("expected output too long: %d bytes exceeds limit of %d", len(expected), MaxLiteralLength)
		span.RecordError(err)
		return state, err
	}
	if len(actual) > MaxLiteralLength {
		err := fmt.Errorf("output too long: %d bytes exceeds limit of %d", len(actual), MaxLiteralLength)
		span.RecordError(err)
		return state, err
	}

	result := emu.Compare(expected, actual)

	span.SetAttributes(
		attribute.Bool("eval.passed", result.Passed),
		attribute.Int("eval.distance", result.Distance),
	)

	return domain.With(state, domain.KeyCheck, result), nil
}

// Compare normalizes both literals and compares them.
// Expected and Actual in the result keep the raw, unnormalized text.
func (emu *ExactMatchUnit) Compare(expected, actual string) domain.CheckResult {
	want := emu.prepareString(expected)
	got := emu.prepareString(actual)

	result := domain.CheckResult{
		Passed:   want == got,
		Expected: expected,
		Actual:   actual,
	}
	if !result.Passed {
		result.Distance = levenshtein.ComputeDistance(want, got)
	}
	return result
}

// prepareString applies whitespace trimming, then case folding.
func (emu *ExactMatchUnit) prepareString(s string) string {
	result := s

	if emu.config.TrimWhitespace {
		result = strings.TrimSpace(result)
	}

	if !emu.config.CaseSensitive {
		result = cases.Fold().String(result)
	}

	return result
}

// Validate verifies the unit's configuration.
func (emu *ExactMatchUnit) Validate() error {
	if err := validate.Struct(emu.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// NewExactMatchFromConfig is the registry factory for "exact_match" units.
// Keys missing from config keep their DefaultExactMatchConfig values.
func NewExactMatchFromConfig(id string, config map[string]any) (ports.Unit, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultExactMatchConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewExactMatchUnit(id, cfg)
}
