package units

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-oracle/internal/domain"
	"github.com/ahrav/go-oracle/internal/ports"
)

var _ ports.Unit = (*VerdictRenderUnit)(nil)

// VerdictRenderUnit turns the verdict in the state into the literal the
// program prints, using a configurable pair of output literals.
//
// With Inverted set the literals are swapped, which reproduces the
// grading fixture that answers NO for every prime and YES otherwise.
type VerdictRenderUnit struct {
	name    string
	config  VerdictRenderConfig
	mapping domain.OutputMapping
	tracer  trace.Tracer
}

// VerdictRenderConfig holds the output literals.
// Both literals are required, must differ and may not contain whitespace.
type VerdictRenderConfig struct {
	// Affirmative is printed for an affirmative verdict. Default: "YES".
	Affirmative string `yaml:"affirmative" json:"affirmative" validate:"required,literal,nefield=Negative"`

	// Negative is printed for a negative verdict. Default: "NO".
	Negative string `yaml:"negative" json:"negative" validate:"required,literal"`

	// Inverted swaps the two literals at render time. Default: false.
	Inverted bool `yaml:"inverted" json:"inverted"`
}

// DefaultVerdictRenderConfig returns the YES/NO mapping.
func DefaultVerdictRenderConfig() VerdictRenderConfig {
	m := domain.DefaultOutputMapping()
	return VerdictRenderConfig{
		Affirmative: m.Affirmative,
		Negative:    m.Negative,
	}
}

// Mapping returns the effective mapping, with inversion applied.
func (c VerdictRenderConfig) Mapping() domain.OutputMapping {
	m := domain.OutputMapping{Affirmative: c.Affirmative, Negative: c.Negative}
	if c.Inverted {
		return m.Inverted()
	}
	return m
}

// NewVerdictRenderUnit creates a VerdictRenderUnit with validated configuration.
func NewVerdictRenderUnit(name string, config VerdictRenderConfig) (*VerdictRenderUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &VerdictRenderUnit{
		name:    name,
		config:  config,
		mapping: config.Mapping(),
		tracer:  otel.Tracer("verdict-render-unit"),
	}, nil
}

// Name returns the unit's identifier.
func (vr *VerdictRenderUnit) Name() string { return vr.name }

// Execute reads domain.KeyVerdict and writes domain.KeyOutput.
func (vr *VerdictRenderUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	_, span := vr.tracer.Start(ctx, "VerdictRenderUnit.Execute",
		trace.WithAttributes(
			attribute.String("unit.type", "verdict_render"),
			attribute.String("unit.id", vr.name),
			attribute.Bool("config.inverted", vr.config.Inverted),
		),
	)
	defer span.End()

	verdict, ok := domain.Get(state, domain.KeyVerdict)
	if !ok {
		span.RecordError(ErrMissingVerdict)
		return state, fmt.Errorf("%s: %w", vr.name, ErrMissingVerdict)
	}

	output := vr.mapping.Render(verdict)
	span.SetAttributes(attribute.String("eval.output", output))

	return domain.With(state, domain.KeyOutput, output), nil
}

// Validate re-checks the configuration.
func (vr *VerdictRenderUnit) Validate() error {
	if err := validate.Struct(vr.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// NewVerdictRenderFromConfig is the registry factory for "verdict_render"
// units. Keys missing from config keep their DefaultVerdictRenderConfig values.
func NewVerdictRenderFromConfig(id string, config map[string]any) (ports.Unit, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultVerdictRenderConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewVerdictRenderUnit(id, cfg)
}
