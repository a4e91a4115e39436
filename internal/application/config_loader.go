package application

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ConfigLoader parses and validates ProgramConfig documents.
type ConfigLoader struct {
	validator *validator.Validate
}

// NewConfigLoader creates a loader with the custom validators registered.
func NewConfigLoader() (*ConfigLoader, error) {
	v := validator.New()
	if err := registerCustomValidators(v); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}
	return &ConfigLoader{validator: v}, nil
}

// Load parses data, applies defaults and validates the result.
func (cl *ConfigLoader) Load(data []byte) (*ProgramConfig, error) {
	config, err := cl.parseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.applyDefaults()

	if err := cl.validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromReader reads all of r and delegates to Load.
func (cl *ConfigLoader) LoadFromReader(r io.Reader) (*ProgramConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return cl.Load(data)
}

// parseYAML decodes strictly: unknown fields are an error, so a misspelled
// key cannot be silently ignored.
func (cl *ConfigLoader) parseYAML(data []byte) (*ProgramConfig, error) {
	var config ProgramConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("YAML decode failed: %w", err)
	}
	return &config, nil
}

// validateConfig runs struct tag validation, then semantic validation.
func (cl *ConfigLoader) validateConfig(config *ProgramConfig) error {
	if err := cl.validator.Struct(config); err != nil {
		return fmt.Errorf("struct validation failed: %w", err)
	}

	if err := validateSemantics(config); err != nil {
		return fmt.Errorf("semantic validation failed: %w", err)
	}

	return nil
}
