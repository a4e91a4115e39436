package application

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-oracle/internal/domain"
)

// Unit type names understood by the registry and the loader.
const (
	UnitTypePrimality     = "primality"
	UnitTypeFactorial     = "factorial"
	UnitTypeVerdictRender = "verdict_render"
	UnitTypeExactMatch    = "exact_match"
)

// ValidateUnitParameters validates the parameters for a specific unit type.
// Unknown keys are rejected so that a typo such as "inverse" instead of
// "inverted" cannot silently flip a program back to the default mapping.
func ValidateUnitParameters(unitType string, params yaml.Node) error {
	paramMap, err := decodeParameters(params)
	if err != nil {
		return err
	}

	switch unitType {
	case UnitTypePrimality, UnitTypeFactorial:
		if len(paramMap) > 0 {
			return fmt.Errorf("%s takes no parameters", unitType)
		}
		return nil
	case UnitTypeVerdictRender:
		return validateVerdictRenderParams(paramMap)
	case UnitTypeExactMatch:
		return validateExactMatchParams(paramMap)
	default:
		return fmt.Errorf("unknown unit type: %s", unitType)
	}
}

// decodeParameters converts a parameters node into a map. An absent node
// decodes to an empty map.
func decodeParameters(params yaml.Node) (map[string]any, error) {
	paramMap := make(map[string]any)
	if params.Kind == 0 {
		return paramMap, nil
	}
	if err := params.Decode(&paramMap); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}
	return paramMap, nil
}

// validateVerdictRenderParams validates parameters for verdict_render units.
func validateVerdictRenderParams(params map[string]any) error {
	if err := rejectUnknownKeys(params, "affirmative", "negative", "inverted"); err != nil {
		return err
	}
	for _, key := range []string{"affirmative", "negative"} {
		if v, ok := params[key]; ok {
			if _, ok := v.(string); !ok {
				return fmt.Errorf("%s must be a string", key)
			}
		}
	}
	if inverted, ok := params["inverted"]; ok {
		if _, ok := inverted.(bool); !ok {
			return fmt.Errorf("inverted must be a boolean")
		}
	}
	return nil
}

// validateExactMatchParams validates parameters for exact match units.
func validateExactMatchParams(params map[string]any) error {
	if err := rejectUnknownKeys(params, "case_sensitive", "trim_whitespace"); err != nil {
		return err
	}
	if caseSensitive, ok := params["case_sensitive"]; ok {
		if _, ok := caseSensitive.(bool); !ok {
			return fmt.Errorf("case_sensitive must be a boolean")
		}
	}
	if trimWhitespace, ok := params["trim_whitespace"]; ok {
		if _, ok := trimWhitespace.(bool); !ok {
			return fmt.Errorf("trim_whitespace must be a boolean")
		}
	}
	return nil
}

func rejectUnknownKeys(params map[string]any, allowed ...string) error {
	for key := range params {
		if !slices.Contains(allowed, key) {
			return fmt.Errorf("unknown parameter %q", key)
		}
	}
	return nil
}

// validateSemantics checks rules that struct tags cannot express: unique
// unit IDs, valid parameters, and a unit order that can actually produce
// an output for the configured operation.
func validateSemantics(config *ProgramConfig) error {
	verr := domain.NewValidationError("program " + config.Name)

	seen := make(map[string]struct{}, len(config.Units))
	var (
		decided  bool // a primality unit has run
		produced bool // some unit has written the output
	)

	for _, unit := range config.Units {
		if _, dup := seen[unit.ID]; dup {
			verr.AddError(fmt.Sprintf("duplicate unit ID %q", unit.ID))
		}
		seen[unit.ID] = struct{}{}

		if err := ValidateUnitParameters(unit.Type, unit.Parameters); err != nil {
			verr.AddError(fmt.Sprintf("unit %q: %v", unit.ID, err))
		}

		switch unit.Type {
		case UnitTypePrimality:
			if config.Operation != domain.OperationIsPrime {
				verr.AddError(fmt.Sprintf("unit %q: primality unit requires operation %s, got %s",
					unit.ID, domain.OperationIsPrime, config.Operation))
			}
			decided = true
		case UnitTypeVerdictRender:
			if !decided {
				verr.AddError(fmt.Sprintf("unit %q: verdict_render must follow a primality unit", unit.ID))
			}
			produced = true
		case UnitTypeFactorial:
			if config.Operation != domain.OperationFactorial {
				verr.AddError(fmt.Sprintf("unit %q: factorial unit requires operation %s, got %s",
					unit.ID, domain.OperationFactorial, config.Operation))
			}
			produced = true
		case UnitTypeExactMatch:
			if !produced {
				verr.AddError(fmt.Sprintf("unit %q: exact_match must follow a unit that produces output", unit.ID))
			}
		}
	}

	if !produced {
		verr.AddError("no unit produces an output")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// registerCustomValidators registers the validation functions used in
// ProgramConfig struct tags.
func registerCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("semver", validateSemver); err != nil {
		return fmt.Errorf("failed to register semver validator: %w", err)
	}
	return nil
}

// validateSemver validates that a string follows the X.Y.Z format.
func validateSemver(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	var major, minor, patch int
	var rest string
	n, _ := fmt.Sscanf(value, "%d.%d.%d%s", &major, &minor, &patch, &rest)
	return n == 3 && major >= 0 && minor >= 0 && patch >= 0
}
