package domain

import "fmt"

// Candidate is the integer under evaluation.
// The console reader only admits values that fit the configured bit width
// (32 bits by default, up to 64). IsPrime and Factorial accept the whole
// int64 range.
type Candidate int64

// Operation names the computation a program performs on its candidate.
type Operation string

// Supported operations.
const (
	// OperationIsPrime decides primality and renders a Verdict.
	OperationIsPrime Operation = "is_prime"

	// OperationFactorial computes n! and renders it in decimal.
	OperationFactorial Operation = "factorial"
)

// Verdict is the two-valued outcome of a decision operation.
type Verdict int

const (
	// Negative means the candidate does not have the tested property.
	Negative Verdict = iota
	// Affirmative means the candidate has the tested property.
	Affirmative
)

// VerdictOf converts a predicate result into a Verdict.
func VerdictOf(ok bool) Verdict {
	if ok {
		return Affirmative
	}
	return Negative
}

// String implements fmt.Stringer.
func (v Verdict) String() string {
	switch v {
	case Affirmative:
		return "affirmative"
	case Negative:
		return "negative"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// OutputMapping maps each Verdict to the literal printed for it.
type OutputMapping struct {
	// Affirmative is printed for an Affirmative verdict.
	Affirmative string `yaml:"affirmative" json:"affirmative"`

	// Negative is printed for a Negative verdict.
	Negative string `yaml:"negative" json:"negative"`
}

// DefaultOutputMapping returns the YES/NO mapping expected by the grader.
func DefaultOutputMapping() OutputMapping {
	return OutputMapping{Affirmative: "YES", Negative: "NO"}
}

// Inverted returns a copy of the mapping with both literals swapped.
func (m OutputMapping) Inverted() OutputMapping {
	return OutputMapping{Affirmative: m.Negative, Negative: m.Affirmative}
}

// Render returns the literal for v.
func (m OutputMapping) Render(v Verdict) string {
	if v == Affirmative {
		return m.Affirmative
	}
	return m.Negative
}

// CheckResult records the comparison of a produced output against the
// literal a grader expects.
type CheckResult struct {
	// Passed is true when the normalized output equals the expectation.
	Passed bool `json:"passed"`

	// Expected is the literal the grader expects.
	Expected string `json:"expected"`

	// Actual is the literal the program produced.
	Actual string `json:"actual"`

	// Distance is the edit distance between the normalized strings.
	// It is zero whenever Passed is true.
	Distance int `json:"distance"`
}

// Result is what a single evaluation run produces.
type Result struct {
	// ExecutionID correlates logs and spans for this run.
	ExecutionID string `json:"execution_id"`

	// Operation is the computation that was performed.
	Operation Operation `json:"operation"`

	// Candidate is the evaluated input.
	Candidate Candidate `json:"candidate"`

	// Verdict is set for decision operations only.
	Verdict *Verdict `json:"verdict,omitempty"`

	// Output is the literal to print.
	Output string `json:"output"`

	// Check is set when an expected output was supplied.
	Check *CheckResult `json:"check,omitempty"`
}
