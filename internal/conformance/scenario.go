package conformance

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/convexgo/dcp/attr"
)

// Scenario defines one conformance case: a set of leaves, a build
// program assembling an expression tree from them, and the expected
// analysis outcome for the final node. Scenarios live in testdata as
// YAML and are compared against golden report files.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description"`

	// Variables declares decision-variable leaves.
	Variables []LeafDecl `yaml:"variables,omitempty"`

	// Parameters declares parameter leaves with an optional sign.
	Parameters []LeafDecl `yaml:"parameters,omitempty"`

	// Constants declares numeric constant leaves.
	Constants []ConstDecl `yaml:"constants,omitempty"`

	// Build lists the atom applications, in order. Each step binds its
	// result to a name usable by later steps. The final step's result
	// is the scenario's root expression.
	Build []BuildStep `yaml:"build"`

	// Expect states the required analysis outcome for the root. It is
	// omitted for scenarios whose last step expects an error.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// LeafDecl declares a variable or parameter leaf. Rows and Cols
// default to 1, so scalar leaves need only a name.
type LeafDecl struct {
	Name string `yaml:"name"`
	Rows int    `yaml:"rows,omitempty"`
	Cols int    `yaml:"cols,omitempty"`

	// Sign is the declared sign for parameters: "positive",
	// "negative", "zero", or empty for unknown. Ignored for variables.
	Sign string `yaml:"sign,omitempty"`
}

// ConstDecl declares a constant leaf with explicit values, row by row.
type ConstDecl struct {
	Name   string      `yaml:"name"`
	Values [][]float64 `yaml:"values"`
}

// BuildStep applies one atom to already-bound expressions.
type BuildStep struct {
	// Bind is the name the result is bound to.
	Bind string `yaml:"bind"`

	// Atom is the catalogue atom name.
	Atom string `yaml:"atom"`

	// Args are the operand names, in order.
	Args []string `yaml:"args"`

	// ExpectError names the error kind the step must fail with:
	// "dimension", "operand", or "unknown_atom". A failing step must
	// be the scenario's last.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// ExpectClause states the required collapsed sign and curvature of the
// root expression.
type ExpectClause struct {
	Sign      string `yaml:"sign"`
	Curvature string `yaml:"curvature"`

	// DCP optionally asserts whether every entry of the root carries a
	// certified curvature.
	DCP *bool `yaml:"dcp,omitempty"`
}

// Expected error kind names for BuildStep.ExpectError.
const (
	ErrKindDimension   = "dimension"
	ErrKindOperand     = "operand"
	ErrKindUnknownAtom = "unknown_atom"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos in scenario files fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and
// internally consistent.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Build) == 0 {
		return fmt.Errorf("build list is required and must be non-empty")
	}

	for i, v := range s.Variables {
		if v.Name == "" {
			return fmt.Errorf("variables[%d]: name is required", i)
		}
	}
	for i, p := range s.Parameters {
		if p.Name == "" {
			return fmt.Errorf("parameters[%d]: name is required", i)
		}
		if _, err := parseSign(p.Sign); err != nil {
			return fmt.Errorf("parameters[%d]: %w", i, err)
		}
	}
	for i, c := range s.Constants {
		if c.Name == "" {
			return fmt.Errorf("constants[%d]: name is required", i)
		}
		if len(c.Values) == 0 || len(c.Values[0]) == 0 {
			return fmt.Errorf("constants[%d]: values is required and must be non-empty", i)
		}
		for r, row := range c.Values {
			if len(row) != len(c.Values[0]) {
				return fmt.Errorf("constants[%d]: row %d has %d values, want %d",
					i, r, len(row), len(c.Values[0]))
			}
		}
	}

	for i, step := range s.Build {
		if step.Bind == "" {
			return fmt.Errorf("build[%d]: bind is required", i)
		}
		if step.Atom == "" {
			return fmt.Errorf("build[%d]: atom is required", i)
		}
		if len(step.Args) == 0 {
			return fmt.Errorf("build[%d]: args list is required and must be non-empty", i)
		}
		switch step.ExpectError {
		case "", ErrKindDimension, ErrKindOperand, ErrKindUnknownAtom:
		default:
			return fmt.Errorf("build[%d]: unknown error kind %q", i, step.ExpectError)
		}
		if step.ExpectError != "" && i != len(s.Build)-1 {
			return fmt.Errorf("build[%d]: a failing step must be the last step", i)
		}
	}

	failing := s.Build[len(s.Build)-1].ExpectError != ""
	if failing && s.Expect != nil {
		return fmt.Errorf("expect must be omitted when the last step expects an error")
	}
	if !failing {
		if s.Expect == nil {
			return fmt.Errorf("expect is required unless the last step expects an error")
		}
		if _, err := parseSign(s.Expect.Sign); err != nil {
			return fmt.Errorf("expect: %w", err)
		}
		if _, err := parseCurvature(s.Expect.Curvature); err != nil {
			return fmt.Errorf("expect: %w", err)
		}
	}
	return nil
}

// parseSign maps a scenario sign name to its value. The empty string
// means unknown, matching an undeclared parameter sign.
func parseSign(name string) (attr.Sign, error) {
	switch name {
	case "", "unknown":
		return attr.SignUnknown, nil
	case "zero":
		return attr.Zero, nil
	case "positive":
		return attr.Positive, nil
	case "negative":
		return attr.Negative, nil
	default:
		return attr.SignUnknown, fmt.Errorf("unknown sign %q", name)
	}
}

// parseCurvature maps a scenario curvature name to its value.
func parseCurvature(name string) (attr.Curvature, error) {
	switch name {
	case "unknown":
		return attr.CurvatureUnknown, nil
	case "constant":
		return attr.Constant, nil
	case "affine":
		return attr.Affine, nil
	case "convex":
		return attr.Convex, nil
	case "concave":
		return attr.Concave, nil
	default:
		return attr.CurvatureUnknown, fmt.Errorf("unknown curvature %q", name)
	}
}
