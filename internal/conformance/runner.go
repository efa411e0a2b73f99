// Package conformance runs YAML-defined analysis scenarios against the
// expression engine and compares the annotated tree reports they
// produce with golden files. Scenarios exercise the public build path
// end to end: leaf construction, atom lookup, shape checking, and
// sign and curvature inference.
package conformance

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/convexgo/dcp/atom"
	"github.com/convexgo/dcp/expr"
	"github.com/convexgo/dcp/shape"
)

// Result captures a scenario execution.
type Result struct {
	// Root is the final built expression, nil when the last step
	// expected and produced an error.
	Root *expr.Node

	// Report is the annotated tree rendering of Root, or the error
	// line for failing scenarios. It is the golden-file payload.
	Report string
}

// Run executes a scenario against the built-in atom catalogue. It
// fails if a step errors unexpectedly, an expected error does not
// occur or has the wrong kind, or the root's analysis disagrees with
// the expect clause.
func Run(scenario *Scenario) (*Result, error) {
	env, err := buildLeaves(scenario)
	if err != nil {
		return nil, err
	}

	var root *expr.Node
	for i, step := range scenario.Build {
		args := make([]*expr.Node, len(step.Args))
		for j, name := range step.Args {
			n, ok := env[name]
			if !ok {
				return nil, fmt.Errorf("build[%d]: unknown argument %q", i, name)
			}
			args[j] = n
		}

		node, err := expr.Build(step.Atom, args...)
		if step.ExpectError != "" {
			if err == nil {
				return nil, fmt.Errorf("build[%d]: expected %s error, got none", i, step.ExpectError)
			}
			if kind := errorKind(err); kind != step.ExpectError {
				return nil, fmt.Errorf("build[%d]: expected %s error, got %s: %v",
					i, step.ExpectError, kind, err)
			}
			return &Result{Report: fmt.Sprintf("error kind=%s atom=%s\n", step.ExpectError, step.Atom)}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("build[%d] %s: %w", i, step.Atom, err)
		}
		env[step.Bind] = node
		root = node
	}

	if err := checkExpect(scenario.Expect, root); err != nil {
		return nil, err
	}
	return &Result{Root: root, Report: expr.Report(root)}, nil
}

// RunWithGolden executes a scenario and compares its report against
// testdata/golden/{scenario.Name}.golden. Regenerate golden files
// with:
//
//	go test ./internal/conformance -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, []byte(result.Report))
	return nil
}

// buildLeaves constructs the declared leaves into a name environment.
func buildLeaves(scenario *Scenario) (map[string]*expr.Node, error) {
	env := make(map[string]*expr.Node)

	bind := func(name string, n *expr.Node) error {
		if _, dup := env[name]; dup {
			return fmt.Errorf("duplicate leaf name %q", name)
		}
		env[name] = n
		return nil
	}

	for _, v := range scenario.Variables {
		if err := bind(v.Name, expr.NewVariable(v.Name, leafShape(v))); err != nil {
			return nil, err
		}
	}
	for _, p := range scenario.Parameters {
		sign, err := parseSign(p.Sign)
		if err != nil {
			return nil, err
		}
		if err := bind(p.Name, expr.NewParameter(p.Name, leafShape(p), sign)); err != nil {
			return nil, err
		}
	}
	for _, c := range scenario.Constants {
		rows, cols := len(c.Values), len(c.Values[0])
		flat := make([]float64, 0, rows*cols)
		for _, row := range c.Values {
			flat = append(flat, row...)
		}
		if err := bind(c.Name, expr.NewConstant(mat.NewDense(rows, cols, flat))); err != nil {
			return nil, err
		}
	}
	return env, nil
}

// leafShape applies the scalar default to a leaf declaration.
func leafShape(d LeafDecl) shape.Shape {
	rows, cols := d.Rows, d.Cols
	if rows == 0 {
		rows = 1
	}
	if cols == 0 {
		cols = 1
	}
	return shape.New(rows, cols)
}

// checkExpect verifies the root's collapsed analysis against the
// expect clause.
func checkExpect(expect *ExpectClause, root *expr.Node) error {
	wantSign, err := parseSign(expect.Sign)
	if err != nil {
		return err
	}
	wantCurv, err := parseCurvature(expect.Curvature)
	if err != nil {
		return err
	}

	if got := root.SignValue(); got != wantSign {
		return fmt.Errorf("root sign: got %s, want %s", got, wantSign)
	}
	if got := root.CurvatureValue(); got != wantCurv {
		return fmt.Errorf("root curvature: got %s, want %s", got, wantCurv)
	}
	if expect.DCP != nil && root.IsDCP() != *expect.DCP {
		return fmt.Errorf("root IsDCP: got %t, want %t", root.IsDCP(), *expect.DCP)
	}
	return nil
}

// errorKind classifies a build error into a scenario error kind.
func errorKind(err error) string {
	switch {
	case shape.IsDimensionError(err):
		return ErrKindDimension
	case expr.IsInvalidOperandError(err):
		return ErrKindOperand
	case atom.IsUnknownAtomError(err):
		return ErrKindUnknownAtom
	default:
		return "unclassified"
	}
}
