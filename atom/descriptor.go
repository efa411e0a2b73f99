package atom

import (
	"github.com/convexgo/dcp/attr"
	"github.com/convexgo/dcp/shape"
)

// MonotonicityRule answers how the atom responds to argument argIndex
// given that argument's computed sign. It must be consulted with the
// already-inferred sign of the actual argument node, never a declared
// default, because sign-dependent atoms (square, abs, norms) change
// monotonicity with the caller's argument.
type MonotonicityRule func(argIndex int, argSign attr.Sign) attr.Monotonicity

// SignRule combines argument signs into the atom's result sign. For
// elementwise atoms the rule is applied per entry; for reductions it
// receives every entry of the reduced operand.
type SignRule func(args []attr.Sign) attr.Sign

// OperandConstraint restricts which operand kinds an atom accepts
// beyond shape compatibility. Violations are user construction errors
// reported at build time.
type OperandConstraint int

const (
	// AnyOperands places no constraint.
	AnyOperands OperandConstraint = iota

	// OneConstantOperand requires at least one Constant-curvature
	// operand (multiplication).
	OneConstantOperand

	// ConstantScalarDivisor requires the second operand to be a
	// scalar with Constant curvature (division).
	ConstantScalarDivisor
)

// ShapeKind names the structural evaluation mode of an atom. The
// inference engines use it to decide how per-entry grids flow through
// the node: entrywise with scalar broadcast, concatenated, transposed,
// or folded.
type ShapeKind int

const (
	ShapeElementwise ShapeKind = iota
	ShapeMatMul
	ShapeRightScalar
	ShapeReduce
	ShapeReduceRows
	ShapeReduceCols
	ShapeStackRows
	ShapeStackCols
	ShapeTranspose
)

// Descriptor is one registry entry: the complete declarative
// description of an atom's analysis behavior.
//
// Descriptors are immutable after registration and shared read-only
// by every node using the atom. No node owns or mutates one.
type Descriptor struct {
	// Name identifies the atom in the registry and in errors.
	Name string

	// Arity is the exact argument count, or -1 for variadic atoms.
	Arity int

	// MinArity is the minimum argument count for variadic atoms.
	MinArity int

	// BaseCurvature is the atom's own curvature: Constant, Affine,
	// Convex, or Concave. Never CurvatureUnknown for a well-formed
	// descriptor.
	BaseCurvature attr.Curvature

	// Monotonicity is the per-argument, sign-dependent monotonicity
	// rule.
	Monotonicity MonotonicityRule

	// CoefficientSigned marks atoms (multiply, divide) whose
	// monotonicity in a slot follows the sign of the partner
	// constant operand rather than the slot's own sign. A negative
	// constant multiplier is decreasing in the other argument, which
	// is how the curvature flip falls out of the ordinary
	// composition rule rather than a special case.
	CoefficientSigned bool

	// Sign is the sign-combination rule.
	Sign SignRule

	// Kind selects the structural grid-evaluation mode.
	Kind ShapeKind

	// Shape validates and computes the result shape.
	Shape shape.Rule

	// Operands is the operand-kind constraint checked at build time.
	Operands OperandConstraint
}

// AcceptsArity reports whether the descriptor admits n arguments.
func (d *Descriptor) AcceptsArity(n int) bool {
	if d.Arity >= 0 {
		return n == d.Arity
	}
	return n >= d.MinArity
}
