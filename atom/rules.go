package atom

import (
	"github.com/convexgo/dcp/attr"
	"github.com/convexgo/dcp/shape"
)

// Named monotonicity rules available to catalogue entries.
const (
	MonoIncreasing  = "increasing"
	MonoDecreasing  = "decreasing"
	MonoNonmonotone = "nonmonotone"

	// MonoExtremal is the sign-dependent rule of even symmetric
	// atoms (square, abs, norms): increasing on a nonnegative
	// argument, decreasing on a nonpositive one, nonmonotone when
	// the sign is unknown.
	MonoExtremal = "extremal"

	// MonoCoefficient is MonoExtremal fed with the partner constant
	// operand's sign instead of the slot's own; it marks the
	// descriptor CoefficientSigned.
	MonoCoefficient = "coefficient"
)

// Named sign-combination rules available to catalogue entries.
const (
	SignSum             = "sum"
	SignDifference      = "difference"
	SignNegate          = "negate"
	SignProduct         = "product"
	SignNonnegative     = "nonnegative"
	SignNonnegativePart = "nonnegative_part"
	SignPositive        = "positive"
	SignMaximum         = "maximum"
	SignMinimum         = "minimum"
	SignPassthrough     = "passthrough"
	SignOpaque          = "opaque"
)

// Named shape rules available to catalogue entries.
const (
	ShapeNameElementwise = "elementwise"
	ShapeNameMatMul      = "matmul"
	ShapeNameRightScalar = "right_scalar"
	ShapeNameReduce      = "reduce"
	ShapeNameReduceRows  = "reduce_rows"
	ShapeNameReduceCols  = "reduce_cols"
	ShapeNameStackRows   = "stack_rows"
	ShapeNameStackCols   = "stack_cols"
	ShapeNameTranspose   = "transpose"
)

// extremal is the shared sign-dependent monotonicity: increasing
// where the argument is known nonnegative, decreasing where known
// nonpositive, otherwise nonmonotone.
func extremal(s attr.Sign) attr.Monotonicity {
	switch s {
	case attr.Positive, attr.Zero:
		return attr.Increasing
	case attr.Negative:
		return attr.Decreasing
	default:
		return attr.Nonmonotone
	}
}

// resolveMonotonicity maps per-argument rule names to a
// MonotonicityRule. A single name applies to every argument; the
// catalogue may instead list one name per argument (subtract uses
// [increasing, decreasing]). The second return value reports whether
// the rule is coefficient-signed.
func resolveMonotonicity(names []string) (MonotonicityRule, bool, bool) {
	coefficient := false
	fns := make([]func(attr.Sign) attr.Monotonicity, len(names))
	for i, name := range names {
		switch name {
		case MonoIncreasing:
			fns[i] = func(attr.Sign) attr.Monotonicity { return attr.Increasing }
		case MonoDecreasing:
			fns[i] = func(attr.Sign) attr.Monotonicity { return attr.Decreasing }
		case MonoNonmonotone:
			fns[i] = func(attr.Sign) attr.Monotonicity { return attr.Nonmonotone }
		case MonoExtremal:
			fns[i] = extremal
		case MonoCoefficient:
			coefficient = true
			fns[i] = extremal
		default:
			return nil, false, false
		}
	}
	if len(fns) == 1 {
		fn := fns[0]
		return func(_ int, s attr.Sign) attr.Monotonicity { return fn(s) }, coefficient, true
	}
	return func(i int, s attr.Sign) attr.Monotonicity {
		if i < 0 || i >= len(fns) {
			return attr.Nonmonotone
		}
		return fns[i](s)
	}, coefficient, true
}

// resolveSign maps a rule name to a SignRule.
func resolveSign(name string) (SignRule, bool) {
	switch name {
	case SignSum:
		return foldSigns(attr.AddSigns), true
	case SignDifference:
		return func(args []attr.Sign) attr.Sign {
			if len(args) != 2 {
				return attr.SignUnknown
			}
			return attr.AddSigns(args[0], args[1].Negate())
		}, true
	case SignNegate:
		return func(args []attr.Sign) attr.Sign {
			if len(args) != 1 {
				return attr.SignUnknown
			}
			return args[0].Negate()
		}, true
	case SignProduct:
		return foldSigns(attr.MulSigns), true
	case SignNonnegative:
		// Zero exactly when every argument entry is zero, otherwise
		// nonnegative (square, sqrt, abs, norms).
		return func(args []attr.Sign) attr.Sign {
			for _, a := range args {
				if a != attr.Zero {
					return attr.Positive
				}
			}
			return attr.Zero
		}, true
	case SignNonnegativePart:
		// max(x, 0): zero where the argument is known nonpositive.
		return func(args []attr.Sign) attr.Sign {
			if len(args) == 1 && (args[0] == attr.Zero || args[0] == attr.Negative) {
				return attr.Zero
			}
			return attr.Positive
		}, true
	case SignPositive:
		return func([]attr.Sign) attr.Sign { return attr.Positive }, true
	case SignMaximum:
		return foldSigns(attr.MaxSigns), true
	case SignMinimum:
		return foldSigns(attr.MinSigns), true
	case SignPassthrough:
		return foldSigns(attr.JoinSigns), true
	case SignOpaque:
		return func([]attr.Sign) attr.Sign { return attr.SignUnknown }, true
	default:
		return nil, false
	}
}

func foldSigns(combine func(a, b attr.Sign) attr.Sign) SignRule {
	return func(args []attr.Sign) attr.Sign {
		if len(args) == 0 {
			return attr.SignUnknown
		}
		out := args[0]
		for _, a := range args[1:] {
			out = combine(out, a)
		}
		return out
	}
}

// resolveShape maps a rule name to its kind and shape rule.
func resolveShape(name string) (ShapeKind, shape.Rule, bool) {
	switch name {
	case ShapeNameElementwise:
		return ShapeElementwise, shape.Elementwise, true
	case ShapeNameMatMul:
		return ShapeMatMul, shape.MatMul, true
	case ShapeNameRightScalar:
		return ShapeRightScalar, shape.RightScalar, true
	case ShapeNameReduce:
		return ShapeReduce, shape.Reduce, true
	case ShapeNameReduceRows:
		return ShapeReduceRows, shape.ReduceRows, true
	case ShapeNameReduceCols:
		return ShapeReduceCols, shape.ReduceCols, true
	case ShapeNameStackRows:
		return ShapeStackRows, shape.StackRows, true
	case ShapeNameStackCols:
		return ShapeStackCols, shape.StackCols, true
	case ShapeNameTranspose:
		return ShapeTranspose, shape.TransposeShape, true
	default:
		return 0, nil, false
	}
}

// resolveCurvature maps a catalogue curvature name to its value.
// CurvatureUnknown is never a legal base.
func resolveCurvature(name string) (attr.Curvature, bool) {
	switch name {
	case "constant":
		return attr.Constant, true
	case "affine":
		return attr.Affine, true
	case "convex":
		return attr.Convex, true
	case "concave":
		return attr.Concave, true
	default:
		return attr.CurvatureUnknown, false
	}
}

// resolveOperands maps a catalogue operand-constraint name.
func resolveOperands(name string) (OperandConstraint, bool) {
	switch name {
	case "":
		return AnyOperands, true
	case "one_constant":
		return OneConstantOperand, true
	case "constant_divisor":
		return ConstantScalarDivisor, true
	default:
		return AnyOperands, false
	}
}
