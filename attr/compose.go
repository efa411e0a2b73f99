package attr

// Arg pairs one argument's certified curvature with the atom's
// monotonicity in that slot, as evaluated against the argument's
// computed sign. This is the input to the composition rule.
type Arg struct {
	Curvature    Curvature
	Monotonicity Monotonicity
}

// Compose applies the convex/concave composition theorem for one
// entry of an atom application.
//
// In order:
//  1. Every argument Constant: the result is Constant (a function of
//     constants is constant, whatever the atom's base curvature).
//  2. Affine base with every argument affine-or-constant: Affine.
//  3. Convex base where every slot is convex-compatible: Convex.
//  4. Concave base where every slot is concave-compatible: Concave.
//  5. Otherwise CurvatureUnknown.
//
// An Affine base is tried as both a convex and a concave vertex; if
// both succeed the entry is Affine. A Constant or Affine argument
// satisfies any slot regardless of monotonicity.
func Compose(base Curvature, args []Arg) Curvature {
	if allConstant(args) {
		return Constant
	}

	switch base {
	case Constant:
		// The atom ignores its arguments.
		return Constant
	case Affine:
		cvx := vertexHolds(Convex, args)
		ccv := vertexHolds(Concave, args)
		switch {
		case cvx && ccv:
			return Affine
		case cvx:
			return Convex
		case ccv:
			return Concave
		default:
			return CurvatureUnknown
		}
	case Convex:
		if vertexHolds(Convex, args) {
			return Convex
		}
		return CurvatureUnknown
	case Concave:
		if vertexHolds(Concave, args) {
			return Concave
		}
		return CurvatureUnknown
	default:
		return CurvatureUnknown
	}
}

func allConstant(args []Arg) bool {
	for _, a := range args {
		if !a.Curvature.IsConstant() {
			return false
		}
	}
	return true
}

// vertexHolds checks the per-slot condition of the composition
// theorem for a Convex or Concave target.
func vertexHolds(target Curvature, args []Arg) bool {
	opposed := Concave
	if target == Concave {
		opposed = Convex
	}
	for _, a := range args {
		switch {
		case a.Curvature.IsAffine():
			// Constant and Affine arguments satisfy any slot.
		case a.Curvature == target && a.Monotonicity == Increasing:
		case a.Curvature == opposed && a.Monotonicity == Decreasing:
		default:
			return false
		}
	}
	return true
}
