package attr

import "fmt"

// Curvature classifies the shape of an expression entry as a function
// of the problem variables.
//
// The subtype chain Constant => Affine => (Convex and Concave) always
// holds: every query that accepts a convex entry also accepts an
// affine or constant one. Convex and Concave are incomparable; an
// entry certified as both is reported Affine, never as a joint tag.
//
// The zero value is CurvatureUnknown, the conservative default.
type Curvature int

const (
	CurvatureUnknown Curvature = iota
	Constant
	Affine
	Convex
	Concave
)

// String implements fmt.Stringer.
func (c Curvature) String() string {
	switch c {
	case Constant:
		return "constant"
	case Affine:
		return "affine"
	case Convex:
		return "convex"
	case Concave:
		return "concave"
	case CurvatureUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Curvature(%d)", int(c))
	}
}

// IsConstant reports whether the curvature is Constant.
func (c Curvature) IsConstant() bool {
	return c == Constant
}

// IsAffine reports whether the curvature is Affine or more specific.
func (c Curvature) IsAffine() bool {
	return c == Constant || c == Affine
}

// IsConvex reports whether the curvature is Convex or more specific.
func (c Curvature) IsConvex() bool {
	return c == Convex || c.IsAffine()
}

// IsConcave reports whether the curvature is Concave or more specific.
func (c Curvature) IsConcave() bool {
	return c == Concave || c.IsAffine()
}

// Known reports whether any certification was possible.
func (c Curvature) Known() bool {
	return c != CurvatureUnknown
}

// JoinCurvatures is the lattice join, used when a heterogeneous grid
// must collapse to one conservative value. Constant is the bottom,
// then Affine, then the incomparable pair Convex/Concave, then
// CurvatureUnknown at the top.
func JoinCurvatures(a, b Curvature) Curvature {
	switch {
	case a == b:
		return a
	case a == Constant:
		return b
	case b == Constant:
		return a
	case a == Affine:
		return b
	case b == Affine:
		return a
	default:
		return CurvatureUnknown
	}
}
