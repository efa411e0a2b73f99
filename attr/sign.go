package attr

import "fmt"

// Sign classifies the value range of an expression entry.
//
// Positive means known nonnegative and Negative means known
// nonpositive; Zero means identically zero. This matches the
// convention of convex-analysis sign calculi, where sqrt and squares
// are Positive even though they can attain zero. Zero is below both
// Positive and Negative in the lattice (an identically zero entry is
// both nonnegative and nonpositive); SignUnknown is the top.
//
// The zero value is SignUnknown, the conservative default.
type Sign int

const (
	SignUnknown Sign = iota
	Zero
	Positive
	Negative
)

// String implements fmt.Stringer.
func (s Sign) String() string {
	switch s {
	case Zero:
		return "zero"
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case SignUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Sign(%d)", int(s))
	}
}

// Known reports whether the sign is anything other than SignUnknown.
func (s Sign) Known() bool {
	return s != SignUnknown
}

// SignOf derives the exact sign of a numeric value.
func SignOf(v float64) Sign {
	switch {
	case v > 0:
		return Positive
	case v < 0:
		return Negative
	default:
		return Zero
	}
}

// Negate flips Positive and Negative; Zero and SignUnknown are fixed
// points.
func (s Sign) Negate() Sign {
	switch s {
	case Positive:
		return Negative
	case Negative:
		return Positive
	default:
		return s
	}
}

// AddSigns combines two signs under addition. Zero is the identity;
// matching known signs are preserved; opposing or unknown operands
// lose all information.
func AddSigns(a, b Sign) Sign {
	switch {
	case a == Zero:
		return b
	case b == Zero:
		return a
	case a == b:
		return a
	default:
		return SignUnknown
	}
}

// MulSigns combines two signs under multiplication or division.
// Zero dominates; two known non-zero signs multiply by the usual
// rule; anything else is unknown.
func MulSigns(a, b Sign) Sign {
	switch {
	case a == Zero || b == Zero:
		return Zero
	case !a.Known() || !b.Known():
		return SignUnknown
	case a == b:
		return Positive
	default:
		return Negative
	}
}

// MaxSigns combines two signs under an entrywise maximum. A
// nonnegative operand forces a nonnegative result even when the other
// operand is unknown.
func MaxSigns(a, b Sign) Sign {
	switch {
	case a == Positive || b == Positive:
		return Positive
	case a == Zero || b == Zero:
		// max with an identically zero operand is at least zero.
		if a == Zero && b == Zero {
			return Zero
		}
		if a == Negative || b == Negative {
			return Zero
		}
		return Positive
	case a == Negative && b == Negative:
		return Negative
	default:
		return SignUnknown
	}
}

// MinSigns is the dual of MaxSigns.
func MinSigns(a, b Sign) Sign {
	switch {
	case a == Negative || b == Negative:
		return Negative
	case a == Zero || b == Zero:
		if a == Zero && b == Zero {
			return Zero
		}
		if a == Positive || b == Positive {
			return Zero
		}
		return Negative
	case a == Positive && b == Positive:
		return Positive
	default:
		return SignUnknown
	}
}

// JoinSigns is the lattice join, used when a heterogeneous grid must
// collapse to one conservative value. Zero is the bottom element;
// Positive and Negative are incomparable; SignUnknown is the top.
func JoinSigns(a, b Sign) Sign {
	switch {
	case a == b:
		return a
	case a == Zero:
		return b
	case b == Zero:
		return a
	default:
		return SignUnknown
	}
}
