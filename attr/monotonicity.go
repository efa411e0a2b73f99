package attr

import "fmt"

// Monotonicity describes how an atom responds to one of its
// arguments: non-decreasing, non-increasing, or neither. For
// sign-dependent atoms the value is a function of the argument's
// computed sign, so it is consulted only after sign inference has
// finished for that subtree.
//
// The zero value is Nonmonotone, the conservative default.
type Monotonicity int

const (
	Nonmonotone Monotonicity = iota
	Increasing
	Decreasing
)

// String implements fmt.Stringer.
func (m Monotonicity) String() string {
	switch m {
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	case Nonmonotone:
		return "nonmonotone"
	default:
		return fmt.Sprintf("Monotonicity(%d)", int(m))
	}
}
