package shape

import (
	"errors"
	"fmt"
	"strings"
)

// DimensionError reports shapes that are incompatible for an
// operation. It is raised at node-construction time, never recovered
// internally, and always surfaced to the caller.
//
// The error carries the operator name and the conflicting shapes so
// the offending subexpression can be located without inspecting the
// whole tree.
type DimensionError struct {
	// Op is the atom or operator name that rejected the shapes.
	Op string

	// Shapes are the child shapes as given, in argument order.
	Shapes []Shape
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	parts := make([]string, len(e.Shapes))
	for i, s := range e.Shapes {
		parts[i] = s.String()
	}
	return fmt.Sprintf("incompatible dimensions for %q: %s", e.Op, strings.Join(parts, " and "))
}

// IsDimensionError returns true if the error is a DimensionError.
// Uses errors.As to handle wrapped errors.
func IsDimensionError(err error) bool {
	var de *DimensionError
	return errors.As(err, &de)
}

// NewDimensionError creates a DimensionError for op over the given
// shapes. The shapes slice is copied to keep the error immutable.
func NewDimensionError(op string, shapes ...Shape) *DimensionError {
	cp := make([]Shape, len(shapes))
	copy(cp, shapes)
	return &DimensionError{Op: op, Shapes: cp}
}
