package expr

import (
	"errors"
	"fmt"
)

// Operand error codes.
const (
	// ErrCodeNonConstantProduct indicates multiplication of two
	// non-constant expressions, which no composition rule can
	// certify.
	ErrCodeNonConstantProduct = "NON_CONSTANT_PRODUCT"

	// ErrCodeBadDivisor indicates division by a non-scalar or
	// non-constant expression.
	ErrCodeBadDivisor = "BAD_DIVISOR"

	// ErrCodeArity indicates an argument count the atom does not
	// accept.
	ErrCodeArity = "ARITY"
)

// InvalidOperandError reports operands whose kinds an atom rejects:
// multiplication with two non-constant operands, division by a
// non-scalar or non-constant, or a wrong argument count. Like
// DimensionError it is a user construction error, detected eagerly at
// the build call that introduced it and never deferred.
type InvalidOperandError struct {
	// Code identifies the error category.
	Code string

	// Op is the atom name that rejected the operands.
	Op string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *InvalidOperandError) Error() string {
	return fmt.Sprintf("%s: invalid operands for %q: %s", e.Code, e.Op, e.Message)
}

// IsInvalidOperandError returns true if the error is an
// InvalidOperandError. Uses errors.As to handle wrapped errors.
func IsInvalidOperandError(err error) bool {
	var oe *InvalidOperandError
	return errors.As(err, &oe)
}

func newNonConstantProductError(op string) *InvalidOperandError {
	return &InvalidOperandError{
		Code:    ErrCodeNonConstantProduct,
		Op:      op,
		Message: "cannot multiply two non-constant expressions",
	}
}

func newBadDivisorError(op string) *InvalidOperandError {
	return &InvalidOperandError{
		Code:    ErrCodeBadDivisor,
		Op:      op,
		Message: "can only divide by a constant scalar",
	}
}

func newArityError(op string, got int) *InvalidOperandError {
	return &InvalidOperandError{
		Code:    ErrCodeArity,
		Op:      op,
		Message: fmt.Sprintf("atom does not accept %d arguments", got),
	}
}
