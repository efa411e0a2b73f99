package shape

// Rule computes the result shape of an operator from its children's
// shapes, or fails with a DimensionError. Rules are pure: the same
// inputs always produce the same result.
//
// The op name is threaded through only for error reporting.
type Rule func(op string, children []Shape) (Shape, error)

// Elementwise handles entrywise operators (add, subtract, max, ...).
// All operands must share one shape, except that scalar operands
// broadcast against the common shape. The result is the common
// non-scalar shape, or scalar when every operand is scalar.
func Elementwise(op string, children []Shape) (Shape, error) {
	out := Scalar
	for _, c := range children {
		if c.IsScalar() {
			continue
		}
		if out.IsScalar() {
			out = c
			continue
		}
		if c != out {
			return Shape{}, NewDimensionError(op, children...)
		}
	}
	return out, nil
}

// MatMul handles multiplication. Two scalars multiply to a scalar, a
// scalar operand broadcasts over the other operand, and otherwise the
// standard matrix rule applies: (m, k) x (k, n) yields (m, n).
func MatMul(op string, children []Shape) (Shape, error) {
	if len(children) != 2 {
		return Shape{}, NewDimensionError(op, children...)
	}
	lhs, rhs := children[0], children[1]
	switch {
	case lhs.IsScalar():
		return rhs, nil
	case rhs.IsScalar():
		return lhs, nil
	case lhs.Cols == rhs.Rows:
		return Shape{Rows: lhs.Rows, Cols: rhs.Cols}, nil
	default:
		return Shape{}, NewDimensionError(op, lhs, rhs)
	}
}

// RightScalar handles division: the right operand must be scalar and
// the result takes the left operand's shape. Constant-ness of the
// divisor is an operand check, not a shape check, and is enforced at
// build time.
func RightScalar(op string, children []Shape) (Shape, error) {
	if len(children) != 2 || !children[1].IsScalar() {
		return Shape{}, NewDimensionError(op, children...)
	}
	return children[0], nil
}

// Reduce collapses the single operand to a scalar (sum, norms).
func Reduce(op string, children []Shape) (Shape, error) {
	if len(children) != 1 {
		return Shape{}, NewDimensionError(op, children...)
	}
	return Scalar, nil
}

// ReduceRows collapses the row axis: (m, n) yields (1, n).
func ReduceRows(op string, children []Shape) (Shape, error) {
	if len(children) != 1 {
		return Shape{}, NewDimensionError(op, children...)
	}
	return Shape{Rows: 1, Cols: children[0].Cols}, nil
}

// ReduceCols collapses the column axis: (m, n) yields (m, 1).
func ReduceCols(op string, children []Shape) (Shape, error) {
	if len(children) != 1 {
		return Shape{}, NewDimensionError(op, children...)
	}
	return Shape{Rows: children[0].Rows, Cols: 1}, nil
}

// StackRows handles vertical stacking: all operands must agree on
// cols; the result's rows are the sum of the operands' rows.
func StackRows(op string, children []Shape) (Shape, error) {
	if len(children) == 0 {
		return Shape{}, NewDimensionError(op)
	}
	out := Shape{Rows: 0, Cols: children[0].Cols}
	for _, c := range children {
		if c.Cols != out.Cols {
			return Shape{}, NewDimensionError(op, children...)
		}
		out.Rows += c.Rows
	}
	return out, nil
}

// StackCols handles horizontal stacking: all operands must agree on
// rows; the result's cols are the sum of the operands' cols.
func StackCols(op string, children []Shape) (Shape, error) {
	if len(children) == 0 {
		return Shape{}, NewDimensionError(op)
	}
	out := Shape{Rows: children[0].Rows, Cols: 0}
	for _, c := range children {
		if c.Rows != out.Rows {
			return Shape{}, NewDimensionError(op, children...)
		}
		out.Cols += c.Cols
	}
	return out, nil
}

// TransposeShape swaps the single operand's axes.
func TransposeShape(op string, children []Shape) (Shape, error) {
	if len(children) != 1 {
		return Shape{}, NewDimensionError(op, children...)
	}
	return children[0].Transpose(), nil
}
