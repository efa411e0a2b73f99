package shape

import "fmt"

// Shape is the (rows, cols) dimension pair of an expression.
// Scalars are (1, 1). Shapes are value types and immutable once
// computed.
type Shape struct {
	Rows int
	Cols int
}

// Scalar is the shape of a scalar expression.
var Scalar = Shape{Rows: 1, Cols: 1}

// New creates a Shape. Rows and cols must be non-negative.
func New(rows, cols int) Shape {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("shape: negative dimension (%d, %d)", rows, cols))
	}
	return Shape{Rows: rows, Cols: cols}
}

// Vec creates an (n, 1) column-vector shape.
func Vec(n int) Shape {
	return New(n, 1)
}

// IsScalar reports whether the shape is (1, 1).
func (s Shape) IsScalar() bool {
	return s.Rows == 1 && s.Cols == 1
}

// IsVector reports whether the shape is a row or column vector.
// Scalars count as vectors.
func (s Shape) IsVector() bool {
	return s.Rows == 1 || s.Cols == 1
}

// Entries returns the number of entries (rows * cols).
func (s Shape) Entries() int {
	return s.Rows * s.Cols
}

// Transpose returns the shape with rows and cols swapped.
func (s Shape) Transpose() Shape {
	return Shape{Rows: s.Cols, Cols: s.Rows}
}

// String renders the shape as "(rows, cols)".
func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Rows, s.Cols)
}
