package attr

import (
	"fmt"

	"github.com/convexgo/dcp/shape"
)

// Field holds a per-entry analysis result for a shaped expression:
// either a single value uniform across all entries (the common,
// cheap case) or an explicit row-major grid matching the shape.
// Consumers must branch on IsUniform rather than assume uniformity.
//
// Fields are immutable. A grid whose entries all agree is collapsed
// to the uniform representation at construction time, so two fields
// describing the same result compare equal.
type Field[T comparable] struct {
	sh      shape.Shape
	uniform bool
	value   T
	cells   []T
}

// Uniform creates a field with one value across every entry.
func Uniform[T comparable](sh shape.Shape, v T) Field[T] {
	return Field[T]{sh: sh, uniform: true, value: v}
}

// FromCells creates a field from a row-major grid. The grid length
// must equal sh.Entries(). If all entries agree the field collapses
// to the uniform representation.
func FromCells[T comparable](sh shape.Shape, cells []T) Field[T] {
	if len(cells) != sh.Entries() {
		panic(fmt.Sprintf("attr: grid has %d cells for shape %s", len(cells), sh))
	}
	if len(cells) == 0 {
		var zero T
		return Uniform(sh, zero)
	}
	first := cells[0]
	allSame := true
	for _, c := range cells[1:] {
		if c != first {
			allSame = false
			break
		}
	}
	if allSame {
		return Uniform(sh, first)
	}
	cp := make([]T, len(cells))
	copy(cp, cells)
	return Field[T]{sh: sh, cells: cp}
}

// Shape returns the field's shape.
func (f Field[T]) Shape() shape.Shape {
	return f.sh
}

// IsUniform reports whether one value covers every entry.
func (f Field[T]) IsUniform() bool {
	return f.uniform
}

// Value returns the uniform value and true, or the zero value and
// false for grid fields. Grid consumers use At for per-entry
// precision or Collapse for a conservative summary.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.uniform
}

// At returns the entry at (row, col). Uniform fields answer the same
// value for every position.
func (f Field[T]) At(row, col int) T {
	if f.uniform {
		return f.value
	}
	return f.cells[row*f.sh.Cols+col]
}

// Cells materializes the row-major grid. Uniform fields expand; the
// returned slice is a copy.
func (f Field[T]) Cells() []T {
	out := make([]T, f.sh.Entries())
	if f.uniform {
		for i := range out {
			out[i] = f.value
		}
		return out
	}
	copy(out, f.cells)
	return out
}

// Collapse folds every entry through join into one conservative
// value.
func (f Field[T]) Collapse(join func(T, T) T) T {
	if f.uniform {
		return f.value
	}
	out := f.cells[0]
	for _, c := range f.cells[1:] {
		out = join(out, c)
	}
	return out
}

// Transpose returns the field over the transposed shape.
func (f Field[T]) Transpose() Field[T] {
	ts := f.sh.Transpose()
	if f.uniform {
		return Uniform(ts, f.value)
	}
	cells := make([]T, len(f.cells))
	for r := 0; r < f.sh.Rows; r++ {
		for c := 0; c < f.sh.Cols; c++ {
			cells[c*ts.Cols+r] = f.cells[r*f.sh.Cols+c]
		}
	}
	return FromCells(ts, cells)
}

// Reshape carries the entries onto a new shape with the same entry
// count, preserving row-major order.
func (f Field[T]) Reshape(sh shape.Shape) Field[T] {
	if sh.Entries() != f.sh.Entries() {
		panic(fmt.Sprintf("attr: reshape %s to %s", f.sh, sh))
	}
	if f.uniform {
		return Uniform(sh, f.value)
	}
	return FromCells(sh, f.cells)
}

// Zip evaluates fn entrywise across the operands over the result
// shape sh. Operands whose shape is scalar broadcast; every other
// operand must match sh. The args slice passed to fn is reused
// between calls and must not be retained.
func Zip[T comparable](sh shape.Shape, fields []Field[T], fn func([]T) T) Field[T] {
	uniform := true
	for _, f := range fields {
		if !f.IsUniform() {
			uniform = false
			break
		}
	}
	args := make([]T, len(fields))
	if uniform {
		for i, f := range fields {
			args[i] = f.value
		}
		return Uniform(sh, fn(args))
	}
	cells := make([]T, sh.Entries())
	for r := 0; r < sh.Rows; r++ {
		for c := 0; c < sh.Cols; c++ {
			for i, f := range fields {
				if f.sh.IsScalar() {
					args[i] = f.At(0, 0)
				} else {
					args[i] = f.At(r, c)
				}
			}
			cells[r*sh.Cols+c] = fn(args)
		}
	}
	return FromCells(sh, cells)
}

// ConcatRows stacks fields vertically over the already-validated
// result shape.
func ConcatRows[T comparable](sh shape.Shape, fields []Field[T]) Field[T] {
	cells := make([]T, 0, sh.Entries())
	for _, f := range fields {
		cells = append(cells, f.Cells()...)
	}
	return FromCells(sh, cells)
}

// ConcatCols stacks fields horizontally over the already-validated
// result shape.
func ConcatCols[T comparable](sh shape.Shape, fields []Field[T]) Field[T] {
	cells := make([]T, sh.Entries())
	for r := 0; r < sh.Rows; r++ {
		col := 0
		for _, f := range fields {
			for c := 0; c < f.sh.Cols; c++ {
				cells[r*sh.Cols+col] = f.At(r, c)
				col++
			}
		}
	}
	return FromCells(sh, cells)
}
