package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapePredicates(t *testing.T) {
	tests := []struct {
		name     string
		sh       Shape
		scalar   bool
		vector   bool
		entries  int
		rendered string
	}{
		{"scalar", Scalar, true, true, 1, "(1, 1)"},
		{"column_vector", Vec(4), false, true, 4, "(4, 1)"},
		{"row_vector", New(1, 3), false, true, 3, "(1, 3)"},
		{"matrix", New(3, 5), false, false, 15, "(3, 5)"},
		{"empty", New(0, 5), false, false, 0, "(0, 5)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.scalar, tt.sh.IsScalar())
			assert.Equal(t, tt.vector, tt.sh.IsVector())
			assert.Equal(t, tt.entries, tt.sh.Entries())
			assert.Equal(t, tt.rendered, tt.sh.String())
		})
	}
}

func TestShapeTranspose(t *testing.T) {
	assert.Equal(t, New(5, 3), New(3, 5).Transpose())
	assert.Equal(t, Scalar, Scalar.Transpose())
}

func TestNewRejectsNegativeDimensions(t *testing.T) {
	assert.Panics(t, func() { New(-1, 2) })
}

func TestElementwise(t *testing.T) {
	tests := []struct {
		name     string
		children []Shape
		want     Shape
		wantErr  bool
	}{
		{"scalars", []Shape{Scalar, Scalar}, Scalar, false},
		{"matching", []Shape{New(3, 2), New(3, 2)}, New(3, 2), false},
		{"scalar_broadcast_left", []Shape{Scalar, New(3, 2)}, New(3, 2), false},
		{"scalar_broadcast_right", []Shape{New(3, 2), Scalar}, New(3, 2), false},
		{"variadic", []Shape{New(2, 2), Scalar, New(2, 2)}, New(2, 2), false},
		{"single", []Shape{New(4, 1)}, New(4, 1), false},
		{"mismatch", []Shape{New(3, 5), New(5, 4)}, Shape{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Elementwise("add", tt.children)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsDimensionError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestElementwiseErrorCarriesShapes(t *testing.T) {
	_, err := Elementwise("add", []Shape{New(3, 5), New(5, 4)})
	require.Error(t, err)

	var de *DimensionError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "add", de.Op)
	assert.Equal(t, []Shape{New(3, 5), New(5, 4)}, de.Shapes)
	assert.Contains(t, de.Error(), "(3, 5)")
	assert.Contains(t, de.Error(), "(5, 4)")
}

func TestMatMul(t *testing.T) {
	tests := []struct {
		name     string
		children []Shape
		want     Shape
		wantErr  bool
	}{
		{"scalars", []Shape{Scalar, Scalar}, Scalar, false},
		{"scalar_times_matrix", []Shape{Scalar, New(3, 2)}, New(3, 2), false},
		{"matrix_times_scalar", []Shape{New(3, 2), Scalar}, New(3, 2), false},
		{"inner_match", []Shape{New(3, 4), New(4, 2)}, New(3, 2), false},
		{"matrix_vector", []Shape{New(3, 4), Vec(4)}, Vec(3), false},
		{"inner_mismatch", []Shape{New(3, 4), New(3, 2)}, Shape{}, true},
		{"wrong_arity", []Shape{New(3, 4)}, Shape{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatMul("multiply", tt.children)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsDimensionError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRightScalar(t *testing.T) {
	got, err := RightScalar("divide", []Shape{New(3, 2), Scalar})
	require.NoError(t, err)
	assert.Equal(t, New(3, 2), got)

	_, err = RightScalar("divide", []Shape{New(3, 2), Vec(3)})
	require.Error(t, err)
	assert.True(t, IsDimensionError(err))
}

func TestReductions(t *testing.T) {
	got, err := Reduce("sum", []Shape{New(4, 3)})
	require.NoError(t, err)
	assert.Equal(t, Scalar, got)

	got, err = ReduceRows("sum_rows", []Shape{New(4, 3)})
	require.NoError(t, err)
	assert.Equal(t, New(1, 3), got)

	got, err = ReduceCols("sum_cols", []Shape{New(4, 3)})
	require.NoError(t, err)
	assert.Equal(t, New(4, 1), got)
}

func TestStacking(t *testing.T) {
	got, err := StackRows("vstack", []Shape{New(2, 3), New(4, 3)})
	require.NoError(t, err)
	assert.Equal(t, New(6, 3), got)

	_, err = StackRows("vstack", []Shape{New(2, 3), New(4, 2)})
	require.Error(t, err)
	assert.True(t, IsDimensionError(err))

	got, err = StackCols("hstack", []Shape{New(2, 3), New(2, 1)})
	require.NoError(t, err)
	assert.Equal(t, New(2, 4), got)

	_, err = StackCols("hstack", []Shape{New(2, 3), New(3, 1)})
	require.Error(t, err)
	assert.True(t, IsDimensionError(err))
}

func TestTransposeShape(t *testing.T) {
	got, err := TransposeShape("transpose", []Shape{New(2, 5)})
	require.NoError(t, err)
	assert.Equal(t, New(5, 2), got)
}
