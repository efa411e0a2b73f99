package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSubtypeChain checks that constant implies affine and affine
// implies both convex and concave.
func TestSubtypeChain(t *testing.T) {
	assert.True(t, Constant.IsConstant())
	assert.True(t, Constant.IsAffine())
	assert.True(t, Constant.IsConvex())
	assert.True(t, Constant.IsConcave())

	assert.False(t, Affine.IsConstant())
	assert.True(t, Affine.IsAffine())
	assert.True(t, Affine.IsConvex())
	assert.True(t, Affine.IsConcave())

	assert.True(t, Convex.IsConvex())
	assert.False(t, Convex.IsConcave())
	assert.False(t, Convex.IsAffine())

	assert.True(t, Concave.IsConcave())
	assert.False(t, Concave.IsConvex())

	assert.False(t, CurvatureUnknown.IsConvex())
	assert.False(t, CurvatureUnknown.IsConcave())
	assert.False(t, CurvatureUnknown.Known())
}

func TestJoinCurvatures(t *testing.T) {
	tests := []struct {
		name string
		a, b Curvature
		want Curvature
	}{
		{"equal", Convex, Convex, Convex},
		{"constant_is_bottom", Constant, Concave, Concave},
		{"affine_below_convex", Affine, Convex, Convex},
		{"affine_below_concave", Affine, Concave, Concave},
		{"constant_affine", Constant, Affine, Affine},
		{"convex_concave_incomparable", Convex, Concave, CurvatureUnknown},
		{"unknown_absorbs", Convex, CurvatureUnknown, CurvatureUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinCurvatures(tt.a, tt.b))
			assert.Equal(t, tt.want, JoinCurvatures(tt.b, tt.a))
		})
	}
}
