package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/convexgo/dcp/attr"
	"github.com/convexgo/dcp/shape"
)

// mustBuild unwraps a constructor result inside table tests.
func mustBuild(t *testing.T) func(n *Node, err error) *Node {
	t.Helper()
	return func(n *Node, err error) *Node {
		t.Helper()
		require.NoError(t, err)
		return n
	}
}

func TestSquareOfVariableIsConvex(t *testing.T) {
	x := NewScalarVariable("x")
	sq := mustBuild(t)(Square(x))

	// The argument is affine, so the composition certifies convexity
	// even though the argument's sign is unknown.
	assert.Equal(t, attr.Convex, sq.CurvatureValue())
	assert.Equal(t, attr.Positive, sq.SignValue())
	assert.True(t, sq.IsDCP())
}

func TestSqrtOfConvexIsUnknown(t *testing.T) {
	x := NewScalarVariable("x")
	inner := mustBuild(t)(Add(NewScalarConstant(1), mustBuild(t)(Square(x))))

	require.Equal(t, attr.Convex, inner.CurvatureValue())
	require.Equal(t, attr.Positive, inner.SignValue())

	// sqrt is concave increasing; a convex argument defeats the
	// composition, so the certificate is withheld even though the
	// function is mathematically concave here.
	root := mustBuild(t)(Sqrt(inner))
	assert.Equal(t, attr.CurvatureUnknown, root.CurvatureValue())
	assert.False(t, root.IsDCP())
}

func TestNormOfStackedConstantAndVariable(t *testing.T) {
	x := NewScalarVariable("x")
	stacked := mustBuild(t)(VStack(NewScalarConstant(1), x))

	require.Equal(t, shape.New(2, 1), stacked.Shape())
	curv := stacked.Curvature()
	assert.Equal(t, attr.Constant, curv.At(0, 0))
	assert.Equal(t, attr.Affine, curv.At(1, 0))

	// The constant entry composes to Constant under norm2's rule and
	// joins away, leaving the affine entry's Convex certificate.
	norm := mustBuild(t)(Norm2(stacked))
	assert.Equal(t, attr.Convex, norm.CurvatureValue())
	assert.Equal(t, attr.Positive, norm.SignValue())
}

func TestNegativeCoefficientFlipsCurvature(t *testing.T) {
	x := NewScalarVariable("x")
	sq := mustBuild(t)(Square(x))

	flipped := mustBuild(t)(Mul(NewScalarConstant(-2), sq))
	assert.Equal(t, attr.Concave, flipped.CurvatureValue())
	assert.Equal(t, attr.Negative, flipped.SignValue())

	kept := mustBuild(t)(Mul(NewScalarConstant(2), sq))
	assert.Equal(t, attr.Convex, kept.CurvatureValue())
	assert.Equal(t, attr.Positive, kept.SignValue())
}

func TestUnknownSignParameterCoefficient(t *testing.T) {
	p := NewScalarParameter("p", attr.SignUnknown)
	sq := mustBuild(t)(Square(NewScalarVariable("x")))

	// A coefficient of unknown sign is nonmonotone in the convex
	// operand, so no certificate survives.
	prod := mustBuild(t)(Mul(p, sq))
	assert.Equal(t, attr.CurvatureUnknown, prod.CurvatureValue())
}

func TestNegativeParameterCoefficient(t *testing.T) {
	p := NewScalarParameter("p", attr.Negative)
	ex := mustBuild(t)(Exp(NewScalarVariable("x")))

	prod := mustBuild(t)(Mul(p, ex))
	assert.Equal(t, attr.Concave, prod.CurvatureValue())
	assert.Equal(t, attr.Negative, prod.SignValue())
}

func TestDivisionByNegativeConstantFlips(t *testing.T) {
	sq := mustBuild(t)(Square(NewScalarVariable("x")))

	q := mustBuild(t)(Div(sq, NewScalarConstant(-2)))
	assert.Equal(t, attr.Concave, q.CurvatureValue())
	assert.Equal(t, attr.Negative, q.SignValue())
}

func TestNegateFlipsCurvatureAndSign(t *testing.T) {
	sq := mustBuild(t)(Square(NewScalarVariable("x")))
	neg := mustBuild(t)(Neg(sq))

	assert.Equal(t, attr.Concave, neg.CurvatureValue())
	assert.Equal(t, attr.Negative, neg.SignValue())
}

func TestAffineArithmeticStaysAffine(t *testing.T) {
	x := NewScalarVariable("x")
	y := NewScalarVariable("y")

	sum := mustBuild(t)(Add(x, y, NewScalarConstant(3)))
	assert.Equal(t, attr.Affine, sum.CurvatureValue())

	diff := mustBuild(t)(Sub(sum, y))
	assert.Equal(t, attr.Affine, diff.CurvatureValue())
	assert.True(t, diff.IsConvex())
	assert.True(t, diff.IsConcave())
}

func TestSubtractConvexFromAffine(t *testing.T) {
	x := NewScalarVariable("x")
	sq := mustBuild(t)(Square(x))

	// Affine minus convex is concave via the decreasing second slot.
	d := mustBuild(t)(Sub(x, sq))
	assert.Equal(t, attr.Concave, d.CurvatureValue())

	// Convex minus convex certifies nothing.
	u := mustBuild(t)(Sub(sq, sq))
	assert.Equal(t, attr.CurvatureUnknown, u.CurvatureValue())
}

func TestExpOfConvexIsConvex(t *testing.T) {
	sq := mustBuild(t)(Square(NewScalarVariable("x")))
	e := mustBuild(t)(Exp(sq))

	assert.Equal(t, attr.Convex, e.CurvatureValue())
	assert.Equal(t, attr.Positive, e.SignValue())
}

func TestLogOfConcaveIsConcave(t *testing.T) {
	x := NewScalarVariable("x")
	s := mustBuild(t)(Sqrt(x))
	require.Equal(t, attr.Concave, s.CurvatureValue())

	l := mustBuild(t)(Log(s))
	assert.Equal(t, attr.Concave, l.CurvatureValue())
	assert.Equal(t, attr.SignUnknown, l.SignValue())
}

func TestAbsOfAffineIsConvex(t *testing.T) {
	x := NewScalarVariable("x")
	a := mustBuild(t)(Abs(x))

	assert.Equal(t, attr.Convex, a.CurvatureValue())
	assert.Equal(t, attr.Positive, a.SignValue())

	// abs is nonmonotone on an unknown-sign argument, so a concave
	// argument of unknown sign certifies nothing.
	inner := mustBuild(t)(Sub(NewScalarVariable("y"), mustBuild(t)(Square(x))))
	require.Equal(t, attr.Concave, inner.CurvatureValue())
	u := mustBuild(t)(Abs(inner))
	assert.Equal(t, attr.CurvatureUnknown, u.CurvatureValue())
}

func TestAbsOfNonpositiveConvexUsesDecreasingBranch(t *testing.T) {
	sq := mustBuild(t)(Square(NewScalarVariable("x")))
	negSq := mustBuild(t)(Neg(sq))
	require.Equal(t, attr.Concave, negSq.CurvatureValue())
	require.Equal(t, attr.Negative, negSq.SignValue())

	// abs is decreasing on a nonpositive argument; a concave argument
	// there composes to convex.
	a := mustBuild(t)(Abs(negSq))
	assert.Equal(t, attr.Convex, a.CurvatureValue())
	assert.Equal(t, attr.Positive, a.SignValue())
}

func TestMaxAndMin(t *testing.T) {
	x := NewScalarVariable("x")
	y := NewScalarVariable("y")

	mx := mustBuild(t)(Max(x, y, NewScalarConstant(0)))
	assert.Equal(t, attr.Convex, mx.CurvatureValue())
	assert.Equal(t, attr.Positive, mx.SignValue(),
		"a zero operand bounds the maximum below")

	mn := mustBuild(t)(Min(x, y, NewScalarConstant(0)))
	assert.Equal(t, attr.Concave, mn.CurvatureValue())
	assert.Equal(t, attr.Negative, mn.SignValue())

	// max of a concave operand certifies nothing.
	s := mustBuild(t)(Sqrt(x))
	u := mustBuild(t)(Max(s, y))
	assert.Equal(t, attr.CurvatureUnknown, u.CurvatureValue())
}

func TestPos(t *testing.T) {
	x := NewScalarVariable("x")
	p := mustBuild(t)(Pos(x))
	assert.Equal(t, attr.Convex, p.CurvatureValue())
	assert.Equal(t, attr.Positive, p.SignValue())

	z := mustBuild(t)(Pos(NewScalarConstant(-3)))
	assert.Equal(t, attr.Zero, z.SignValue())
	assert.Equal(t, attr.Constant, z.CurvatureValue())
}

func TestSumReductions(t *testing.T) {
	x := NewVariable("x", shape.New(2, 3))

	total := mustBuild(t)(Sum(x))
	assert.True(t, total.IsScalar())
	assert.Equal(t, attr.Affine, total.CurvatureValue())

	rows := mustBuild(t)(SumRows(x))
	assert.Equal(t, shape.New(1, 3), rows.Shape())

	cols := mustBuild(t)(SumCols(x))
	assert.Equal(t, shape.New(2, 1), cols.Shape())

	sq := mustBuild(t)(Square(x))
	assert.Equal(t, attr.Convex, mustBuild(t)(Sum(sq)).CurvatureValue())
	assert.Equal(t, attr.Convex, mustBuild(t)(Norm1(x)).CurvatureValue())
	assert.Equal(t, attr.Convex, mustBuild(t)(NormInf(x)).CurvatureValue())
}

func TestSumRowsSignGrid(t *testing.T) {
	c := NewConstant(mat.NewDense(2, 3, []float64{
		1, -1, 0,
		2, -3, 0,
	}))

	rows := mustBuild(t)(SumRows(c))
	require.Equal(t, shape.New(1, 3), rows.Shape())
	sign := rows.Sign()
	assert.Equal(t, attr.Positive, sign.At(0, 0))
	assert.Equal(t, attr.Negative, sign.At(0, 1))
	assert.Equal(t, attr.Zero, sign.At(0, 2))
}

func TestElementwiseGridCurvature(t *testing.T) {
	c := NewVectorConstant([]float64{2, -3, 0})
	sq := mustBuild(t)(Square(NewScalarVariable("x")))

	// Scalar convex times a mixed-sign constant vector: each entry
	// follows its own coefficient sign.
	prod := mustBuild(t)(Mul(c, sq))
	require.Equal(t, shape.New(3, 1), prod.Shape())

	curv := prod.Curvature()
	assert.False(t, curv.IsUniform())
	assert.Equal(t, attr.Convex, curv.At(0, 0))
	assert.Equal(t, attr.Concave, curv.At(1, 0))
	assert.Equal(t, attr.Convex, curv.At(2, 0))
	assert.Equal(t, attr.CurvatureUnknown, prod.CurvatureValue())
	assert.True(t, prod.IsDCP(), "every entry individually carries a certificate")

	sign := prod.Sign()
	assert.Equal(t, attr.Positive, sign.At(0, 0))
	assert.Equal(t, attr.Negative, sign.At(1, 0))
	assert.Equal(t, attr.Zero, sign.At(2, 0))
}

func TestMatrixProductCollapsesOperands(t *testing.T) {
	a := NewConstant(mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}))
	x := NewVariable("x", shape.New(3, 1))

	prod := mustBuild(t)(Mul(a, x))
	require.Equal(t, shape.New(2, 1), prod.Shape())
	assert.Equal(t, attr.Affine, prod.CurvatureValue())
	assert.Equal(t, attr.SignUnknown, prod.SignValue())
}

func TestStackingPreservesEntryAttributes(t *testing.T) {
	x := NewScalarVariable("x")
	sq := mustBuild(t)(Square(x))
	c := NewScalarConstant(-1)

	v := mustBuild(t)(VStack(sq, x, c))
	require.Equal(t, shape.New(3, 1), v.Shape())

	curv := v.Curvature()
	assert.Equal(t, attr.Convex, curv.At(0, 0))
	assert.Equal(t, attr.Affine, curv.At(1, 0))
	assert.Equal(t, attr.Constant, curv.At(2, 0))

	sign := v.Sign()
	assert.Equal(t, attr.Positive, sign.At(0, 0))
	assert.Equal(t, attr.SignUnknown, sign.At(1, 0))
	assert.Equal(t, attr.Negative, sign.At(2, 0))

	h := mustBuild(t)(HStack(mustBuild(t)(Transpose(v)), NewScalarConstant(5)))
	require.Equal(t, shape.New(1, 4), h.Shape())
	assert.Equal(t, attr.Convex, h.Curvature().At(0, 0))
	assert.Equal(t, attr.Positive, h.Sign().At(0, 3))
}

func TestTransposeGrid(t *testing.T) {
	c := NewConstant(mat.NewDense(2, 3, []float64{1, -1, 0, 0, 2, -2}))
	tr := mustBuild(t)(Transpose(c))

	require.Equal(t, shape.New(3, 2), tr.Shape())
	sign := tr.Sign()
	assert.Equal(t, attr.Positive, sign.At(0, 0))
	assert.Equal(t, attr.Zero, sign.At(0, 1))
	assert.Equal(t, attr.Negative, sign.At(1, 0))
	assert.Equal(t, attr.Positive, sign.At(1, 1))
	assert.Equal(t, attr.Constant, tr.CurvatureValue())
}

func TestConstantExpressionsFoldToConstant(t *testing.T) {
	a := NewScalarConstant(3)
	b := NewScalarConstant(-4)

	for _, n := range []*Node{
		mustBuild(t)(Add(a, b)),
		mustBuild(t)(Mul(a, b)),
		mustBuild(t)(Square(b)),
		mustBuild(t)(Exp(b)),
		mustBuild(t)(Sqrt(a)),
		mustBuild(t)(Norm2(NewVectorConstant([]float64{3, -4}))),
	} {
		assert.Equal(t, attr.Constant, n.CurvatureValue(), n.String())
		assert.True(t, n.IsDCP())
	}

	assert.Equal(t, attr.SignUnknown, mustBuild(t)(Add(a, b)).SignValue())
	assert.Equal(t, attr.Negative, mustBuild(t)(Mul(a, b)).SignValue())
	assert.Equal(t, attr.Positive, mustBuild(t)(Square(b)).SignValue())
}

func TestScalarBroadcastAgainstMatrix(t *testing.T) {
	x := NewVariable("x", shape.New(2, 2))
	s := mustBuild(t)(Add(x, NewScalarConstant(1)))

	assert.Equal(t, shape.New(2, 2), s.Shape())
	assert.Equal(t, attr.Affine, s.CurvatureValue())
}
