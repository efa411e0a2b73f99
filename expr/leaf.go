package expr

import (
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/convexgo/dcp/attr"
	"github.com/convexgo/dcp/shape"
)

// NewVariable creates a decision-variable leaf: unknown sign, affine
// curvature.
func NewVariable(name string, sh shape.Shape) *Node {
	return &Node{
		id:   nextIdent(),
		name: name,
		leaf: leafVariable,
		sh:   sh,
		sign: attr.Uniform(sh, attr.SignUnknown),
		curv: attr.Uniform(sh, attr.Affine),
	}
}

// NewScalarVariable creates a (1, 1) variable.
func NewScalarVariable(name string) *Node {
	return NewVariable(name, shape.Scalar)
}

// NewParameter creates a parameter leaf: constant curvature and a
// user-declared sign. Use attr.SignUnknown when nothing is known
// about the parameter's range.
func NewParameter(name string, sh shape.Shape, sign attr.Sign) *Node {
	return &Node{
		id:   nextIdent(),
		name: name,
		leaf: leafParameter,
		sh:   sh,
		sign: attr.Uniform(sh, sign),
		curv: attr.Uniform(sh, attr.Constant),
	}
}

// NewScalarParameter creates a (1, 1) parameter with a declared sign.
func NewScalarParameter(name string, sign attr.Sign) *Node {
	return NewParameter(name, shape.Scalar, sign)
}

// NewConstant creates a constant leaf from a numeric matrix. The
// matrix is copied; the per-entry sign grid is derived exactly from
// the values, so a matrix mixing positive and negative entries gets a
// heterogeneous sign field.
func NewConstant(value mat.Matrix) *Node {
	rows, cols := value.Dims()
	sh := shape.New(rows, cols)

	cp := mat.NewDense(rows, cols, nil)
	cp.Copy(value)

	signs := make([]attr.Sign, 0, sh.Entries())
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			signs = append(signs, attr.SignOf(cp.At(r, c)))
		}
	}

	return &Node{
		id:    nextIdent(),
		name:  constantName(sh, cp),
		leaf:  leafConstant,
		sh:    sh,
		sign:  attr.FromCells(sh, signs),
		curv:  attr.Uniform(sh, attr.Constant),
		value: cp,
	}
}

// NewScalarConstant creates a (1, 1) constant.
func NewScalarConstant(v float64) *Node {
	return NewConstant(mat.NewDense(1, 1, []float64{v}))
}

// NewVectorConstant creates an (n, 1) constant from values.
func NewVectorConstant(values []float64) *Node {
	return NewConstant(mat.NewDense(len(values), 1, append([]float64(nil), values...)))
}

func constantName(sh shape.Shape, value *mat.Dense) string {
	if sh.IsScalar() {
		return strconv.FormatFloat(value.At(0, 0), 'g', -1, 64)
	}
	return "const" + sh.String()
}
