package expr

import (
	"log/slog"

	"github.com/convexgo/dcp/atom"
	"github.com/convexgo/dcp/attr"
	"github.com/convexgo/dcp/shape"
)

// Build constructs a node applying the named built-in atom to the
// given children. It is the sole construction entry point for
// non-leaf nodes and fails fast: operand kinds are checked, then
// shapes, then sign and curvature are inferred and cached. On any
// error no node is produced, so every node reachable in a tree is
// well-formed.
func Build(name string, children ...*Node) (*Node, error) {
	return BuildIn(atom.Builtin(), name, children...)
}

// BuildIn is Build against an explicit registry. Libraries that
// extend the catalogue register their atoms at process start and
// build through their own registry.
func BuildIn(reg *atom.Registry, name string, children ...*Node) (*Node, error) {
	desc, err := reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !desc.AcceptsArity(len(children)) {
		return nil, newArityError(name, len(children))
	}

	// Operand-kind checks precede shape checks: a product of two
	// non-constants is an InvalidOperandError even when its shapes
	// are also incompatible.
	if err := checkOperands(desc, children); err != nil {
		slog.Debug("expression rejected", "atom", name, "err", err)
		return nil, err
	}

	shapes := make([]shape.Shape, len(children))
	for i, c := range children {
		shapes[i] = c.sh
	}
	sh, err := desc.Shape(name, shapes)
	if err != nil {
		slog.Debug("expression rejected", "atom", name, "err", err)
		return nil, err
	}

	return &Node{
		id:       nextIdent(),
		name:     name,
		desc:     desc,
		children: append([]*Node(nil), children...),
		sh:       sh,
		sign:     inferSign(desc, sh, children),
		curv:     inferCurvature(desc, sh, children),
	}, nil
}

// checkOperands enforces the descriptor's operand constraint.
func checkOperands(d *atom.Descriptor, children []*Node) error {
	switch d.Operands {
	case atom.OneConstantOperand:
		if len(children) == 2 && !children[0].IsConstant() && !children[1].IsConstant() {
			return newNonConstantProductError(d.Name)
		}
	case atom.ConstantScalarDivisor:
		if len(children) == 2 && (!children[1].IsScalar() || !children[1].IsConstant()) {
			return newBadDivisorError(d.Name)
		}
	}
	return nil
}

// inferSign computes the node's per-entry sign field by dispatching
// to the atom's sign rule. Elementwise atoms evaluate per entry with
// scalar broadcast; stacking and transpose rearrange the children's
// grids; reductions feed every entry of the operand to the rule;
// heterogeneous non-elementwise operands collapse conservatively
// before the rule is applied.
func inferSign(d *atom.Descriptor, sh shape.Shape, children []*Node) attr.Field[attr.Sign] {
	fields := make([]attr.Field[attr.Sign], len(children))
	for i, c := range children {
		fields[i] = c.sign
	}

	switch d.Kind {
	case atom.ShapeElementwise, atom.ShapeRightScalar:
		return attr.Zip(sh, fields, d.Sign)

	case atom.ShapeMatMul:
		if children[0].IsScalar() || children[1].IsScalar() {
			// Scalar multiplication distributes over entries.
			return attr.Zip(sh, fields, d.Sign)
		}
		args := []attr.Sign{
			fields[0].Collapse(attr.JoinSigns),
			fields[1].Collapse(attr.JoinSigns),
		}
		return attr.Uniform(sh, d.Sign(args))

	case atom.ShapeReduce:
		return attr.Uniform(sh, d.Sign(fields[0].Cells()))

	case atom.ShapeReduceRows:
		child := fields[0]
		csh := child.Shape()
		cells := make([]attr.Sign, csh.Cols)
		col := make([]attr.Sign, csh.Rows)
		for c := 0; c < csh.Cols; c++ {
			for r := 0; r < csh.Rows; r++ {
				col[r] = child.At(r, c)
			}
			cells[c] = d.Sign(col)
		}
		return attr.FromCells(sh, cells)

	case atom.ShapeReduceCols:
		child := fields[0]
		csh := child.Shape()
		cells := make([]attr.Sign, csh.Rows)
		row := make([]attr.Sign, csh.Cols)
		for r := 0; r < csh.Rows; r++ {
			for c := 0; c < csh.Cols; c++ {
				row[c] = child.At(r, c)
			}
			cells[r] = d.Sign(row)
		}
		return attr.FromCells(sh, cells)

	case atom.ShapeStackRows:
		return attr.ConcatRows(sh, fields)

	case atom.ShapeStackCols:
		return attr.ConcatCols(sh, fields)

	case atom.ShapeTranspose:
		return fields[0].Transpose()

	default:
		return attr.Uniform(sh, attr.SignUnknown)
	}
}

// inferCurvature computes the node's per-entry curvature field by
// applying the composition rule. Monotonicity is consulted with the
// already-computed sign of the governing argument: the argument's own
// sign, or the partner constant operand's sign for
// coefficient-signed atoms (multiply, divide), which is exactly how a
// negative constant multiplier flips a convex child to concave.
func inferCurvature(d *atom.Descriptor, sh shape.Shape, children []*Node) attr.Field[attr.Curvature] {
	switch d.Kind {
	case atom.ShapeElementwise, atom.ShapeRightScalar:
		return entrywiseCurvature(d, sh, children)

	case atom.ShapeMatMul:
		if children[0].IsScalar() || children[1].IsScalar() {
			return entrywiseCurvature(d, sh, children)
		}
		// A true matrix product mixes rows and columns; collapse
		// each operand before composing.
		args := make([]attr.Arg, len(children))
		for i, c := range children {
			args[i] = attr.Arg{
				Curvature:    c.CurvatureValue(),
				Monotonicity: d.Monotonicity(i, monoSignCollapsed(d, i, children)),
			}
		}
		return attr.Uniform(sh, attr.Compose(d.BaseCurvature, args))

	case atom.ShapeReduce:
		composed := composedChildField(d, children[0])
		return attr.Uniform(sh, composed.Collapse(attr.JoinCurvatures))

	case atom.ShapeReduceRows:
		composed := composedChildField(d, children[0])
		csh := composed.Shape()
		cells := make([]attr.Curvature, csh.Cols)
		for c := 0; c < csh.Cols; c++ {
			out := composed.At(0, c)
			for r := 1; r < csh.Rows; r++ {
				out = attr.JoinCurvatures(out, composed.At(r, c))
			}
			cells[c] = out
		}
		return attr.FromCells(sh, cells)

	case atom.ShapeReduceCols:
		composed := composedChildField(d, children[0])
		csh := composed.Shape()
		cells := make([]attr.Curvature, csh.Rows)
		for r := 0; r < csh.Rows; r++ {
			out := composed.At(r, 0)
			for c := 1; c < csh.Cols; c++ {
				out = attr.JoinCurvatures(out, composed.At(r, c))
			}
			cells[r] = out
		}
		return attr.FromCells(sh, cells)

	case atom.ShapeStackRows:
		fields := make([]attr.Field[attr.Curvature], len(children))
		for i, c := range children {
			fields[i] = composedChildField(d, c)
		}
		return attr.ConcatRows(sh, fields)

	case atom.ShapeStackCols:
		fields := make([]attr.Field[attr.Curvature], len(children))
		for i, c := range children {
			fields[i] = composedChildField(d, c)
		}
		return attr.ConcatCols(sh, fields)

	case atom.ShapeTranspose:
		return composedChildField(d, children[0]).Transpose()

	default:
		return attr.Uniform(sh, attr.CurvatureUnknown)
	}
}

// entrywiseCurvature composes per result entry, broadcasting scalar
// children.
func entrywiseCurvature(d *atom.Descriptor, sh shape.Shape, children []*Node) attr.Field[attr.Curvature] {
	uniform := true
	for _, c := range children {
		if !c.sign.IsUniform() || !c.curv.IsUniform() {
			uniform = false
			break
		}
	}

	args := make([]attr.Arg, len(children))
	if uniform {
		for i := range children {
			args[i] = attr.Arg{
				Curvature:    curvAt(children[i], 0, 0),
				Monotonicity: d.Monotonicity(i, monoSignAt(d, i, children, 0, 0)),
			}
		}
		return attr.Uniform(sh, attr.Compose(d.BaseCurvature, args))
	}

	cells := make([]attr.Curvature, sh.Entries())
	for r := 0; r < sh.Rows; r++ {
		for c := 0; c < sh.Cols; c++ {
			for i := range children {
				args[i] = attr.Arg{
					Curvature:    curvAt(children[i], r, c),
					Monotonicity: d.Monotonicity(i, monoSignAt(d, i, children, r, c)),
				}
			}
			cells[r*sh.Cols+c] = attr.Compose(d.BaseCurvature, args)
		}
	}
	return attr.FromCells(sh, cells)
}

// composedChildField composes the single operand of a structural or
// reducing atom entry by entry.
func composedChildField(d *atom.Descriptor, child *Node) attr.Field[attr.Curvature] {
	csh := child.sh
	if child.sign.IsUniform() && child.curv.IsUniform() {
		arg := attr.Arg{
			Curvature:    curvAt(child, 0, 0),
			Monotonicity: d.Monotonicity(0, signAt(child, 0, 0)),
		}
		return attr.Uniform(csh, attr.Compose(d.BaseCurvature, []attr.Arg{arg}))
	}
	cells := make([]attr.Curvature, csh.Entries())
	for r := 0; r < csh.Rows; r++ {
		for c := 0; c < csh.Cols; c++ {
			arg := attr.Arg{
				Curvature:    curvAt(child, r, c),
				Monotonicity: d.Monotonicity(0, signAt(child, r, c)),
			}
			cells[r*csh.Cols+c] = attr.Compose(d.BaseCurvature, []attr.Arg{arg})
		}
	}
	return attr.FromCells(csh, cells)
}

// signAt reads a child's sign at a result position, broadcasting
// scalars.
func signAt(n *Node, r, c int) attr.Sign {
	if n.sh.IsScalar() {
		return n.sign.At(0, 0)
	}
	return n.sign.At(r, c)
}

// curvAt reads a child's curvature at a result position,
// broadcasting scalars.
func curvAt(n *Node, r, c int) attr.Curvature {
	if n.sh.IsScalar() {
		return n.curv.At(0, 0)
	}
	return n.curv.At(r, c)
}

// monoSignAt selects the sign governing the monotonicity of slot i at
// a result position.
func monoSignAt(d *atom.Descriptor, i int, children []*Node, r, c int) attr.Sign {
	if d.CoefficientSigned && len(children) == 2 {
		return signAt(children[1-i], r, c)
	}
	return signAt(children[i], r, c)
}

// monoSignCollapsed is monoSignAt over collapsed operands, for the
// true matrix-product path.
func monoSignCollapsed(d *atom.Descriptor, i int, children []*Node) attr.Sign {
	if d.CoefficientSigned && len(children) == 2 {
		return children[1-i].SignValue()
	}
	return children[i].SignValue()
}
