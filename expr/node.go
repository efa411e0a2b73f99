package expr

import (
	"gonum.org/v1/gonum/mat"

	"github.com/convexgo/dcp/atom"
	"github.com/convexgo/dcp/attr"
	"github.com/convexgo/dcp/shape"
)

// leafKind distinguishes the three leaf node types from atom
// applications.
type leafKind int

const (
	notLeaf leafKind = iota
	leafVariable
	leafParameter
	leafConstant
)

// Node is one node of an immutable expression tree, annotated with
// its inferred shape, sign, and curvature. Nodes are created once,
// fully computed, and never mutated; re-querying any accessor returns
// the identical cached value.
type Node struct {
	id       string
	name     string
	leaf     leafKind
	desc     *atom.Descriptor
	children []*Node
	sh       shape.Shape
	sign     attr.Field[attr.Sign]
	curv     attr.Field[attr.Curvature]
	value    *mat.Dense // constant leaves only
}

// ID returns the node's unique identity, assigned at build time.
// Downstream consumers use it to correlate nodes across passes.
func (n *Node) ID() string {
	return n.id
}

// Name returns the leaf name or atom name.
func (n *Node) Name() string {
	return n.name
}

// IsLeaf reports whether the node is a variable, parameter, or
// constant.
func (n *Node) IsLeaf() bool {
	return n.leaf != notLeaf
}

// Children returns the ordered child nodes. The returned slice is a
// copy; children themselves are shared and immutable.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Shape returns the node's cached shape.
func (n *Node) Shape() shape.Shape {
	return n.sh
}

// IsScalar reports whether the node's shape is (1, 1).
func (n *Node) IsScalar() bool {
	return n.sh.IsScalar()
}

// IsVector reports whether the node's shape has a single row or a
// single column.
func (n *Node) IsVector() bool {
	return n.sh.IsVector()
}

// Sign returns the cached per-entry sign field.
func (n *Node) Sign() attr.Field[attr.Sign] {
	return n.sign
}

// Curvature returns the cached per-entry curvature field.
func (n *Node) Curvature() attr.Field[attr.Curvature] {
	return n.curv
}

// SignValue collapses the sign field to one conservative value.
func (n *Node) SignValue() attr.Sign {
	return n.sign.Collapse(attr.JoinSigns)
}

// CurvatureValue collapses the curvature field to one conservative
// value.
func (n *Node) CurvatureValue() attr.Curvature {
	return n.curv.Collapse(attr.JoinCurvatures)
}

// IsConstant reports whether every entry has Constant curvature.
func (n *Node) IsConstant() bool {
	return n.CurvatureValue().IsConstant()
}

// IsAffine reports whether every entry is Affine or more specific.
func (n *Node) IsAffine() bool {
	return n.CurvatureValue().IsAffine()
}

// IsConvex reports whether every entry is Convex or more specific.
func (n *Node) IsConvex() bool {
	return n.CurvatureValue().IsConvex()
}

// IsConcave reports whether every entry is Concave or more specific.
func (n *Node) IsConcave() bool {
	return n.CurvatureValue().IsConcave()
}

// IsDCP reports whether every entry has a certified curvature, which
// is what a downstream solver requires of an objective or constraint
// expression.
func (n *Node) IsDCP() bool {
	for _, c := range n.curv.Cells() {
		if !c.Known() {
			return false
		}
	}
	return true
}

// ConstantValue returns the numeric value of a constant leaf, or nil
// for every other node. The returned matrix is shared; callers must
// not mutate it.
func (n *Node) ConstantValue() *mat.Dense {
	return n.value
}
