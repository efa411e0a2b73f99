package expr

// Convenience constructors for the built-in atoms. Each is a thin
// wrapper over Build and reports the same errors.

// Add builds an elementwise sum of two or more terms.
func Add(terms ...*Node) (*Node, error) {
	return Build("add", terms...)
}

// Sub builds the elementwise difference a - b.
func Sub(a, b *Node) (*Node, error) {
	return Build("subtract", a, b)
}

// Neg builds the elementwise negation.
func Neg(a *Node) (*Node, error) {
	return Build("negate", a)
}

// Mul builds a product. At least one operand must be constant.
func Mul(a, b *Node) (*Node, error) {
	return Build("multiply", a, b)
}

// Div builds a quotient. The divisor must be a constant scalar.
func Div(a, b *Node) (*Node, error) {
	return Build("divide", a, b)
}

// Square builds the elementwise square.
func Square(a *Node) (*Node, error) {
	return Build("square", a)
}

// Sqrt builds the elementwise square root.
func Sqrt(a *Node) (*Node, error) {
	return Build("sqrt", a)
}

// Abs builds the elementwise absolute value.
func Abs(a *Node) (*Node, error) {
	return Build("abs", a)
}

// Exp builds the elementwise exponential.
func Exp(a *Node) (*Node, error) {
	return Build("exp", a)
}

// Log builds the elementwise natural logarithm.
func Log(a *Node) (*Node, error) {
	return Build("log", a)
}

// Pos builds the elementwise positive part max(a, 0).
func Pos(a *Node) (*Node, error) {
	return Build("pos", a)
}

// Max builds the elementwise maximum of two or more operands.
func Max(terms ...*Node) (*Node, error) {
	return Build("max", terms...)
}

// Min builds the elementwise minimum of two or more operands.
func Min(terms ...*Node) (*Node, error) {
	return Build("min", terms...)
}

// Sum builds the scalar sum over all entries.
func Sum(a *Node) (*Node, error) {
	return Build("sum", a)
}

// SumRows builds the per-column sum, collapsing the row axis.
func SumRows(a *Node) (*Node, error) {
	return Build("sum_rows", a)
}

// SumCols builds the per-row sum, collapsing the column axis.
func SumCols(a *Node) (*Node, error) {
	return Build("sum_cols", a)
}

// Norm1 builds the entrywise 1-norm over all entries.
func Norm1(a *Node) (*Node, error) {
	return Build("norm1", a)
}

// Norm2 builds the Euclidean norm over all entries.
func Norm2(a *Node) (*Node, error) {
	return Build("norm2", a)
}

// NormInf builds the infinity norm over all entries.
func NormInf(a *Node) (*Node, error) {
	return Build("norm_inf", a)
}

// VStack stacks operands vertically.
func VStack(parts ...*Node) (*Node, error) {
	return Build("vstack", parts...)
}

// HStack stacks operands horizontally.
func HStack(parts ...*Node) (*Node, error) {
	return Build("hstack", parts...)
}

// Transpose swaps the operand's axes.
func Transpose(a *Node) (*Node, error) {
	return Build("transpose", a)
}
