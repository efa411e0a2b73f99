package expr

import (
	"fmt"
	"strings"

	"github.com/convexgo/dcp/attr"
)

// String renders the expression in infix form for the arithmetic
// atoms and call form for everything else, e.g.
// "sqrt((1 + square(x)))".
func (n *Node) String() string {
	if n.IsLeaf() {
		return n.name
	}
	parts := make([]string, len(n.children))
	for i, c := range n.children {
		parts[i] = c.String()
	}
	switch n.name {
	case "add":
		return "(" + strings.Join(parts, " + ") + ")"
	case "subtract":
		return "(" + parts[0] + " - " + parts[1] + ")"
	case "multiply":
		return "(" + parts[0] + " * " + parts[1] + ")"
	case "divide":
		return "(" + parts[0] + " / " + parts[1] + ")"
	case "negate":
		return "-" + parts[0]
	default:
		return n.name + "(" + strings.Join(parts, ", ") + ")"
	}
}

// Report renders the full annotated tree, one node per line with its
// shape, sign, and curvature. The output is deterministic and used
// for golden-file comparison in tests and for diagnostics.
func Report(n *Node) string {
	var b strings.Builder
	writeReport(&b, n, 0)
	return b.String()
}

func writeReport(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s shape=%s sign=%s curvature=%s\n",
		indent, n.name, n.sh,
		formatField(n.sign, attr.Sign.String),
		formatField(n.curv, attr.Curvature.String))
	for _, c := range n.children {
		writeReport(b, c, depth+1)
	}
}

// formatField renders a uniform field as its single value and a grid
// field row by row, e.g. "grid[positive negative; zero positive]".
func formatField[T comparable](f attr.Field[T], str func(T) string) string {
	if v, ok := f.Value(); ok {
		return str(v)
	}
	sh := f.Shape()
	rows := make([]string, sh.Rows)
	for r := 0; r < sh.Rows; r++ {
		cols := make([]string, sh.Cols)
		for c := 0; c < sh.Cols; c++ {
			cols[c] = str(f.At(r, c))
		}
		rows[r] = strings.Join(cols, " ")
	}
	return "grid[" + strings.Join(rows, "; ") + "]"
}
