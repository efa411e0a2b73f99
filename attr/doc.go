// Package attr provides the analysis attributes inferred for every
// expression node: sign, curvature, and monotonicity, together with
// the arithmetic tables and the curvature composition rule that
// combine them.
//
// This package contains pure value types and pure functions only. All
// other packages import attr; attr imports only shape. This keeps the
// algebra the foundational layer with no circular dependencies.
//
// Soundness is the governing constraint throughout: a table may lose
// precision (answer Unknown when a sharper answer exists) but must
// never claim a sign or curvature the underlying function does not
// have.
package attr
