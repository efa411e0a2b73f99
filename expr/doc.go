// Package expr provides the immutable expression tree and the
// build-time inference pipeline.
//
// Build is the sole construction entry point. Building a node runs,
// in order: operand-kind checking (multiplication needs a constant
// side, division a constant scalar divisor), shape checking (fails
// fast on incompatible dimensions), sign inference, and curvature
// inference. Every property is computed eagerly and cached on the
// node, so a node reachable in any tree is fully annotated and
// well-formed, and accessors are pure reads.
//
// Trees are immutable once built and safe to share across goroutines
// without locking. Analysis is strictly bottom-up; nodes hold no
// parent pointers.
package expr
