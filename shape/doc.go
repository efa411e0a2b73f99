// Package shape provides the dimension model and per-operator shape
// rules for expression construction.
//
// Every expression node carries a (rows, cols) Shape computed from its
// operator and its children's shapes. Shape checking is the first
// inference pass and fails fast: a dimension-incompatible combination
// can never become a node.
//
// Rules in this package are pure functions from child shapes to a
// result shape. They know nothing about signs or curvature; the atom
// registry binds each atom to one of these rules by name.
package shape
