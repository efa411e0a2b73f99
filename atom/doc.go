// Package atom provides the registry of function and operator
// descriptors that drive sign and curvature inference.
//
// An atom is a data record, not a polymorphic type: it declares a base
// curvature, a per-argument monotonicity rule (possibly dependent on
// the argument's computed sign), a sign-combination rule, and a shape
// rule. The inference engines stay closed over this fixed contract;
// extending the function library means registering another descriptor.
//
// The built-in catalogue ships as an embedded YAML document validated
// against an embedded CUE schema and is loaded once at process start.
// Descriptors are immutable and shared read-only by every node that
// uses them.
package atom
