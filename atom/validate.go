package atom

import "fmt"

// Catalogue and descriptor validation error codes (A100-A199).
const (
	ErrAtomNameEmpty     = "A101" // name is required
	ErrAtomBadCurvature  = "A102" // base curvature missing or not one of the four
	ErrAtomBadArity      = "A103" // arity/min_args inconsistent
	ErrAtomBadMono       = "A104" // unknown monotonicity rule name
	ErrAtomBadSign       = "A105" // unknown sign rule name
	ErrAtomBadShape      = "A106" // unknown shape rule name
	ErrAtomDuplicate     = "A107" // atom already registered
	ErrAtomBadOperands   = "A108" // unknown operand constraint
	ErrAtomMonoArity     = "A109" // per-argument monotonicity list length mismatch
	ErrAtomMissingRule   = "A110" // descriptor registered without a rule function
	ErrCatalogueSchema   = "A120" // embedded catalogue fails CUE schema validation
	ErrCatalogueDecoding = "A121" // embedded catalogue fails YAML decoding
)

// ValidationError reports one defect in a catalogue entry or a
// hand-built descriptor. Registration collects all defects rather
// than failing on the first.
type ValidationError struct {
	Atom    string `json:"atom"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Atom != "" {
		return fmt.Sprintf("[%s] atom %q: %s: %s", e.Code, e.Atom, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// validateDescriptor checks a fully-resolved descriptor before it
// enters the registry. Returns all defects found.
func validateDescriptor(d *Descriptor) []ValidationError {
	var errs []ValidationError

	if d.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Code: ErrAtomNameEmpty,
			Message: "name is required and must be non-empty"})
	}
	if !d.BaseCurvature.Known() {
		errs = append(errs, ValidationError{Atom: d.Name, Field: "curvature", Code: ErrAtomBadCurvature,
			Message: "base curvature must be constant, affine, convex, or concave"})
	}
	if d.Arity == 0 || d.Arity < -1 {
		errs = append(errs, ValidationError{Atom: d.Name, Field: "arity", Code: ErrAtomBadArity,
			Message: fmt.Sprintf("arity must be positive or -1 for variadic, got %d", d.Arity)})
	}
	if d.Arity == -1 && d.MinArity < 1 {
		errs = append(errs, ValidationError{Atom: d.Name, Field: "min_args", Code: ErrAtomBadArity,
			Message: "variadic atoms need min_args >= 1"})
	}
	if d.Monotonicity == nil {
		errs = append(errs, ValidationError{Atom: d.Name, Field: "monotonicity", Code: ErrAtomMissingRule,
			Message: "monotonicity rule is required"})
	}
	if d.Sign == nil {
		errs = append(errs, ValidationError{Atom: d.Name, Field: "sign", Code: ErrAtomMissingRule,
			Message: "sign rule is required"})
	}
	if d.Shape == nil {
		errs = append(errs, ValidationError{Atom: d.Name, Field: "shape", Code: ErrAtomMissingRule,
			Message: "shape rule is required"})
	}
	return errs
}

// validateSpec checks a decoded catalogue entry before rule
// resolution. Returns all defects found.
func validateSpec(spec atomSpec) []ValidationError {
	var errs []ValidationError

	if spec.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Code: ErrAtomNameEmpty,
			Message: "name is required and must be non-empty"})
	}
	if _, ok := resolveCurvature(spec.Curvature); !ok {
		errs = append(errs, ValidationError{Atom: spec.Name, Field: "curvature", Code: ErrAtomBadCurvature,
			Message: fmt.Sprintf("unknown base curvature %q", spec.Curvature)})
	}
	if _, ok := resolveSign(spec.Sign); !ok {
		errs = append(errs, ValidationError{Atom: spec.Name, Field: "sign", Code: ErrAtomBadSign,
			Message: fmt.Sprintf("unknown sign rule %q", spec.Sign)})
	}
	if _, _, ok := resolveShape(spec.Shape); !ok {
		errs = append(errs, ValidationError{Atom: spec.Name, Field: "shape", Code: ErrAtomBadShape,
			Message: fmt.Sprintf("unknown shape rule %q", spec.Shape)})
	}
	if _, ok := resolveOperands(spec.Operands); !ok {
		errs = append(errs, ValidationError{Atom: spec.Name, Field: "operands", Code: ErrAtomBadOperands,
			Message: fmt.Sprintf("unknown operand constraint %q", spec.Operands)})
	}
	if _, _, ok := resolveMonotonicity(spec.Monotonicity.Names); !ok {
		errs = append(errs, ValidationError{Atom: spec.Name, Field: "monotonicity", Code: ErrAtomBadMono,
			Message: fmt.Sprintf("unknown monotonicity rule %v", spec.Monotonicity.Names)})
	}
	if spec.Variadic {
		if spec.Arity != 0 {
			errs = append(errs, ValidationError{Atom: spec.Name, Field: "arity", Code: ErrAtomBadArity,
				Message: "variadic atoms must not declare a fixed arity"})
		}
		if spec.MinArgs < 1 {
			errs = append(errs, ValidationError{Atom: spec.Name, Field: "min_args", Code: ErrAtomBadArity,
				Message: "variadic atoms need min_args >= 1"})
		}
	} else if spec.Arity < 1 {
		errs = append(errs, ValidationError{Atom: spec.Name, Field: "arity", Code: ErrAtomBadArity,
			Message: fmt.Sprintf("arity must be >= 1, got %d", spec.Arity)})
	}
	if n := len(spec.Monotonicity.Names); n > 1 && !spec.Variadic && n != spec.Arity {
		errs = append(errs, ValidationError{Atom: spec.Name, Field: "monotonicity", Code: ErrAtomMonoArity,
			Message: fmt.Sprintf("%d per-argument rules for arity %d", n, spec.Arity)})
	}
	return errs
}
