package atom

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

//go:embed catalog_schema.cue
var catalogSchema string

// atomSpec is one decoded catalogue entry. Rule fields reference
// named rules resolved in rules.go; the curvature flip for constant
// coefficients, the sign-dependent monotonicities, and the shape
// structure all live in those names, keeping the catalogue pure data.
type atomSpec struct {
	Name         string   `yaml:"name"`
	Curvature    string   `yaml:"curvature"`
	Monotonicity monoSpec `yaml:"monotonicity"`
	Sign         string   `yaml:"sign"`
	Shape        string   `yaml:"shape"`
	Arity        int      `yaml:"arity,omitempty"`
	Variadic     bool     `yaml:"variadic,omitempty"`
	MinArgs      int      `yaml:"min_args,omitempty"`
	Operands     string   `yaml:"operands,omitempty"`
}

// monoSpec accepts either one rule name for every argument or a
// per-argument list.
type monoSpec struct {
	Names []string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *monoSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		m.Names = []string{name}
		return nil
	case yaml.SequenceNode:
		return node.Decode(&m.Names)
	default:
		return fmt.Errorf("monotonicity must be a name or a list of names")
	}
}

// Builtin returns the registry populated from the embedded
// catalogue. The catalogue is validated and loaded exactly once; a
// malformed embedded catalogue is a programming error and panics at
// first use.
var Builtin = sync.OnceValue(func() *Registry {
	r, err := LoadCatalog(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("atom: embedded catalogue: %v", err))
	}
	return r
})

// LoadCatalog decodes, schema-checks, and registers a YAML atom
// catalogue, returning the populated registry.
func LoadCatalog(src []byte) (*Registry, error) {
	if err := checkSchema(src); err != nil {
		return nil, err
	}

	var doc struct {
		Atoms []atomSpec `yaml:"atoms"`
	}
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, ValidationError{Field: "catalogue", Code: ErrCatalogueDecoding,
			Message: err.Error()}
	}

	reg := NewRegistry()
	var errs []error
	for _, spec := range doc.Atoms {
		if verrs := validateSpec(spec); len(verrs) > 0 {
			errs = append(errs, toErrs(verrs)...)
			continue
		}
		d, err := buildDescriptor(spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := reg.Register(d); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	slog.Info("atom catalogue loaded", "atoms", reg.Len())
	return reg, nil
}

// checkSchema validates the raw catalogue against the embedded CUE
// schema before any entry is decoded.
func checkSchema(src []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(catalogSchema).LookupPath(cue.ParsePath("#Catalog"))
	if err := schema.Err(); err != nil {
		return ValidationError{Field: "schema", Code: ErrCatalogueSchema, Message: err.Error()}
	}

	file, err := cueyaml.Extract("catalog.yaml", src)
	if err != nil {
		return ValidationError{Field: "catalogue", Code: ErrCatalogueDecoding, Message: err.Error()}
	}
	data := ctx.BuildFile(file)
	if err := data.Err(); err != nil {
		return ValidationError{Field: "catalogue", Code: ErrCatalogueDecoding, Message: err.Error()}
	}

	if err := schema.Unify(data).Validate(cue.Concrete(true)); err != nil {
		return ValidationError{Field: "catalogue", Code: ErrCatalogueSchema, Message: err.Error()}
	}
	return nil
}

// buildDescriptor resolves a validated spec's named rules into an
// immutable descriptor.
func buildDescriptor(spec atomSpec) (*Descriptor, error) {
	base, _ := resolveCurvature(spec.Curvature)
	signRule, _ := resolveSign(spec.Sign)
	kind, shapeRule, _ := resolveShape(spec.Shape)
	operands, _ := resolveOperands(spec.Operands)
	mono, coefficient, ok := resolveMonotonicity(spec.Monotonicity.Names)
	if !ok {
		return nil, ValidationError{Atom: spec.Name, Field: "monotonicity", Code: ErrAtomBadMono,
			Message: fmt.Sprintf("unknown monotonicity rule %v", spec.Monotonicity.Names)}
	}

	arity := spec.Arity
	if spec.Variadic {
		arity = -1
	}
	return &Descriptor{
		Name:              spec.Name,
		Arity:             arity,
		MinArity:          spec.MinArgs,
		BaseCurvature:     base,
		Monotonicity:      mono,
		CoefficientSigned: coefficient,
		Sign:              signRule,
		Kind:              kind,
		Shape:             shapeRule,
		Operands:          operands,
	}, nil
}
