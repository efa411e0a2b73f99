package atom

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// UnknownAtomError reports a lookup of an unregistered atom. A
// well-formed tree can never trigger it: nodes are only built through
// descriptors that were already resolved. It is an
// internal-consistency fault, not a user-facing construction error.
type UnknownAtomError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownAtomError) Error() string {
	return fmt.Sprintf("unknown atom %q", e.Name)
}

// IsUnknownAtomError returns true if the error is an
// UnknownAtomError. Uses errors.As to handle wrapped errors.
func IsUnknownAtomError(err error) bool {
	var ue *UnknownAtomError
	return errors.As(err, &ue)
}

// Registry holds atom descriptors by name. It is populated at process
// start and read-only afterwards; lookups from concurrent analysis
// goroutines need no coordination beyond the internal lock.
type Registry struct {
	mu    sync.RWMutex
	atoms map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{atoms: make(map[string]*Descriptor)}
}

// Register validates and adds a descriptor. Registration is intended
// for process start; it fails on duplicates or malformed descriptors
// rather than silently replacing an entry.
func (r *Registry) Register(d *Descriptor) error {
	if errs := validateDescriptor(d); len(errs) > 0 {
		return fmt.Errorf("atom %q: %w", d.Name, errors.Join(toErrs(errs)...))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.atoms[d.Name]; dup {
		return ValidationError{Atom: d.Name, Field: "name", Code: ErrAtomDuplicate,
			Message: "atom already registered"}
	}
	r.atoms[d.Name] = d
	return nil
}

// Lookup returns the descriptor for name, or an UnknownAtomError.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.atoms[name]
	if !ok {
		return nil, &UnknownAtomError{Name: name}
	}
	return d, nil
}

// Names returns the registered atom names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.atoms))
	for n := range r.atoms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered atoms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.atoms)
}

func toErrs(verrs []ValidationError) []error {
	out := make([]error, len(verrs))
	for i, v := range verrs {
		out[i] = v
	}
	return out
}
