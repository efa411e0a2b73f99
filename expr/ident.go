package expr

import (
	"sync"

	"github.com/google/uuid"
)

// IdentGenerator produces unique node identities. Implemented by
// UUIDv7Generator (production) and FixedGenerator (tests).
type IdentGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 node identities.
// Sorting node IDs recovers construction order, which is helpful when
// tracing how a tree was assembled.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string. Panics if
// UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined identities for deterministic
// tests.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
// Generate panics once all ids are consumed, failing fast on test
// misconfiguration.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined identity.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

var (
	identMu sync.RWMutex
	idents  IdentGenerator = UUIDv7Generator{}
)

// SetIdentGenerator swaps the package-level identity generator and
// returns the previous one. Intended for tests that need
// deterministic node IDs.
func SetIdentGenerator(g IdentGenerator) IdentGenerator {
	identMu.Lock()
	defer identMu.Unlock()
	prev := idents
	idents = g
	return prev
}

func nextIdent() string {
	identMu.RLock()
	defer identMu.RUnlock()
	return idents.Generate()
}
