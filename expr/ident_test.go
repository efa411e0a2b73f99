package expr

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7GeneratorProducesValidIDs(t *testing.T) {
	g := UUIDv7Generator{}
	a := g.Generate()
	b := g.Generate()

	assert.NotEqual(t, a, b)
	for _, id := range []string{a, b} {
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())
	}
}

func TestFixedGeneratorReturnsIDsInOrder(t *testing.T) {
	g := NewFixedGenerator("id-1", "id-2")
	assert.Equal(t, "id-1", g.Generate())
	assert.Equal(t, "id-2", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestSetIdentGeneratorControlsNodeIDs(t *testing.T) {
	prev := SetIdentGenerator(NewFixedGenerator("leaf-x", "node-sq"))
	defer SetIdentGenerator(prev)

	x := NewScalarVariable("x")
	assert.Equal(t, "leaf-x", x.ID())

	sq, err := Square(x)
	require.NoError(t, err)
	assert.Equal(t, "node-sq", sq.ID())
}
