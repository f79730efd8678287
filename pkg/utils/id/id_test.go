package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULIDIsUniqueAndOrdered(t *testing.T) {
	gen := NewULIDGenerator()

	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 1000; i++ {
		v := gen.Generate()
		assert.Len(t, v, 26)
		assert.False(t, seen[v], "duplicate ULID %s", v)
		seen[v] = true
		// Monotonic entropy keeps same-millisecond IDs sorted.
		assert.Less(t, prev, v)
		prev = v
	}
}

func TestNewULIDDefaultGenerator(t *testing.T) {
	a := NewULID()
	b := NewULID()
	assert.NotEqual(t, a, b)
}
