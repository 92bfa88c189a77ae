package flowweb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAllocGetFree(t *testing.T) {
	var a arena

	h := a.alloc(FlowWebNode{Owner: 1})
	n, ok := a.get(h)
	require.True(t, ok)
	assert.Equal(t, uint32(1), n.Owner)

	a.free(h)
	_, ok = a.get(h)
	assert.False(t, ok, "a freed handle must no longer resolve")
}

// TestArenaStaleHandleAfterReuse is the key generational-handle invariant:
// once a slot is freed and reallocated, a handle captured before the free
// must compare as invalid against the new occupant, even though the slot
// index is reused.
func TestArenaStaleHandleAfterReuse(t *testing.T) {
	var a arena

	first := a.alloc(FlowWebNode{Owner: 1})
	a.free(first)

	second := a.alloc(FlowWebNode{Owner: 2})
	assert.Equal(t, first.index, second.index, "the freed slot should have been reused")
	assert.NotEqual(t, first.generation, second.generation)

	_, ok := a.get(first)
	assert.False(t, ok, "the stale handle must not resolve to the new occupant")

	n, ok := a.get(second)
	require.True(t, ok)
	assert.Equal(t, uint32(2), n.Owner)
}

func TestZeroHandleIsInvalid(t *testing.T) {
	var h nodeHandle
	assert.False(t, h.valid())

	var a arena
	_, ok := a.get(h)
	assert.False(t, ok)
}
