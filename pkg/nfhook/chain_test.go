package nfhook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopCallback(_ context.Context, _ any, _ Packet, _ *HookState) Verdict {
	return Accept
}

func TestChain_InsertOrdersByPriorityThenInsertion(t *testing.T) {
	c := newChain()

	opsA := &HookOps{Priority: 10, Callback: noopCallback}
	opsB := &HookOps{Priority: 5, Callback: noopCallback}
	opsC := &HookOps{Priority: 5, Callback: noopCallback}
	opsD := &HookOps{Priority: 20, Callback: noopCallback}

	c.mu.Lock()
	c.insert(&hookEntry{HookOps: *opsA, origOps: opsA})
	c.insert(&hookEntry{HookOps: *opsB, origOps: opsB})
	c.insert(&hookEntry{HookOps: *opsC, origOps: opsC})
	c.insert(&hookEntry{HookOps: *opsD, origOps: opsD})
	c.mu.Unlock()

	entries := c.snapshot()
	require.Len(t, entries, 4)
	assert.Same(t, opsB, entries[0].origOps)
	assert.Same(t, opsC, entries[1].origOps)
	assert.Same(t, opsA, entries[2].origOps)
	assert.Same(t, opsD, entries[3].origOps)
}

func TestChain_RemoveUnlinksByOrigOpsIdentity(t *testing.T) {
	c := newChain()
	opsA := &HookOps{Priority: 1, Callback: noopCallback}
	opsB := &HookOps{Priority: 2, Callback: noopCallback}

	c.mu.Lock()
	c.insert(&hookEntry{HookOps: *opsA, origOps: opsA})
	c.insert(&hookEntry{HookOps: *opsB, origOps: opsB})
	removed := c.remove(opsA)
	c.mu.Unlock()

	require.NotNil(t, removed)
	assert.Same(t, opsA, removed.origOps)

	entries := c.snapshot()
	require.Len(t, entries, 1)
	assert.Same(t, opsB, entries[0].origOps)
}

func TestChain_RemoveMissingReturnsNil(t *testing.T) {
	c := newChain()
	opsA := &HookOps{Priority: 1, Callback: noopCallback}
	c.mu.Lock()
	removed := c.remove(opsA)
	c.mu.Unlock()
	assert.Nil(t, removed)
}
