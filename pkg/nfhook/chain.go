package nfhook

import (
	"sync"
	"sync/atomic"
)

// hookEntry is the registry-internal node created at registration and
// destroyed only after the publication protocol's quiescence following
// deregistration (spec §3). It embeds a copy of the caller's HookOps and
// keeps origOps solely to identify itself at deregistration time.
type hookEntry struct {
	HookOps
	origOps *HookOps
	next    atomic.Pointer[hookEntry]
}

// Chain is a singly-linked (forward-only) ordered sequence of hookEntry, sorted ascending by priority, stable by
// insertion order on ties (spec §3, §4.2).
//
// Readers walk the forward `next` chain through atomic loads only, never
// taking the mutex; this is the "atomic publication of singly-linked
// forward pointers" half of the publication protocol (spec §4.4). The
// mutex below serializes writers only.
type Chain struct {
	head atomic.Pointer[hookEntry]
	mu   sync.Mutex // the registry mutex, per chain (spec §4.3, §5)
}

func newChain() *Chain { return &Chain{} }

// insert splices entry into the chain ahead of the first existing entry
// with strictly greater priority, preserving insertion order on ties
// (spec §4.2). Caller must hold c.mu.
func (c *Chain) insert(entry *hookEntry) {
	var prev *hookEntry
	cur := c.head.Load()
	for cur != nil && cur.Priority <= entry.Priority {
		prev = cur
		cur = cur.next.Load()
	}
	entry.next.Store(cur)
	if prev == nil {
		c.head.Store(entry)
	} else {
		prev.next.Store(entry)
	}
}

// remove scans for the entry whose origOps pointer equals origOps,
// unlinks it, and returns it. Caller must hold c.mu. The unlink is a
// single atomic pointer store so a concurrent lock-free reader sees
// either the pre- or post-removal successor, never a torn value
// (spec §4.2, §4.4).
func (c *Chain) remove(origOps *HookOps) *hookEntry {
	var prev *hookEntry
	cur := c.head.Load()
	for cur != nil {
		if cur.origOps == origOps {
			next := cur.next.Load()
			if prev == nil {
				c.head.Store(next)
			} else {
				prev.next.Store(next)
			}
			return cur
		}
		prev = cur
		cur = cur.next.Load()
	}
	return nil
}

// snapshot returns the chain's entries in order, for diagnostics and
// tests only; the hot path never calls this.
func (c *Chain) snapshot() []*hookEntry {
	var out []*hookEntry
	for cur := c.head.Load(); cur != nil; cur = cur.next.Load() {
		out = append(out, cur)
	}
	return out
}
