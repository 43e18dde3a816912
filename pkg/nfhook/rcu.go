package nfhook

import (
	"runtime"
	"sync/atomic"
)

// graceDomain implements the publication/retirement protocol from spec
// §4.4 using a sharded read-indicator with a writer-side wait loop — one
// of the three concrete strategies the design notes (spec §9) call out as
// an acceptable substitute for the original's per-CPU RCU: "a read-indicator
// counter with a writer-side wait loop".
//
// Readers never block: Enter is two atomic adds (shard pick and shard
// count) and Exit one, with no locks and no allocation. A mutator that wants to retire an entry calls Synchronize
// after publishing its atomic pointer update; Synchronize returns only
// once every shard has, at some point during the call, shown a zero count
// — which is guaranteed to happen after every reader that began traversing
// before the mutation's publish has exited, because Enter is the very
// first thing a traversal does and Exit the very last (engine.go).
//
// This does not reclaim memory by hand — Go's GC owns that — it exists
// solely to let a mutator know when it is safe to act on the externally
// visible fact that "no CPU is still invoking this entry's callback"
// (needed before telling the queue subsystem to drop parked packets, or
// before returning from Unregister to a caller who is about to free
// resources the callback's Private pointed at).
//
// Because shard selection is round-robin rather than per-CPU-pinned, a
// pathological, never-idle stream of concurrent readers could in theory
// keep every shard non-zero indefinitely; the spec explicitly admits this
// simplification; see DESIGN.md.
type graceDomain struct {
	shards [numGraceShards]paddedCounter
	next   atomic.Uint64
}

const numGraceShards = 32

// paddedCounter pads an atomic.Int64 to a cache line to keep unrelated
// shards from false-sharing under concurrent Enter/Exit.
type paddedCounter struct {
	n atomic.Int64
	_ [56]byte
}

func newGraceDomain() *graceDomain { return &graceDomain{} }

// Enter marks entry into a reader region and returns a token Exit needs.
// Wait-free: two atomic adds, no branches that can block.
func (d *graceDomain) Enter() int {
	idx := int(d.next.Add(1) % numGraceShards)
	d.shards[idx].n.Add(1)
	return idx
}

// Exit marks exit from the reader region identified by token.
func (d *graceDomain) Exit(token int) {
	d.shards[token].n.Add(-1)
}

// Synchronize blocks the calling (mutator) goroutine until every shard has
// been observed at zero, i.e. until every reader that entered before this
// call was made has exited (spec §4.4, §5: "A completed deregistration
// observed on one CPU implies every other CPU has finished any traversal
// that could have observed the removed entry").
func (d *graceDomain) Synchronize() {
	for i := range d.shards {
		for d.shards[i].n.Load() != 0 {
			runtime.Gosched()
		}
	}
}
