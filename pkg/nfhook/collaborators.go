package nfhook

import "context"

// QueueCollaborator is the external userspace-queue subsystem the engine
// hands QUEUE verdicts to (spec §6). The concrete nf_queue subsystem is
// out of scope; callers wire in their own implementation, or use
// pkg/nfqueue's in-memory reference implementation.
type QueueCollaborator interface {
	// Queue takes ownership of pkt on success. ErrNoListener signals that
	// nothing is listening on queueID; the engine honors the verdict's
	// bypass flag in that case (spec §4.5, §8 "Queue bypass").
	Queue(ctx context.Context, pkt Packet, entry *HookOps, state *HookState, queueID uint32) error

	// DropParked is invoked by the registry after the first quiescence
	// following an Unregister, to let the queue subsystem discard any
	// packets still parked against the retired entry (spec §4.3 step 4,
	// §6).
	DropParked(entry *HookOps)
}

// ErrNoListener is returned by a QueueCollaborator.Queue implementation
// when queueID has no registered listener.
var ErrNoListener = errNoListener{}

type errNoListener struct{}

func (errNoListener) Error() string { return "nfhook: no listener for queue id" }

// ConntrackTrampolines models the two optional, atomically-swappable
// function pointers the original publishes under the same reclamation
// scheme (spec §6): attach a new packet's conntrack entry from an old
// one, and destroy a conntrack entry. Both are invoked from the data path
// under a reader region, so implementations must not block.
type ConntrackTrampolines struct {
	Attach  func(newPkt, oldPkt Packet)
	Destroy func(conntrack any)
}

// AFInfo is the per-family helper slot (spec §6). This interface carries
// only Family and Sync; checksum, reassembly, and route helpers are not
// part of it. It is out of scope beyond this interface and the Linux
// nftables adapter in linux_nft.go.
type AFInfo interface {
	Family() Family
	// Sync is called by the registry after a publish so a concrete
	// AFInfo implementation (e.g. a real Linux nftables mirror) can keep
	// an external representation of the chain in sync.
	Sync(ns *Namespace, hook HookNum, chain *Chain) error
}
