package nfhook

import "context"

// Packet is the opaque packet handle passed through the engine. The
// packet-buffer API itself is out of scope (spec §1); callers supply
// whatever concrete type their stack uses behind this interface so the
// engine never needs to parse packet contents.
type Packet interface {
	// Release is called exactly once by the engine when it drops the
	// packet (a DROP or unknown verdict, or QUEUE with no collaborator
	// wired) or when a QUEUE hand-off fails without bypass, so the
	// caller's buffer pool can reclaim the packet.
	Release()
}

// Callback inspects (and may mutate) a packet and returns a verdict
// (spec §3, HookOps.callback).
type Callback func(ctx context.Context, private any, pkt Packet, state *HookState) Verdict

// HookOps is the registration descriptor supplied by the caller. It is
// immutable after registration; the registry only ever reads it
// (spec §3).
type HookOps struct {
	Family   Family
	Hooknum  HookNum
	Priority int32
	Callback Callback
	Private  any

	// Device is required and only valid when Family == FamilyNetDev; it
	// identifies the device whose ingress chain receives the hook.
	Device *Device
}

// OkFn is the continuation the engine's caller invokes iff HookSlow
// returns Proceed (spec §3, HookState.okfn).
type OkFn func(ctx context.Context, pkt Packet)

// HookState is the per-invocation traversal state built by the caller of
// the verdict engine (spec §3).
type HookState struct {
	Hook   HookNum
	PF     Family
	Thresh int32

	// InDevice, OutDevice, and Sock are ancillary fields passed through
	// to callbacks unexamined by the engine itself. Net is passed through
	// too, and the engine also uses it for its grace domain, queue
	// collaborator, drop diagnostics, and logger.
	InDevice  *Device
	OutDevice *Device
	Net       *Namespace
	Sock      any

	OkFn OkFn

	chain *Chain
}
