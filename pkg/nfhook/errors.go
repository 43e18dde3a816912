package nfhook

import "errors"

// Errors returned by registration and chain-store operations (spec §7).
var (
	// ErrOutOfMemory mirrors the source's register_internal allocation
	// failure path (spec §4.3 step 1). Go's allocator reports failure by
	// panicking rather than returning an error, so nothing in this package
	// currently produces ErrOutOfMemory; it is kept for callers that wrap
	// Register with their own bounded entry pool.
	ErrOutOfMemory = errors.New("nfhook: out of memory")

	// ErrNoSuchTarget means the (namespace, family, hook, device) target
	// does not resolve to a chain. Cross-namespace replay tolerates this
	// error specifically (spec §4.3, §7).
	ErrNoSuchTarget = errors.New("nfhook: no such target")

	// ErrEntryNotFound names the case where Unregister cannot find the
	// entry it was asked to remove. Nothing in this package currently
	// returns it: Unregister logs a diagnostic and returns nil instead
	// (spec §4.3 step 2, §7).
	ErrEntryNotFound = errors.New("nfhook: entry not found in chain")

	// ErrNilOps is a programming-error guard: Register was called with a
	// nil HookOps or nil Callback.
	ErrNilOps = errors.New("nfhook: nil hook ops or callback")

	// ErrDeviceRequired is returned when family is NetDev but Device is
	// unset on the HookOps (spec §3, HookOps.device).
	ErrDeviceRequired = errors.New("nfhook: device required for netdev family")

	// ErrNamespaceClosed is returned by registry operations against a
	// namespace that has already been torn down.
	ErrNamespaceClosed = errors.New("nfhook: namespace closed")
)
