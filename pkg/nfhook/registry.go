package nfhook

import (
	"github.com/corehook/nfhook/internal/errx"
)

// findChain resolves the chain HookOps targets (spec §4.2). For non-NETDEV
// families it is the namespace's (family, hooknum) slot; for NETDEV
// ingress it is the device's own chain, and only if the device belongs
// to this namespace.
func (ns *Namespace) findChain(ops *HookOps) (*Chain, error) {
	if ops.Family == FamilyNetDev {
		if ops.Hooknum != HookNetDevIngress {
			return nil, ErrNoSuchTarget
		}
		if ops.Device == nil {
			return nil, ErrDeviceRequired
		}
		if ops.Device.Namespace() != ns {
			return nil, ErrNoSuchTarget
		}
		return ops.Device.ingress, nil
	}
	if int(ops.Family) >= numFamilies || int(ops.Hooknum) >= numHooks {
		return nil, ErrNoSuchTarget
	}
	return ns.chains[ops.Family][ops.Hooknum], nil
}

func validateOps(ops *HookOps) error {
	if ops == nil || ops.Callback == nil {
		return ErrNilOps
	}
	if ops.Family == FamilyNetDev && ops.Device == nil {
		return ErrDeviceRequired
	}
	return nil
}

// Register adds a single hook to the namespace's matching chain
// (spec §4.3). The returned error is ErrNoSuchTarget, ErrDeviceRequired,
// ErrNilOps, ErrNamespaceClosed, or nil.
func (ns *Namespace) Register(ops *HookOps) error {
	if ns.closed.Load() {
		return ErrNamespaceClosed
	}
	if err := validateOps(ops); err != nil {
		return err
	}

	chain, err := ns.findChain(ops)
	if err != nil {
		return err
	}

	entry := &hookEntry{HookOps: *ops, origOps: ops}

	chain.mu.Lock()
	chain.insert(entry)
	chain.mu.Unlock()

	if ops.Family == FamilyNetDev {
		ops.Device.ingressActive.Add(1)
	}
	ns.present[ops.Family][ops.Hooknum].Add(1)

	ns.logger.Debug("hook registered",
		"family", ops.Family, "hook", ops.Hooknum, "priority", ops.Priority)
	ns.syncAFInfo(ops.Family, ops.Hooknum, chain)
	return nil
}

// Unregister removes the hook identified by ops's address from its chain
// (spec §4.3). If the chain cannot be resolved, Unregister returns nil
// silently, matching the source's "resolve chain; if absent, return
// silently" step. If the entry is not found in its chain, a diagnostic is
// logged and Unregister returns nil (spec §7: "the former returns
// silently to the caller").
func (ns *Namespace) Unregister(ops *HookOps) error {
	chain, err := ns.findChain(ops)
	if err != nil {
		return nil
	}

	chain.mu.Lock()
	entry := chain.remove(ops)
	chain.mu.Unlock()

	if entry == nil {
		ns.logger.Warn("unregister: entry not found in chain",
			"family", ops.Family, "hook", ops.Hooknum)
		return nil
	}

	if ops.Family == FamilyNetDev {
		ops.Device.ingressActive.Add(-1)
	}
	ns.present[ops.Family][ops.Hooknum].Add(-1)

	// First quiescence: no in-flight hook_slow traversal can still be
	// looking at this entry through the chain's forward links.
	ns.grace.Synchronize()

	if ns.queue != nil {
		ns.queue.DropParked(ops)
	}

	// Second quiescence: no CPU is still dereferencing the entry through
	// a queued-verdict path that had already captured the entry pointer
	// before DropParked ran (spec §4.4, §4.3 step 4).
	ns.grace.Synchronize()

	ns.logger.Debug("hook unregistered", "family", ops.Family, "hook", ops.Hooknum)
	ns.syncAFInfo(ops.Family, ops.Hooknum, chain)
	return nil
}

// RegisterMany registers entries in order; on partial failure it rolls
// back all previously successful registrations in reverse order and
// returns the first error (spec §4.3).
func (ns *Namespace) RegisterMany(all []*HookOps) error {
	for i, ops := range all {
		if err := ns.Register(ops); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = ns.Unregister(all[j])
			}
			return errx.With(err, ": registering entry %d of %d", i, len(all))
		}
	}
	return nil
}

// UnregisterMany unregisters entries pairwise, in the order given.
func (ns *Namespace) UnregisterMany(all []*HookOps) error {
	for _, ops := range all {
		if err := ns.Unregister(ops); err != nil {
			return err
		}
	}
	return nil
}
