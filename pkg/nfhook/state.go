package nfhook

// NewHookState builds the traversal state for a (family, hook) chain
// owned by ns (spec §3, HookState). thresh is the minimum priority to
// run; pass MinPriority to run every registered entry.
func NewHookState(ns *Namespace, family Family, hook HookNum, thresh int32, okfn OkFn) *HookState {
	return &HookState{
		Net:    ns,
		PF:     family,
		Hook:   hook,
		Thresh: thresh,
		OkFn:   okfn,
		chain:  ns.chainFor(family, hook),
	}
}

// NewDeviceIngressHookState builds traversal state for a device's NETDEV
// ingress chain (spec §3, §4.2's device-keyed chain).
func NewDeviceIngressHookState(dev *Device, thresh int32, okfn OkFn) *HookState {
	return &HookState{
		Net:      dev.namespace,
		PF:       FamilyNetDev,
		Hook:     HookNetDevIngress,
		Thresh:   thresh,
		InDevice: dev,
		OkFn:     okfn,
		chain:    dev.ingress,
	}
}

// MinPriority runs every entry regardless of priority (spec §3,
// HookState.thresh: "entries with priority < thresh are skipped").
const MinPriority int32 = -1 << 31
