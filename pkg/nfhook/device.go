package nfhook

import "sync/atomic"

// Device models a network interface that owns its own NETDEV ingress
// chain, per spec §3 ("A chain is addressable by (namespace, family,
// hooknum) except for NETDEV ingress chains, which live on the device
// object and are keyed (device)") and §9 ("NETDEV ingress coupling").
type Device struct {
	Name string

	// namespace is the namespace this device currently belongs to; it is
	// consulted by Namespace.findChain to reject hooks targeting a device
	// that has moved to another namespace (spec §4.2).
	namespace *Namespace

	ingress *Chain

	// ingressActive counts NETDEV ingress registrations against this
	// device; fast paths read it to decide whether to enter the engine
	// at all (spec §4.3 step 4, §6).
	ingressActive atomic.Int32

	// ifIndex caches the host interface index resolved via rtnetlink on
	// Linux (netlink_device.go); zero means unresolved or non-Linux.
	ifIndex atomic.Int32
}

// NewDevice creates a device owned by ns with an empty ingress chain.
func NewDevice(ns *Namespace, name string) *Device {
	return &Device{Name: name, namespace: ns, ingress: newChain()}
}

// Namespace returns the namespace the device currently belongs to.
func (d *Device) Namespace() *Namespace { return d.namespace }

// Reparent moves the device to a different namespace. Registrations made
// against the old namespace remain on the device's single ingress chain;
// callers are expected to drain hooks before reparenting if that is not
// desired, matching real netdev migration semantics which are out of
// scope for this module.
func (d *Device) Reparent(ns *Namespace) { d.namespace = ns }

// IngressActive reports whether any NETDEV ingress hook is currently
// registered on this device (spec §6).
func (d *Device) IngressActive() bool { return d.ingressActive.Load() > 0 }

// IfIndex returns the host interface index last resolved by
// ResolveLinkIndex (Linux only), or 0 if never resolved.
func (d *Device) IfIndex() int32 { return d.ifIndex.Load() }
