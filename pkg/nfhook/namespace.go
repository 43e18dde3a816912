package nfhook

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Namespace is an isolated per-tenant instance of the full chain table
// (spec §3, §GLOSSARY). It owns one Chain per (family, hooknum) pair
// (except NETDEV ingress, which is keyed by Device) and its own grace
// domain for the publication protocol.
type Namespace struct {
	ID string

	chains  [numFamilies][numHooks]*Chain
	present [numFamilies][numHooks]atomic.Int32

	devicesMu sync.RWMutex
	devices   map[string]*Device

	afinfoMu sync.Mutex
	afinfo   map[Family]AFInfo

	conntrack atomic.Pointer[ConntrackTrampolines]

	grace  *graceDomain
	logger *slog.Logger
	queue  QueueCollaborator
	diag   *dropRing

	closed atomic.Bool
}

// NamespaceOption configures a Namespace at creation time.
type NamespaceOption func(*Namespace)

// WithQueueCollaborator wires the userspace-queue collaborator the engine
// dispatches QUEUE verdicts to (spec §6).
func WithQueueCollaborator(q QueueCollaborator) NamespaceOption {
	return func(ns *Namespace) { ns.queue = q }
}

// WithLogger overrides the namespace's *slog.Logger (defaults to
// slog.Default()).
func WithLogger(l *slog.Logger) NamespaceOption {
	return func(ns *Namespace) { ns.logger = l }
}

// WithDropDiagnostics attaches the optional drop-diagnostic ring (spec §9,
// explicitly optional and out of the source's core): one mutex-guarded
// ring of capacity records shared by the whole namespace.
func WithDropDiagnostics(capacity int) NamespaceOption {
	return func(ns *Namespace) { ns.diag = newDropRing(capacity) }
}

func newEmptyNamespace(id string, opts ...NamespaceOption) *Namespace {
	ns := &Namespace{
		ID:      id,
		devices: make(map[string]*Device),
		afinfo:  make(map[Family]AFInfo),
		grace:   newGraceDomain(),
		logger:  slog.Default(),
	}
	for f := 0; f < numFamilies; f++ {
		for h := 0; h < numHooks; h++ {
			ns.chains[f][h] = newChain()
		}
	}
	for _, opt := range opts {
		opt(ns)
	}
	ns.logger = ns.logger.With("component", "nfhook", "namespace", id)
	return ns
}

// NewNamespace allocates a standalone namespace not tracked by any
// Registry (used by tests and by callers that don't need global-hook
// replay). Prefer Registry.NewNamespace in production code so global
// hooks (spec §3 "Global hooks list") get replayed in.
func NewNamespace(opts ...NamespaceOption) *Namespace {
	return newEmptyNamespace(uuid.NewString(), opts...)
}

// RegisterDevice attaches a device to the namespace so NETDEV ingress
// hooks can target it (spec §4.2's "ops.device.ingress_chain iff the
// device belongs to namespace").
func (ns *Namespace) RegisterDevice(name string) *Device {
	ns.devicesMu.Lock()
	defer ns.devicesMu.Unlock()
	if d, ok := ns.devices[name]; ok {
		return d
	}
	d := NewDevice(ns, name)
	ns.devices[name] = d
	return d
}

// Device looks up a device previously registered with RegisterDevice.
func (ns *Namespace) Device(name string) (*Device, bool) {
	ns.devicesMu.RLock()
	defer ns.devicesMu.RUnlock()
	d, ok := ns.devices[name]
	return d, ok
}

// HookPresent reports whether any hook is currently registered at
// (family, hook) — the "branch-predictor-friendly static gate" callers
// use to skip the engine entirely (spec §6, SPEC_FULL §C).
func (ns *Namespace) HookPresent(family Family, hook HookNum) bool {
	if int(family) >= numFamilies || int(hook) >= numHooks {
		return false
	}
	return ns.present[family][hook].Load() > 0
}

// RegisterAFInfo installs a protocol-family helper table entry under
// afinfoMu (spec §6). It is not published lock-free through the grace
// domain: lookups take the same mutex.
func (ns *Namespace) RegisterAFInfo(info AFInfo) {
	ns.afinfoMu.Lock()
	defer ns.afinfoMu.Unlock()
	ns.afinfo[info.Family()] = info
}

// UnregisterAFInfo removes a protocol-family helper, waiting a quiescent
// period before returning so no in-flight callback is still dereferencing
// it (spec §6).
func (ns *Namespace) UnregisterAFInfo(family Family) {
	ns.afinfoMu.Lock()
	delete(ns.afinfo, family)
	ns.afinfoMu.Unlock()
	ns.grace.Synchronize()
}

func (ns *Namespace) afinfoFor(family Family) (AFInfo, bool) {
	ns.afinfoMu.Lock()
	defer ns.afinfoMu.Unlock()
	info, ok := ns.afinfo[family]
	return info, ok
}

// syncAFInfo notifies the family's registered AFInfo helper (if any) that
// chain's occupancy changed, so an external mirror (e.g. NFTablesMirror)
// can keep itself consistent. Errors are logged rather than propagated:
// the in-process chain table is always the source of truth, and a mirror
// sync failure must not roll back a registration that already succeeded.
func (ns *Namespace) syncAFInfo(family Family, hook HookNum, chain *Chain) {
	info, ok := ns.afinfoFor(family)
	if !ok {
		return
	}
	if err := info.Sync(ns, hook, chain); err != nil {
		ns.logger.Warn("afinfo sync failed", "family", family, "hook", hook, "error", err)
	}
}

// SetConntrackTrampolines publishes the conntrack attach/destroy function
// pointers atomically (spec §6, §9 "Global function-pointer trampolines").
func (ns *Namespace) SetConntrackTrampolines(t *ConntrackTrampolines) {
	ns.conntrack.Store(t)
}

// ConntrackTrampolines returns the currently published trampolines, or
// nil if none are set. Callers must invoke it from within a reader
// region (the engine does this implicitly whenever it is traversing).
func (ns *Namespace) ConntrackTrampolines() *ConntrackTrampolines {
	return ns.conntrack.Load()
}

func (ns *Namespace) chainFor(family Family, hook HookNum) *Chain {
	return ns.chains[family][hook]
}

// DumpDiagnostics returns the CBOR-encoded contents of the namespace's
// drop-diagnostic ring, or nil if WithDropDiagnostics was never set.
func (ns *Namespace) DumpDiagnostics() ([]byte, error) {
	return ns.diag.Dump()
}

// drain unregisters every remaining entry across all chains, used at
// namespace teardown (spec §4.6). Each (family, hook) chain has its own
// mutex, so draining them concurrently via errgroup is safe and keeps
// teardown latency bounded by the largest single chain rather than the
// sum of all of them.
func (ns *Namespace) drain(ctx context.Context) error {
	type target struct {
		family Family
		hook   HookNum
	}
	var targets []target
	for f := 0; f < numFamilies; f++ {
		for h := 0; h < numHooks; h++ {
			if Family(f) == FamilyNetDev && HookNum(h) == HookNetDevIngress {
				continue
			}
			targets = append(targets, target{Family(f), HookNum(h)})
		}
	}

	g, _ := errgroup.WithContext(ctx)
	for _, t := range targets {
		t := t
		g.Go(func() error {
			chain := ns.chainFor(t.family, t.hook)
			for {
				entries := chain.snapshot()
				if len(entries) == 0 {
					return nil
				}
				head := entries[0]
				if err := ns.Unregister(head.origOps); err != nil {
					return err
				}
			}
		})
	}

	ns.devicesMu.RLock()
	devices := make([]*Device, 0, len(ns.devices))
	for _, d := range ns.devices {
		devices = append(devices, d)
	}
	ns.devicesMu.RUnlock()
	for _, d := range devices {
		d := d
		g.Go(func() error {
			for {
				entries := d.ingress.snapshot()
				if len(entries) == 0 {
					return nil
				}
				head := entries[0]
				if err := ns.Unregister(head.origOps); err != nil {
					return err
				}
			}
		})
	}

	return g.Wait()
}

// Close tears down the namespace: every remaining hook is unregistered
// and the namespace is marked closed, after which Register returns
// ErrNamespaceClosed (spec §4.6). Unregister keeps working on a closed
// namespace, since draining relies on it.
func (ns *Namespace) Close(ctx context.Context) error {
	if !ns.closed.CompareAndSwap(false, true) {
		return nil
	}
	return ns.drain(ctx)
}
