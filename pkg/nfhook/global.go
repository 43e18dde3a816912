package nfhook

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/corehook/nfhook/internal/errx"
	"github.com/google/uuid"
)

// Registry owns every Namespace in the process plus the list of globally
// registered hooks that get replayed into each newly created namespace
// (spec §3 "Global hooks list", §4.3 register_global/unregister_global,
// §4.6 namespace lifecycle).
//
// mu is the "namespace-enumeration lock" spec §4.3/§5 call out separately
// from the per-chain registry mutex: it is only held while walking the
// namespace set, never while a single namespace's chain mutex is held for
// longer than one Register/Unregister call.
type Registry struct {
	mu         sync.Mutex
	namespaces map[string]*Namespace
	globals    []*HookOps
	logger     *slog.Logger

	nsOpts []NamespaceOption
}

// NewRegistry creates an empty Registry. opts are applied to every
// namespace the registry subsequently creates (logger, queue
// collaborator, diagnostics ring, ...).
func NewRegistry(opts ...NamespaceOption) *Registry {
	return &Registry{
		namespaces: make(map[string]*Namespace),
		logger:     slog.Default().With("component", "nfhook"),
		nsOpts:     opts,
	}
}

// NewNamespace allocates an empty (family×hooknum) chain table, then
// replays the global hooks list into it (spec §4.6). A global hook that
// reports ErrNoSuchTarget for this namespace is tolerated, since the
// namespace may simply lack that target (e.g. no matching device yet);
// any other error aborts the new namespace and is returned.
func (r *Registry) NewNamespace(id string) (*Namespace, error) {
	if id == "" {
		id = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ns := newEmptyNamespace(id, r.nsOpts...)
	for _, ops := range r.globals {
		if err := ns.Register(ops); err != nil && !errors.Is(err, ErrNoSuchTarget) {
			return nil, errx.With(err, ": replaying global hook into namespace %q", id)
		}
	}
	r.namespaces[id] = ns
	return ns, nil
}

// Namespace looks up a previously created namespace by id.
func (r *Registry) Namespace(id string) (*Namespace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ns, ok := r.namespaces[id]
	return ns, ok
}

// Namespaces returns a snapshot of all live namespaces.
func (r *Registry) Namespaces() []*Namespace {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Namespace, 0, len(r.namespaces))
	for _, ns := range r.namespaces {
		out = append(out, ns)
	}
	return out
}

// TeardownNamespace drains every chain in ns and removes it from the
// registry (spec §4.6).
func (r *Registry) TeardownNamespace(ctx context.Context, ns *Namespace) error {
	r.mu.Lock()
	delete(r.namespaces, ns.ID)
	r.mu.Unlock()
	return ns.Close(ctx)
}

// RegisterGlobal registers ops into every existing namespace, tolerating
// ErrNoSuchTarget per-namespace; on any other error it rolls back every
// namespace it had already succeeded against, in reverse order, and
// returns that error without appending to the global list (spec §4.3
// register_global).
func (r *Registry) RegisterGlobal(ops *HookOps) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	registered := make([]*Namespace, 0, len(r.namespaces))
	for _, ns := range r.namespaces {
		if err := ns.Register(ops); err != nil {
			if errors.Is(err, ErrNoSuchTarget) {
				continue
			}
			for i := len(registered) - 1; i >= 0; i-- {
				_ = registered[i].Unregister(ops)
			}
			return err
		}
		registered = append(registered, ns)
	}

	r.globals = append(r.globals, ops)
	return nil
}

// UnregisterGlobal removes ops from the global list and unregisters it
// from every namespace (spec §4.3 unregister_global).
func (r *Registry) UnregisterGlobal(ops *HookOps) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, g := range r.globals {
		if g == ops {
			r.globals = append(r.globals[:i], r.globals[i+1:]...)
			break
		}
	}
	for _, ns := range r.namespaces {
		_ = ns.Unregister(ops)
	}
	return nil
}
