// Package nfqueue provides an in-memory reference QueueCollaborator for
// exercising QUEUE verdicts in tests and demos. The real userspace queue
// subsystem (netlink delivery, batching, verdict round-trip) is out of
// scope; this package models only the part of its contract HookSlow
// depends on: accept-or-ErrNoListener, and drop-parked-on-retire.
package nfqueue

import (
	"context"
	"log/slog"
	"sync"

	"github.com/corehook/nfhook/pkg/nfhook"
)

// Listener receives packets queued against one queue id. A Listener must
// not block the caller for long: it runs synchronously inside the engine's
// hot path.
type Listener func(ctx context.Context, pkt nfhook.Packet, entry *nfhook.HookOps, state *nfhook.HookState)

// Memory is an in-process QueueCollaborator. Packets queued against an id
// with no registered Listener are reported via ErrNoListener so the
// engine can honor a verdict's bypass flag (spec-described in
// nfhook.QueueCollaborator).
type Memory struct {
	mu        sync.RWMutex
	listeners map[uint32]Listener
	logger    *slog.Logger
}

// NewMemory creates an empty in-memory queue collaborator.
func NewMemory(logger *slog.Logger) *Memory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Memory{
		listeners: make(map[uint32]Listener),
		logger:    logger.With("component", "nfqueue"),
	}
}

// Listen registers fn as the listener for queueID, replacing any previous
// listener.
func (m *Memory) Listen(queueID uint32, fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners[queueID] = fn
}

// StopListening removes queueID's listener, if any.
func (m *Memory) StopListening(queueID uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.listeners, queueID)
}

// Queue implements nfhook.QueueCollaborator.
func (m *Memory) Queue(ctx context.Context, pkt nfhook.Packet, entry *nfhook.HookOps, state *nfhook.HookState, queueID uint32) error {
	m.mu.RLock()
	fn, ok := m.listeners[queueID]
	m.mu.RUnlock()
	if !ok {
		return nfhook.ErrNoListener
	}
	fn(ctx, pkt, entry, state)
	return nil
}

// DropParked implements nfhook.QueueCollaborator. The in-memory
// collaborator never parks packets beyond a synchronous Queue call, so
// there is nothing to discard; it exists to satisfy the interface and to
// log the retirement for observability.
func (m *Memory) DropParked(entry *nfhook.HookOps) {
	m.logger.Debug("drop_parked", "family", entry.Family, "hook", entry.Hooknum)
}
