package nfhook

import "context"

// Result is the engine's terminal outcome, mirroring the C ABI contract
// in spec §6 (1 = run okfn, -errno = drop, 0 = consumed/queued) while
// giving Go callers a typed value instead of a magic int.
type Result struct {
	kind  resultKind
	errno int
}

type resultKind uint8

const (
	resultProceed resultKind = iota
	resultDrop
	resultConsumed
)

// Proceed reports whether the caller should now invoke state.OkFn.
func (r Result) Proceed() bool { return r.kind == resultProceed }

// Dropped reports whether the packet was dropped, and if so the errno
// the caller should surface upstream (spec §4.5, §7).
func (r Result) Dropped() (errno int, ok bool) {
	if r.kind != resultDrop {
		return 0, false
	}
	return r.errno, true
}

// Consumed reports whether the packet was stolen or queued — in either
// case the engine's caller must not touch the packet again.
func (r Result) Consumed() bool { return r.kind == resultConsumed }

var (
	resultProceedVal = Result{kind: resultProceed}
)

const defaultDropErrno = 1 // EPERM-equivalent "operation not permitted" default (spec §4.5, §7)

// HookSlow is the hot-path traversal (spec §4.5): it walks state's chain
// from the head, applies the threshold filter, invokes each entry's
// callback, and interprets the returned Verdict. It never blocks, never
// allocates on the steady-state path, and is safe to call concurrently
// from any number of goroutines while the registry concurrently
// registers or deregisters entries on the same chain.
func HookSlow(ctx context.Context, pkt Packet, state *HookState) Result {
	ns := state.Net
	grace := ns.grace
	token := grace.Enter()
	defer grace.Exit(token)

	chain := state.chain
	if chain == nil {
		chain = ns.chainFor(state.PF, state.Hook)
	}

	cur := chain.head.Load()
	for cur != nil {
		if cur.Priority < state.Thresh {
			cur = cur.next.Load()
			continue
		}

		verdict := cur.Callback(ctx, cur.Private, pkt, state)
		for verdict.Kind() == KindRepeat {
			verdict = cur.Callback(ctx, cur.Private, pkt, state)
		}

		switch verdict.Kind() {
		case KindAccept:
			cur = cur.next.Load()

		case KindStop:
			return resultProceedVal

		case KindDrop:
			pkt.Release()
			errno := verdict.DropErrno()
			if errno == 0 {
				errno = defaultDropErrno
			}
			ns.diag.record(state.PF, state.Hook, errno)
			return Result{kind: resultDrop, errno: errno}

		case KindStolen:
			return Result{kind: resultConsumed}

		case KindQueue:
			if ns.queue == nil {
				// No queue subsystem wired: treat as drop with the
				// default errno rather than silently losing the packet.
				pkt.Release()
				ns.diag.record(state.PF, state.Hook, defaultDropErrno)
				return Result{kind: resultDrop, errno: defaultDropErrno}
			}
			err := ns.queue.Queue(ctx, pkt, &cur.HookOps, state, verdict.QueueID())
			if err == nil {
				return Result{kind: resultConsumed}
			}
			if err == ErrNoListener && verdict.Bypass() {
				cur = cur.next.Load()
				continue
			}
			pkt.Release()
			return Result{kind: resultConsumed}

		default:
			ns.logger.Debug("hook_slow: unknown verdict kind, treating as drop",
				"kind", uint8(verdict.Kind()))
			pkt.Release()
			ns.diag.record(state.PF, state.Hook, defaultDropErrno)
			return Result{kind: resultDrop, errno: defaultDropErrno}
		}
	}

	return resultProceedVal
}
