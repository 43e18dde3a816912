package nfhook

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespace_RegisterUnregisterRoundTrip(t *testing.T) {
	ns := NewNamespace()
	ops := &HookOps{Family: FamilyIPv4, Hooknum: HookPreRouting, Priority: 0, Callback: acceptCB}

	require.NoError(t, ns.Register(ops))
	assert.True(t, ns.HookPresent(FamilyIPv4, HookPreRouting))

	require.NoError(t, ns.Unregister(ops))
	assert.False(t, ns.HookPresent(FamilyIPv4, HookPreRouting))
}

func TestNamespace_RegisterRejectsNilCallback(t *testing.T) {
	ns := NewNamespace()
	ops := &HookOps{Family: FamilyIPv4, Hooknum: HookPreRouting}
	err := ns.Register(ops)
	assert.True(t, errors.Is(err, ErrNilOps))
}

func TestNamespace_RegisterNetDevRequiresDevice(t *testing.T) {
	ns := NewNamespace()
	ops := &HookOps{Family: FamilyNetDev, Hooknum: HookNetDevIngress, Callback: acceptCB}
	err := ns.Register(ops)
	assert.True(t, errors.Is(err, ErrDeviceRequired))
}

func TestNamespace_RegisterNetDevWrongNamespaceIsNoSuchTarget(t *testing.T) {
	nsA := NewNamespace()
	nsB := NewNamespace()
	dev := nsA.RegisterDevice("eth0")

	ops := &HookOps{Family: FamilyNetDev, Hooknum: HookNetDevIngress, Callback: acceptCB, Device: dev}
	err := nsB.Register(ops)
	assert.True(t, errors.Is(err, ErrNoSuchTarget))
}

func TestNamespace_UnregisterUnknownEntryIsSilent(t *testing.T) {
	ns := NewNamespace()
	ops := &HookOps{Family: FamilyIPv4, Hooknum: HookPreRouting, Callback: acceptCB}
	assert.NoError(t, ns.Unregister(ops))
}

func TestNamespace_RegisterManyRollsBackOnPartialFailure(t *testing.T) {
	ns := NewNamespace()
	good := &HookOps{Family: FamilyIPv4, Hooknum: HookPreRouting, Callback: acceptCB}
	bad := &HookOps{Family: FamilyIPv4, Hooknum: HookPreRouting} // nil callback

	err := ns.RegisterMany([]*HookOps{good, bad})
	require.Error(t, err)
	assert.False(t, ns.HookPresent(FamilyIPv4, HookPreRouting))
}

func TestNamespace_ClosedNamespaceRejectsRegister(t *testing.T) {
	ns := NewNamespace()
	require.NoError(t, ns.Close(context.Background()))

	ops := &HookOps{Family: FamilyIPv4, Hooknum: HookPreRouting, Callback: acceptCB}
	err := ns.Register(ops)
	assert.True(t, errors.Is(err, ErrNamespaceClosed))
}

func TestNamespace_CloseDrainsEveryChain(t *testing.T) {
	ns := NewNamespace()
	for h := 0; h < numHooks-1; h++ {
		ops := &HookOps{Family: FamilyIPv4, Hooknum: HookNum(h), Priority: int32(h), Callback: acceptCB}
		require.NoError(t, ns.Register(ops))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, ns.Close(ctx))

	for h := 0; h < numHooks-1; h++ {
		assert.False(t, ns.HookPresent(FamilyIPv4, HookNum(h)))
	}
}

func TestRegistry_GlobalHooksReplayIntoNewNamespaces(t *testing.T) {
	r := NewRegistry()
	ops := &HookOps{Family: FamilyIPv4, Hooknum: HookPreRouting, Callback: acceptCB}
	require.NoError(t, r.RegisterGlobal(ops))

	ns, err := r.NewNamespace("")
	require.NoError(t, err)
	assert.True(t, ns.HookPresent(FamilyIPv4, HookPreRouting))
}

func TestRegistry_GlobalHooksAlsoApplyToExistingNamespaces(t *testing.T) {
	r := NewRegistry()
	ns, err := r.NewNamespace("")
	require.NoError(t, err)

	ops := &HookOps{Family: FamilyIPv4, Hooknum: HookLocalIn, Callback: acceptCB}
	require.NoError(t, r.RegisterGlobal(ops))
	assert.True(t, ns.HookPresent(FamilyIPv4, HookLocalIn))

	require.NoError(t, r.UnregisterGlobal(ops))
	assert.False(t, ns.HookPresent(FamilyIPv4, HookLocalIn))
}

// TestConcurrentRegisterUnregisterDuringHeavyReadTraffic exercises the
// publication/retirement protocol under concurrent readers and writers:
// readers must never observe a torn chain, and Unregister must not return
// until no reader can still be inside a callback on the retired entry.
func TestConcurrentRegisterUnregisterDuringHeavyReadTraffic(t *testing.T) {
	ns := NewNamespace()
	stable := &HookOps{Family: FamilyIPv4, Hooknum: HookForward, Priority: 0, Callback: acceptCB}
	require.NoError(t, ns.Register(stable))

	stop := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state := NewHookState(ns, FamilyIPv4, HookForward, MinPriority, nil)
			for {
				select {
				case <-stop:
					return
				default:
					pkt := &fakePacket{}
					HookSlow(context.Background(), pkt, state)
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		ops := &HookOps{Family: FamilyIPv4, Hooknum: HookForward, Priority: int32(i + 1), Callback: acceptCB}
		require.NoError(t, ns.Register(ops))
		require.NoError(t, ns.Unregister(ops))
	}

	close(stop)
	wg.Wait()

	entries := ns.chainFor(FamilyIPv4, HookForward).snapshot()
	require.Len(t, entries, 1)
	assert.Same(t, stable, entries[0].origOps)
}
