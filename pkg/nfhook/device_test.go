package nfhook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevice_IngressActiveTracksRegistrations(t *testing.T) {
	ns := NewNamespace()
	dev := ns.RegisterDevice("eth0")
	assert.False(t, dev.IngressActive())

	ops := &HookOps{Family: FamilyNetDev, Hooknum: HookNetDevIngress, Callback: acceptCB, Device: dev}
	require.NoError(t, ns.Register(ops))
	assert.True(t, dev.IngressActive())

	require.NoError(t, ns.Unregister(ops))
	assert.False(t, dev.IngressActive())
}

func TestDevice_ReparentMovesOwnership(t *testing.T) {
	nsA := NewNamespace()
	nsB := NewNamespace()
	dev := nsA.RegisterDevice("eth0")

	dev.Reparent(nsB)
	assert.Same(t, nsB, dev.Namespace())

	ops := &HookOps{Family: FamilyNetDev, Hooknum: HookNetDevIngress, Callback: acceptCB, Device: dev}
	require.NoError(t, nsB.Register(ops))
}

func TestHookSlow_DeviceIngressChain(t *testing.T) {
	ns := NewNamespace()
	dev := ns.RegisterDevice("eth0")
	var ran bool
	ops := &HookOps{
		Family: FamilyNetDev, Hooknum: HookNetDevIngress, Device: dev,
		Callback: func(_ context.Context, _ any, _ Packet, _ *HookState) Verdict {
			ran = true
			return Accept
		},
	}
	require.NoError(t, ns.Register(ops))

	pkt := &fakePacket{}
	state := NewDeviceIngressHookState(dev, MinPriority, nil)
	result := HookSlow(context.Background(), pkt, state)

	assert.True(t, result.Proceed())
	assert.True(t, ran)
}
