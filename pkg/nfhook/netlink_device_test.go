//go:build linux

package nfhook

import (
	"testing"
)

// TestDevice_ResolveLinkIndexLoopback exercises the rtnetlink path against
// the loopback interface, which exists in every network namespace. It
// skips rather than fails in sandboxes without rtnetlink access.
func TestDevice_ResolveLinkIndexLoopback(t *testing.T) {
	ns := NewNamespace()
	dev := ns.RegisterDevice("lo")

	if err := dev.ResolveLinkIndex(); err != nil {
		t.Skipf("rtnetlink unavailable in this environment: %v", err)
	}
	if dev.IfIndex() == 0 {
		t.Fatal("expected a non-zero interface index for loopback")
	}
}
