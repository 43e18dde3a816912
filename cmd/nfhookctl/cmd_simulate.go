package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/corehook/nfhook/pkg/nfhook"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one synthetic packet through a (family, hook) chain and print the verdict",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().String("family", "ipv4", "protocol family")
	simulateCmd.Flags().String("hook", "pre_routing", "hook point")
	viper.BindPFlag("simulate.family", simulateCmd.Flags().Lookup("family"))
	viper.BindPFlag("simulate.hook", simulateCmd.Flags().Lookup("hook"))

	rootCmd.AddCommand(simulateCmd)
}

// demoPacket is the minimal nfhook.Packet implementation the CLI feeds
// into HookSlow; it has no payload because packet contents are outside
// this module's scope.
type demoPacket struct {
	released bool
}

func (p *demoPacket) Release() { p.released = true }

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	familyFlag, _ := cmd.Flags().GetString("family")
	hookFlag, _ := cmd.Flags().GetString("hook")
	family, ok := familyNames[familyFlag]
	if !ok {
		return fmt.Errorf("unknown family %q", familyFlag)
	}
	hook, ok := hookNames[hookFlag]
	if !ok {
		return fmt.Errorf("unknown hook %q", hookFlag)
	}

	ns := nfhook.NewNamespace(nfhook.WithLogger(logger))
	dev := ns.RegisterDevice("nfhookctl0")

	for i, e := range cfg.Entries {
		ops, err := e.buildOps(dev)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if err := ns.Register(ops); err != nil {
			return fmt.Errorf("entry %d: registering: %w", i, err)
		}
	}

	ctx := context.Background()
	pkt := &demoPacket{}
	proceeded := false
	okfn := func(_ context.Context, _ nfhook.Packet) {
		proceeded = true
	}
	state := nfhook.NewHookState(ns, family, hook, nfhook.MinPriority, okfn)
	if family == nfhook.FamilyNetDev && hook == nfhook.HookNetDevIngress {
		// NETDEV ingress hooks live on the device's own chain.
		state = nfhook.NewDeviceIngressHookState(dev, nfhook.MinPriority, okfn)
	}

	result := nfhook.HookSlow(ctx, pkt, state)
	switch {
	case result.Proceed():
		state.OkFn(ctx, pkt)
		fmt.Println("verdict: ACCEPT (okfn invoked:", proceeded, ")")
	case result.Consumed():
		fmt.Println("verdict: CONSUMED (stolen or queued)")
	default:
		errno, _ := result.Dropped()
		fmt.Println("verdict: DROP errno=", errno, "packet released:", pkt.released)
	}
	return nil
}
