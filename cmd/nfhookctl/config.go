package main

import (
	"encoding/json"
	"fmt"

	"github.com/corehook/nfhook/pkg/nfhook"
	"github.com/corehook/nfhook/pkg/nfplugin"
)

// ChainConfig is the declarative shape nfhookctl loads from YAML/JSON: a
// flat list of entries to register into one namespace, each naming a
// pkg/nfplugin factory type rather than embedding Go code.
type ChainConfig struct {
	Entries []EntryConfig `mapstructure:"entries"`
}

// EntryConfig describes a single HookOps registration.
type EntryConfig struct {
	Family   string                 `mapstructure:"family"`
	Hook     string                 `mapstructure:"hook"`
	Priority int32                  `mapstructure:"priority"`
	Plugin   string                 `mapstructure:"plugin"`
	Config   map[string]interface{} `mapstructure:"config"`
}

var familyNames = map[string]nfhook.Family{
	"unspec": nfhook.FamilyUnspec,
	"ipv4":   nfhook.FamilyIPv4,
	"ipv6":   nfhook.FamilyIPv6,
	"arp":    nfhook.FamilyARP,
	"bridge": nfhook.FamilyBridge,
	"decnet": nfhook.FamilyDECnet,
	"netdev": nfhook.FamilyNetDev,
}

var hookNames = map[string]nfhook.HookNum{
	"pre_routing":    nfhook.HookPreRouting,
	"local_in":       nfhook.HookLocalIn,
	"forward":        nfhook.HookForward,
	"local_out":      nfhook.HookLocalOut,
	"post_routing":   nfhook.HookPostRouting,
	"netdev_ingress": nfhook.HookNetDevIngress,
}

// buildOps resolves e's family/hook names and constructs its Callback via
// nfplugin, returning a HookOps ready for Namespace.Register. device is
// only consulted for netdev-family entries.
func (e EntryConfig) buildOps(device *nfhook.Device) (*nfhook.HookOps, error) {
	family, ok := familyNames[e.Family]
	if !ok {
		return nil, fmt.Errorf("unknown family %q", e.Family)
	}
	hook, ok := hookNames[e.Hook]
	if !ok {
		return nil, fmt.Errorf("unknown hook %q", e.Hook)
	}

	rawConfig, err := json.Marshal(e.Config)
	if err != nil {
		return nil, fmt.Errorf("re-encoding plugin config: %w", err)
	}

	callback, err := nfplugin.Build(e.Plugin, rawConfig, logger)
	if err != nil {
		return nil, err
	}

	ops := &nfhook.HookOps{
		Family:   family,
		Hooknum:  hook,
		Priority: e.Priority,
		Callback: callback,
	}
	if family == nfhook.FamilyNetDev {
		ops.Device = device
	}
	return ops, nil
}
