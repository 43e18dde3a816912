package nfhook

// Family is the protocol family tag a hook is registered against
// (spec §3, HookOps.family).
type Family int

const (
	FamilyUnspec Family = iota
	FamilyIPv4
	FamilyIPv6
	FamilyARP
	FamilyBridge
	FamilyDECnet
	FamilyNetDev
)

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	case FamilyARP:
		return "arp"
	case FamilyBridge:
		return "bridge"
	case FamilyDECnet:
		return "decnet"
	case FamilyNetDev:
		return "netdev"
	default:
		return "unspec"
	}
}

// numFamilies bounds the per-namespace chain table's family axis.
const numFamilies = int(FamilyNetDev) + 1

// HookNum is the interception point within a family (spec §3, §GLOSSARY).
type HookNum int

const (
	HookPreRouting HookNum = iota
	HookLocalIn
	HookForward
	HookLocalOut
	HookPostRouting
	// HookNetDevIngress is only meaningful under FamilyNetDev; its chain
	// lives on the Device, not in the namespace's family×hook table
	// (spec §4.2).
	HookNetDevIngress
)

func (h HookNum) String() string {
	switch h {
	case HookPreRouting:
		return "pre_routing"
	case HookLocalIn:
		return "local_in"
	case HookForward:
		return "forward"
	case HookLocalOut:
		return "local_out"
	case HookPostRouting:
		return "post_routing"
	case HookNetDevIngress:
		return "netdev_ingress"
	default:
		return "unknown"
	}
}

// numHooks bounds the per-namespace chain table's hook axis.
const numHooks = int(HookNetDevIngress) + 1
