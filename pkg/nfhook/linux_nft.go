//go:build linux

package nfhook

import (
	"fmt"

	"github.com/google/nftables"
)

// nftHookMap translates this package's HookNum into the nftables base
// chain hook it corresponds to; NETDEV ingress has no IPv4 nftables
// analogue and is left unmirrored.
var nftHookMap = map[HookNum]*nftables.ChainHook{
	HookPreRouting:  nftables.ChainHookPrerouting,
	HookLocalIn:     nftables.ChainHookInput,
	HookForward:     nftables.ChainHookForward,
	HookLocalOut:    nftables.ChainHookOutput,
	HookPostRouting: nftables.ChainHookPostrouting,
}

// NFTablesMirror is an AFInfo that mirrors IPv4 chain occupancy into a
// real nftables table: whenever the registry publishes a change to one of
// this namespace's IPv4 chains, Sync ensures a matching nftables base
// chain exists (creating it on first use) so external tooling (iptables
// compat, nft list ruleset) can observe that the chain is non-empty. It
// does not mirror individual rules — actual packet matching still flows
// through HookSlow; this exists purely to make occupancy visible outside
// the process, the way the teacher's NFTablesRules makes VM port-forward
// rules visible to the host's nftables ruleset.
type NFTablesMirror struct {
	tableName string
	conn      *nftables.Conn
	table     *nftables.Table
	chains    map[HookNum]*nftables.Chain
}

// NewNFTablesMirror opens an nftables connection and creates an empty
// table named tableName in the IPv4 family.
func NewNFTablesMirror(tableName string) (*NFTablesMirror, error) {
	conn, err := nftables.New()
	if err != nil {
		return nil, fmt.Errorf("nfhook: opening nftables connection: %w", err)
	}
	table := conn.AddTable(&nftables.Table{
		Family: nftables.TableFamilyIPv4,
		Name:   tableName,
	})
	if err := conn.Flush(); err != nil {
		return nil, fmt.Errorf("nfhook: creating mirror table %q: %w", tableName, err)
	}
	return &NFTablesMirror{
		tableName: tableName,
		conn:      conn,
		table:     table,
		chains:    make(map[HookNum]*nftables.Chain),
	}, nil
}

// Family reports the protocol family this AFInfo mirrors (spec §6).
func (m *NFTablesMirror) Family() Family { return FamilyIPv4 }

// Sync ensures a base chain exists in the mirror table for hook, and
// removes it once the namespace's chain is empty again, keeping the
// external ruleset's shape consistent with registration state.
func (m *NFTablesMirror) Sync(ns *Namespace, hook HookNum, chain *Chain) error {
	nfHook, ok := nftHookMap[hook]
	if !ok {
		return nil
	}

	occupied := len(chain.snapshot()) > 0
	_, exists := m.chains[hook]

	switch {
	case occupied && !exists:
		c := m.conn.AddChain(&nftables.Chain{
			Name:     m.tableName + "_" + hook.String(),
			Table:    m.table,
			Type:     nftables.ChainTypeFilter,
			Hooknum:  nfHook,
			Priority: nftables.ChainPriorityFilter,
		})
		if err := m.conn.Flush(); err != nil {
			return fmt.Errorf("nfhook: mirroring chain %s: %w", hook, err)
		}
		m.chains[hook] = c

	case !occupied && exists:
		m.conn.DelChain(m.chains[hook])
		if err := m.conn.Flush(); err != nil {
			return fmt.Errorf("nfhook: retiring mirrored chain %s: %w", hook, err)
		}
		delete(m.chains, hook)
	}

	return nil
}

// Close tears down every mirrored chain and the table itself.
func (m *NFTablesMirror) Close() error {
	for _, c := range m.chains {
		m.conn.DelChain(c)
	}
	m.conn.DelTable(m.table)
	return m.conn.Flush()
}
