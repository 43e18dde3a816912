package nfplugin

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/corehook/nfhook/pkg/nfhook"
)

// newAcceptAllFactory builds a Callback that always lets traversal
// continue; useful as a placeholder entry in a config-driven chain while
// a real rule set is still being authored.
func newAcceptAllFactory(_ json.RawMessage, logger *slog.Logger) (nfhook.Callback, error) {
	return func(_ context.Context, _ any, _ nfhook.Packet, _ *nfhook.HookState) nfhook.Verdict {
		return nfhook.Accept
	}, nil
}

type dropAllConfig struct {
	Errno int `json:"errno"`
}

// newDropAllFactory builds a Callback that unconditionally drops, with a
// configurable errno — a blunt instrument useful for chain-ordering tests
// ("does this entry run before or after the drop").
func newDropAllFactory(config json.RawMessage, logger *slog.Logger) (nfhook.Callback, error) {
	var cfg dropAllConfig
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, err
		}
	}
	errno := cfg.Errno
	return func(_ context.Context, _ any, _ nfhook.Packet, _ *nfhook.HookState) nfhook.Verdict {
		logger.Debug("drop_all firing", "errno", errno)
		return nfhook.VerdictDrop(errno)
	}, nil
}

type priorityGateConfig struct {
	MinPriority int32 `json:"min_priority"`
}

// newPriorityGateFactory builds a Callback that returns STOP when the
// traversal's HookState.Thresh is at or above the configured
// min_priority, and ACCEPT otherwise — useful for exercising STOP from
// within a config-driven chain.
func newPriorityGateFactory(config json.RawMessage, logger *slog.Logger) (nfhook.Callback, error) {
	var cfg priorityGateConfig
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, err
		}
	}
	return func(_ context.Context, _ any, _ nfhook.Packet, state *nfhook.HookState) nfhook.Verdict {
		if state.Thresh >= cfg.MinPriority {
			return nfhook.Stop
		}
		return nfhook.Accept
	}, nil
}
