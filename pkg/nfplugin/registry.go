// Package nfplugin lets a hook implementation be named in configuration
// (YAML/JSON) and constructed at runtime rather than wired in Go source,
// the way cmd/nfhookctl's config loader needs to turn a declarative chain
// description into registered nfhook.HookOps.
package nfplugin

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/corehook/nfhook/pkg/nfhook"
)

// Factory builds a Callback from its JSON config blob. The logger passed
// in is the caller's logger pre-scoped with plugin=<type name> by Build
// before the factory is invoked.
type Factory func(config json.RawMessage, logger *slog.Logger) (nfhook.Callback, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

func init() {
	Register("accept_all", newAcceptAllFactory)
	Register("drop_all", newDropAllFactory)
	Register("priority_gate", newPriorityGateFactory)
}

// Register adds a factory under typeName. It panics on a duplicate
// registration, matching the fail-fast behavior of a process wiring its
// plugin set once at startup.
func Register(typeName string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[typeName]; exists {
		panic("nfplugin: duplicate registration for type " + typeName)
	}
	registry[typeName] = factory
}

// Lookup returns the factory registered under typeName, if any.
func Lookup(typeName string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := registry[typeName]
	return f, ok
}

// RegisteredTypes returns the names of every registered plugin type.
func RegisteredTypes() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

// Build resolves typeName's factory and invokes it with config, wrapping
// any "not found" case in a descriptive error rather than a bare bool.
func Build(typeName string, config json.RawMessage, logger *slog.Logger) (nfhook.Callback, error) {
	factory, ok := Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("nfplugin: no factory registered for type %q", typeName)
	}
	return factory(config, logger.With("plugin", typeName))
}
