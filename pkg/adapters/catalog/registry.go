package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// EngineInfo describes a registered catalog engine.
type EngineInfo struct {
	Type        string `json:"type"`         // "postgresql", "mysql"
	DisplayName string `json:"display_name"` // "PostgreSQL", "MySQL"
	Description string `json:"description"`
}

// Registration contains info plus the open function for one engine.
// Aliases are alternate engine-type spellings that resolve to the same
// implementation ("postgres" for "postgresql").
type Registration struct {
	Info    EngineInfo
	Aliases []string
	Open    func(ctx context.Context, desc Descriptor, logger *zap.Logger) (Reader, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Registration)
)

// Register is called by each engine subpackage's init() function.
// Thread-safe for concurrent init() calls.
func Register(reg Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[normalizeEngine(reg.Info.Type)] = reg
	for _, alias := range reg.Aliases {
		registry[normalizeEngine(alias)] = reg
	}
}

// RegisteredEngines returns info for all registered engines, sorted by type.
// Aliases are collapsed into their primary registration.
func RegisteredEngines() []EngineInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool, len(registry))
	result := make([]EngineInfo, 0, len(registry))
	for _, reg := range registry {
		if seen[reg.Info.Type] {
			continue
		}
		seen[reg.Info.Type] = true
		result = append(result, reg.Info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result
}

// IsRegistered reports whether an engine type has a real implementation.
// Unregistered engines still work through the placeholder fallback.
func IsRegistered(engine string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[normalizeEngine(engine)]
	return ok
}

func lookup(engine string) (Registration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	reg, ok := registry[normalizeEngine(engine)]
	return reg, ok
}

// normalizeEngine maps stored engine-type strings onto registry keys.
// Connection records store display spellings like "PostgreSQL".
func normalizeEngine(engine string) string {
	return strings.ToLower(strings.TrimSpace(engine))
}
