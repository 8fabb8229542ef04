package build

import (
	"sort"
	"sync"

	"github.com/fwojciec/wenku"
)

// Ensure Registry implements wenku.ParserRegistry.
var _ wenku.ParserRegistry = (*Registry)(nil)

// Registry maps parser ids to parsers. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]wenku.Parser
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]wenku.Parser)}
}

// Register adds or replaces the parser for id.
func (r *Registry) Register(id string, p wenku.Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[id] = p
}

// Get returns the parser for id.
// Returns EINVALID if no parser is registered under id.
func (r *Registry) Get(id string) (wenku.Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[id]
	if !ok {
		return nil, wenku.Errorf(wenku.EINVALID, "unknown parser %q", id)
	}
	return p, nil
}

// List returns the registered ids in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.parsers))
	for id := range r.parsers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
