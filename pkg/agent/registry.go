package agent

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps agent type names to factories so benchmark commands can
// construct agents from configuration instead of hard-coded dispatch.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry with the built-in agent types registered.
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
	}

	r.Register(TypeKernel, NewKernelAgent)

	return r
}

// Register adds a factory under the given type name, replacing any
// previous registration for that name.
func (r *Registry) Register(agentType string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[agentType] = factory
}

// New constructs an agent of the given type. Returns an error naming the
// supported types when the type is not registered.
func (r *Registry) New(agentType string, cfg Config) (Agent, error) {
	r.mu.RLock()
	factory, ok := r.factories[agentType]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown agent type: %q (supported: %v)", agentType, r.Types())
	}

	return factory(cfg)
}

// Types returns the registered agent type names in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for name := range r.factories {
		types = append(types, name)
	}
	sort.Strings(types)

	return types
}

// DefaultRegistry is the process-wide agent registry.
var DefaultRegistry = NewRegistry()

// New constructs an agent of the given type from the default registry.
func New(agentType string, cfg Config) (Agent, error) {
	return DefaultRegistry.New(agentType, cfg)
}
