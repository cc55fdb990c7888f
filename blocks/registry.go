package blocks

import (
	"fmt"
	"sync"
)

// Registry holds the block definitions known to the delivery API. Blocks
// register during startup; lookups afterwards are read-mostly and safe for
// concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Definition
	order  []string
}

// NewRegistry constructs an empty block registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]*Definition{}}
}

// Register validates and stores a block definition. Re-registering a name fails.
func (r *Registry) Register(def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDefinitionExists, def.Name)
	}
	r.byName[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// MustRegister registers a definition and panics on failure.
func (r *Registry) MustRegister(def *Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Get looks up a block definition by name.
func (r *Registry) Get(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.byName[name]
	return def, ok
}

// Names returns registered block names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
