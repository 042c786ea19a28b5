package bridge

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores bridges by name.
type Registry struct {
	mu      sync.RWMutex
	bridges map[string]Bridge
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bridges: make(map[string]Bridge),
	}
}

// Register adds a bridge by its Name(). Duplicate names return an error.
func (r *Registry) Register(b Bridge) error {
	if b == nil {
		return fmt.Errorf("bridge: bridge is required")
	}
	name := b.Name()
	if name == "" {
		return fmt.Errorf("bridge: bridge name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bridges[name]; exists {
		return fmt.Errorf("bridge: bridge %q already registered", name)
	}
	r.bridges[name] = b
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(b Bridge) {
	if err := r.Register(b); err != nil {
		panic(err)
	}
}

// Get retrieves a bridge by name.
func (r *Registry) Get(name string) (Bridge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bridges[name]
	if !ok {
		return nil, fmt.Errorf("bridge: bridge %q not found", name)
	}
	return b, nil
}

// List returns the sorted bridge names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.bridges))
	for name := range r.bridges {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a bridge is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.bridges[name]
	return ok
}
