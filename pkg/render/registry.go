// Package render defines the output-serialization contract and a name-keyed
// registry so host adapters can pick renderings (XML, command lines) by name.
package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores serializers by name, providing discovery and duplication
// safeguards.
type Registry struct {
	mu          sync.RWMutex
	serializers map[string]Serializer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		serializers: make(map[string]Serializer),
	}
}

// Register adds a serializer by its Name(). Duplicate names return an error.
func (r *Registry) Register(s Serializer) error {
	if s == nil {
		return fmt.Errorf("render: serializer is required")
	}
	name := s.Name()
	if name == "" {
		return fmt.Errorf("render: serializer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.serializers[name]; exists {
		return fmt.Errorf("render: serializer %q already registered", name)
	}

	r.serializers[name] = s
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(s Serializer) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Get retrieves a serializer by name.
func (r *Registry) Get(name string) (Serializer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.serializers[name]
	if !ok {
		return nil, fmt.Errorf("render: serializer %q not found", name)
	}
	return s, nil
}

// List returns a sorted list of serializer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.serializers))
	for name := range r.serializers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a serializer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.serializers[name]
	return ok
}
