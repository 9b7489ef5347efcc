// Package registry holds the catalog of form schemas keyed by name. Every
// schema is statically checked on registration, so a schema obtained from a
// registry always satisfies the invariants enforced by schema.Check.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// Registry stores schemas by key. It is safe for concurrent use; once Sealed
// it is read-only.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*schema.Schema
	order   []string
	sealed  bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{schemas: make(map[string]*schema.Schema)}
}

// Register checks s and stores it under s.Key.
func (r *Registry) Register(s *schema.Schema) error {
	if s == nil {
		return fmt.Errorf("registry: schema is required")
	}
	if err := schema.Check(s); err != nil {
		return fmt.Errorf("registry: register %q: %w", s.Key, err)
	}
	key := strings.TrimSpace(s.Key)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("registry: register %q: %w", key, ErrSealed)
	}
	if _, exists := r.schemas[key]; exists {
		return fmt.Errorf("registry: register %q: %w", key, ErrDuplicateKey)
	}
	r.schemas[key] = s
	r.order = append(r.order, key)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(s *schema.Schema) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Get retrieves a schema by key.
func (r *Registry) Get(key string) (*schema.Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, key)
	}
	return s, nil
}

// MustGet panics if the schema is missing.
func (r *Registry) MustGet(key string) *schema.Schema {
	s, err := r.Get(key)
	if err != nil {
		panic(err)
	}
	return s
}

// List returns a sorted list of schema keys.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.schemas))
	for key := range r.schemas {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Keys returns schema keys in registration order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// First returns the earliest registered key, or "" when empty.
func (r *Registry) First() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.order) == 0 {
		return ""
	}
	return r.order[0]
}

// Has reports whether a schema is registered under key.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.schemas[key]
	return ok
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.schemas)
}
