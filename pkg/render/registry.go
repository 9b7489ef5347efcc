package render

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownFormat is returned by Render for a name no renderer is
// registered under.
var ErrUnknownFormat = errors.New("render: unknown format")

// Registry maps output format names to renderers. The server picks one by
// query parameter and the CLI by flag.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]Renderer
}

// NewRegistry returns a registry holding renderers.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{formats: make(map[string]Renderer)}
	if err := r.Register(renderers...); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds renderers under their Name. Nothing is added when any of
// them is nil, unnamed or already taken.
func (r *Registry) Register(renderers ...Renderer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make(map[string]Renderer, len(renderers))
	for _, renderer := range renderers {
		if renderer == nil {
			return errors.New("render: nil renderer")
		}
		name := renderer.Name()
		if name == "" {
			return errors.New("render: renderer has no name")
		}
		_, taken := r.formats[name]
		if _, dup := batch[name]; taken || dup {
			return fmt.Errorf("render: format %q already registered", name)
		}
		batch[name] = renderer
	}
	maps.Copy(r.formats, batch)
	return nil
}

// Has reports whether format is registered.
func (r *Registry) Has(format string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.formats[format]
	return ok
}

// Names lists the registered formats in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.formats))
}

// Render renders view in format and returns the output with its content type.
func (r *Registry) Render(ctx context.Context, format string, view View, options RenderOptions) ([]byte, string, error) {
	r.mu.RLock()
	renderer, ok := r.formats[format]
	r.mu.RUnlock()
	if !ok {
		return nil, "", fmt.Errorf("%w %q (have %s)", ErrUnknownFormat, format, strings.Join(r.Names(), ", "))
	}
	out, err := renderer.Render(ctx, view, options)
	if err != nil {
		return nil, "", fmt.Errorf("render: %s: %w", format, err)
	}
	return out, renderer.ContentType(), nil
}
