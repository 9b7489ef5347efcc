package config

import (
	"errors"
	"fmt"
	"sort"

	theme "github.com/goliatone/go-theme"
)

var (
	// ErrThemeNotFound is returned when a selector does not know a theme.
	ErrThemeNotFound = errors.New("config: theme not found")
	// ErrVariantNotFound is returned for an undeclared variant.
	ErrVariantNotFound = errors.New("config: theme variant not found")
)

// Manifest converts the inline theme into a go-theme manifest. It returns
// nil when no theme is configured.
func (t ThemeConfig) Manifest() *theme.Manifest {
	if t.Name == "" {
		return nil
	}
	manifest := &theme.Manifest{
		Name:    t.Name,
		Version: "config",
		Tokens:  copyTokens(t.Tokens),
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for name, tokens := range t.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: copyTokens(tokens)}
		}
	}
	return manifest
}

// Selector resolves themes from a fixed set of manifests. Empty names fall
// back to the defaults given at construction.
type Selector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector indexes manifests by name. The first manifest is the default
// theme unless defaultTheme names another.
func NewSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) *Selector {
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   defaultTheme,
		defaultVariant: defaultVariant,
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if s.defaultTheme == "" {
			s.defaultTheme = manifest.Name
		}
		s.manifests[manifest.Name] = manifest
	}
	return s
}

// ThemeSelector returns a selector over the inline theme, or nil when none
// is configured.
func (c *Config) ThemeSelector() *Selector {
	manifest := c.Theme.Manifest()
	if manifest == nil {
		return nil
	}
	return NewSelector(c.Theme.Name, c.Theme.Variant, manifest)
}

// Select implements theme.ThemeSelector.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = s.defaultTheme
		if variant == "" {
			variant = s.defaultVariant
		}
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q (theme %q)", ErrVariantNotFound, variant, name)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Names lists the known themes.
func (s *Selector) Names() []string {
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func copyTokens(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		out[key] = value
	}
	return out
}
