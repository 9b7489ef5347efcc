package html

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ResolveTheme selects name/variant through selector and flattens the
// manifest into a renderer configuration: variant tokens override base
// tokens and every token becomes a "--<key>" CSS variable.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("html renderer: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("html renderer: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("html renderer: theme %q has no manifest", name)
	}
	return RendererConfig(selection), nil
}

// RendererConfig derives the renderer configuration for a selection.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	manifest := selection.Manifest
	tokens := make(map[string]string, len(manifest.Tokens))
	partials := make(map[string]string, len(manifest.Templates))
	files := make(map[string]string, len(manifest.Assets.Files))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	for key, value := range manifest.Templates {
		partials[key] = value
	}
	for key, value := range manifest.Assets.Files {
		files[key] = value
	}
	prefix := manifest.Assets.Prefix
	if v, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range v.Tokens {
			tokens[key] = value
		}
		for key, value := range v.Templates {
			partials[key] = value
		}
		for key, value := range v.Assets.Files {
			files[key] = value
		}
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  vars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok {
				return ""
			}
			if prefix == "" {
				return file
			}
			return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(file, "/")
		},
	}
}

// cssVarsStyle renders vars as a deterministic declaration list.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(sanitizeCSSValue(vars[key]))
		b.WriteByte(';')
	}
	return b.String()
}

// sanitizeCSSValue drops characters that could close the declaration or the
// style element.
func sanitizeCSSValue(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>':
			return -1
		}
		return r
	}, value)
}
