package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func themedConfig() *Config {
	cfg := Default()
	cfg.Theme = ThemeConfig{
		Name:     "acme",
		Variant:  "dark",
		Tokens:   map[string]string{"brand": "#123456", "radius": "4px"},
		Variants: map[string]map[string]string{"dark": {"brand": "#654321"}},
	}
	return cfg
}

func TestThemeSelector_DefaultsToConfiguredTheme(t *testing.T) {
	selector := themedConfig().ThemeSelector()
	require.NotNil(t, selector)

	selection, err := selector.Select("", "")
	require.NoError(t, err)
	assert.Equal(t, "acme", selection.Theme)
	assert.Equal(t, "dark", selection.Variant)
	assert.Equal(t, "#123456", selection.Manifest.Tokens["brand"])
	assert.Equal(t, "#654321", selection.Manifest.Variants["dark"].Tokens["brand"])
	assert.Equal(t, []string{"acme"}, selector.Names())
}

func TestThemeSelector_ExplicitBaseVariant(t *testing.T) {
	selection, err := themedConfig().ThemeSelector().Select("acme", "")
	require.NoError(t, err)
	assert.Equal(t, "", selection.Variant)
}

func TestThemeSelector_Errors(t *testing.T) {
	selector := themedConfig().ThemeSelector()

	_, err := selector.Select("other", "")
	assert.True(t, errors.Is(err, ErrThemeNotFound))

	_, err = selector.Select("acme", "light")
	assert.True(t, errors.Is(err, ErrVariantNotFound))
}

func TestThemeSelector_NilWithoutTheme(t *testing.T) {
	assert.Nil(t, Default().ThemeSelector())
	assert.Nil(t, ThemeConfig{}.Manifest())
}
