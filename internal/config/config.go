// Package config handles the formflow.yaml configuration shared by the CLI
// and the HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// DefaultFile is the config file looked up when no path is given.
const DefaultFile = "formflow.yaml"

// Defaults applied before a file is decoded.
const (
	DefaultAddr  = ":8080"
	DefaultGrace = 5 * time.Second
)

// Config represents the formflow.yaml file.
type Config struct {
	Version int           `yaml:"version"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Schemas SchemasConfig `yaml:"schemas,omitempty"`
	Theme   ThemeConfig   `yaml:"theme,omitempty"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
	// Grace bounds how long shutdown waits for in-flight requests.
	Grace time.Duration `yaml:"grace,omitempty"`
}

// SchemasConfig selects where schemas come from.
type SchemasConfig struct {
	// Dir holds YAML/JSON schema files loaded next to the built-ins.
	Dir          string `yaml:"dir,omitempty"`
	Default      string `yaml:"default,omitempty"`
	SkipBuiltins bool   `yaml:"skipBuiltins,omitempty"`
}

// ThemeConfig declares an inline theme. Variants map a variant name to the
// tokens it overrides.
type ThemeConfig struct {
	Name     string                       `yaml:"name,omitempty"`
	Variant  string                       `yaml:"variant,omitempty"`
	Tokens   map[string]string            `yaml:"tokens,omitempty"`
	Variants map[string]map[string]string `yaml:"variants,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Server: ServerConfig{
			Addr:  DefaultAddr,
			Grace: DefaultGrace,
		},
	}
}

// Load reads a Config from a file path. Keys missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errs []error
	if c.Version != CurrentConfigVersion {
		errs = append(errs, errors.New("unsupported config version"))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.Grace < 0 {
		errs = append(errs, errors.New("server.grace must not be negative"))
	}
	if c.Schemas.SkipBuiltins && c.Schemas.Dir == "" {
		errs = append(errs, errors.New("schemas.dir is required when built-in schemas are skipped"))
	}
	if c.Theme.Name == "" {
		if c.Theme.Variant != "" || len(c.Theme.Tokens) > 0 || len(c.Theme.Variants) > 0 {
			errs = append(errs, errors.New("theme.name is required when a theme is configured"))
		}
	} else if c.Theme.Variant != "" {
		if _, ok := c.Theme.Variants[c.Theme.Variant]; !ok {
			errs = append(errs, fmt.Errorf("theme.variant %q is not declared", c.Theme.Variant))
		}
	}
	return errors.Join(errs...)
}
