// Package commands contains all CLI command definitions.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formflow/internal/config"
	"github.com/goliatone/go-formflow/pkg/registry"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/schemas"
)

// ErrNoSchemas is returned when neither built-in nor loaded schemas exist.
var ErrNoSchemas = errors.New("no schemas registered")

// driverFactory builds a prompt driver writing informational output to out.
type driverFactory func(out io.Writer) tui.PromptDriver

func defaultDrivers() map[string]driverFactory {
	return map[string]driverFactory{
		"survey": tui.NewSurveyDriver,
		"huh": func(out io.Writer) tui.PromptDriver {
			return tui.NewHuhDriver(tui.HuhTheme(), out)
		},
	}
}

// app is the state shared by every subcommand once the config is loaded.
type app struct {
	cfg     *config.Config
	reg     *registry.Registry
	drivers map[string]driverFactory
}

type appKey struct{}

func appFromCommand(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey{}).(*app)
	if !ok || a == nil {
		return nil, errors.New("configuration not loaded")
	}
	return a, nil
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultDrivers())
}

func newRootCmd(drivers map[string]driverFactory) *cobra.Command {
	var (
		configPath string
		schemaDir  string
	)

	rootCmd := &cobra.Command{
		Use:           "formflow",
		Short:         "Serve, fill and validate declarative forms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("schemas") {
				cfg.Schemas.Dir = schemaDir
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			reg, err := buildRegistry(cfg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appKey{}, &app{cfg: cfg, reg: reg, drivers: drivers}))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFile, "config file")
	rootCmd.PersistentFlags().StringVar(&schemaDir, "schemas", "", "directory of YAML/JSON schema files")

	registerServeCmd(rootCmd)
	registerFillCmd(rootCmd)
	registerValidateCmd(rootCmd)
	registerExportCmd(rootCmd)
	registerSchemasCmd(rootCmd)

	return rootCmd
}

// loadConfig reads path. A missing default file is not an error, a missing
// explicit one is.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if explicit {
		return config.Load(path)
	}
	return config.LoadOrDefault(path)
}

// buildRegistry registers the built-in schemas unless skipped, then every
// schema file under the configured directory, and seals the result.
func buildRegistry(cfg *config.Config) (*registry.Registry, error) {
	reg := registry.New()
	if !cfg.Schemas.SkipBuiltins {
		if err := schemas.Register(reg); err != nil {
			return nil, err
		}
	}
	if cfg.Schemas.Dir != "" {
		if err := reg.LoadFS(os.DirFS(cfg.Schemas.Dir)); err != nil {
			return nil, fmt.Errorf("load schemas from %s: %w", cfg.Schemas.Dir, err)
		}
	}
	if reg.Len() == 0 {
		return nil, ErrNoSchemas
	}
	if key := cfg.Schemas.Default; key != "" && !reg.Has(key) {
		return nil, fmt.Errorf("schemas.default: %w: %q", registry.ErrSchemaNotFound, key)
	}
	reg.Seal()
	return reg, nil
}

// schemaKey picks the schema named on the command line, then the configured
// default, then the first registered schema.
func (a *app) schemaKey(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if a.cfg.Schemas.Default != "" {
		return a.cfg.Schemas.Default
	}
	return a.reg.First()
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644) //nolint:gosec // output file is user provided
}
