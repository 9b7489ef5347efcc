// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/goliatone/go-formflow/internal/commands"
)

// ConfigEnv names the environment variable that points at the config file
// when --config is not given.
const ConfigEnv = "FORMFLOW_CONFIG"

// Run is the main application logic, extracted for testability. It accepts
// OS dependencies as parameters (context, arguments, env lookup).
func Run(ctx context.Context, args []string, getenv func(string) string) error {
	rootCmd := commands.NewRootCmd()
	if path := getenv(ConfigEnv); path != "" {
		if err := rootCmd.PersistentFlags().Set("config", path); err != nil {
			return err
		}
	}
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
