package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/session"
)

func registerFillCmd(parent *cobra.Command) {
	var (
		driverName string
		format     string
		valuesPath string
		output     string
		maxRounds  int
	)

	cmd := &cobra.Command{
		Use:   "fill [schema]",
		Short: "Fill a form interactively in the terminal",
		Long: `Prompt for every visible field of a schema, following visibility changes as
answers are given, and print the submission once it is accepted.`,
		Example: `  # Fill the survey with the default prompts
  formflow fill survey

  # Use the huh driver and print a readable summary
  formflow fill employee --driver huh --format pretty`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFromCommand(cmd)
			if err != nil {
				return err
			}
			factory, ok := a.drivers[driverName]
			if !ok {
				return fmt.Errorf("unknown driver %q (available: %s)", driverName, strings.Join(driverNames(a), ", "))
			}

			renderer, err := tui.New(
				tui.WithPromptDriver(factory(cmd.ErrOrStderr())),
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithMaxRounds(maxRounds),
			)
			if err != nil {
				return err
			}

			var opts []session.Option
			if valuesPath != "" {
				values, err := readValues(valuesPath)
				if err != nil {
					return err
				}
				opts = append(opts, session.WithValues(values))
			}
			sess, err := session.New(a.reg, a.schemaKey(args), opts...)
			if err != nil {
				return err
			}

			out, _, err := renderer.Run(cmd.Context(), sess)
			if out != nil {
				if writeErr := writeOutput(cmd.OutOrStdout(), output, out); writeErr != nil {
					return writeErr
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&driverName, "driver", "survey", "prompt driver (survey or huh)")
	cmd.Flags().StringVarP(&format, "format", "f", string(tui.OutputFormatJSON), "output format (json, form or pretty)")
	cmd.Flags().StringVar(&valuesPath, "values", "", "JSON or YAML file with answers to start from")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().IntVar(&maxRounds, "max-rounds", 3, "submission attempts before giving up")

	parent.AddCommand(cmd)
}

func driverNames(a *app) []string {
	names := make([]string, 0, len(a.drivers))
	for name := range a.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
