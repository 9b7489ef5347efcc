package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formflow/pkg/model"
)

func registerSchemasCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "List the registered schemas",
		Example: `  # List schemas
  formflow schemas

  # Show the fields of one schema
  formflow schemas show survey`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFromCommand(cmd)
			if err != nil {
				return err
			}
			return runSchemasList(cmd, a)
		},
	}

	registerSchemasShowCmd(cmd)

	parent.AddCommand(cmd)
}

func runSchemasList(cmd *cobra.Command, a *app) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tTITLE\tFIELDS\tCONDITIONAL")

	for _, key := range a.reg.Keys() {
		s, err := a.reg.Get(key)
		if err != nil {
			return err
		}
		conditional := 0
		for _, field := range s.Fields {
			if field.Condition != nil {
				conditional++
			}
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", key, s.Title, len(s.Fields), conditional)
	}

	return w.Flush()
}

func registerSchemasShowCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <schema>",
		Short: "Show the fields of a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFromCommand(cmd)
			if err != nil {
				return err
			}
			s, err := a.reg.Get(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (%s)\n\n", s.Title, s.Key)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tTYPE\tLABEL\tREQUIRED\tSHOWN WHEN")
			for _, field := range s.Fields {
				required := "-"
				if field.Rules.Required {
					required = "yes"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", field.Name, field.Type, field.DisplayLabel(), required, describeCondition(field.Condition))
			}
			return w.Flush()
		},
	}

	parent.AddCommand(cmd)
}

func describeCondition(cond *model.Condition) string {
	if cond == nil {
		return "always"
	}
	if cond.IsSet() {
		return fmt.Sprintf("%s in %s", cond.Field, strings.Join(cond.Candidates(), ", "))
	}
	return fmt.Sprintf("%s = %s", cond.Field, cond.Value)
}
