package commands

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/session"
)

// validateReport is the --json output of validate.
type validateReport struct {
	Schema  string         `json:"schema"`
	OK      bool           `json:"ok"`
	Payload map[string]any `json:"payload,omitempty"`
	Errors  model.Errors   `json:"errors,omitempty"`
}

func registerValidateCmd(parent *cobra.Command) {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <schema> <values-file>",
		Short: "Validate a file of answers against a schema",
		Long: `Apply the answers in a JSON or YAML file to a schema, in field order, and run
the submission checks. Values of fields that end up hidden are dropped. The
command fails when the submission is rejected.`,
		Example: `  # Validate answers for the survey
  formflow validate survey answers.json

  # Machine readable result
  formflow validate employee answers.yaml --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFromCommand(cmd)
			if err != nil {
				return err
			}
			values, err := readValues(args[1])
			if err != nil {
				return err
			}
			sess, err := session.New(a.reg, args[0], session.WithValues(values))
			if err != nil {
				return err
			}

			result := sess.Submit()
			w := cmd.OutOrStdout()
			if asJSON {
				report := validateReport{Schema: result.Schema, OK: result.OK(), Payload: result.Data(), Errors: result.Errors}
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(w, string(data)); err != nil {
					return err
				}
				return result.Err()
			}

			if result.OK() {
				printResult(w, payloadFields(sess.Schema(), result.Payload), "Submission accepted")
				return nil
			}
			printErrors(w, sess.Schema(), result.Errors, "Submission rejected")
			return result.Err()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	parent.AddCommand(cmd)
}
