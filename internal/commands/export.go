package commands

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formflow/internal/server"
	"github.com/goliatone/go-formflow/pkg/openapi"
)

func registerExportCmd(parent *cobra.Command) {
	var (
		output   string
		format   string
		title    string
		version  string
		basePath string
	)

	cmd := &cobra.Command{
		Use:   "export [schema...]",
		Short: "Export schemas as an OpenAPI document",
		Long: `Export the submission request bodies of the given schemas, or of every
registered schema, as a validated OpenAPI 3 document.`,
		Example: `  # Export everything as JSON
  formflow export

  # Export the survey as YAML into a file
  formflow export survey --format yaml -o survey.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFromCommand(cmd)
			if err != nil {
				return err
			}
			doc, err := openapi.Document(a.reg, openapi.Info{Title: title, Version: version, BasePath: basePath}, args...)
			if err != nil {
				return err
			}
			if err := openapi.Validate(cmd.Context(), doc); err != nil {
				return err
			}

			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			switch format {
			case "json":
				data = append(data, '\n')
			case "yaml":
				if data, err = jsonToYAML(data); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported format %q (json or yaml)", format)
			}
			return writeOutput(cmd.OutOrStdout(), output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "document format (json or yaml)")
	cmd.Flags().StringVar(&title, "title", "formflow", "info.title of the document")
	cmd.Flags().StringVar(&version, "api-version", "", "info.version of the document")
	cmd.Flags().StringVar(&basePath, "base-path", server.APIPrefix, "prefix of the submit paths")

	parent.AddCommand(cmd)
}

// jsonToYAML re-encodes a JSON document as YAML.
func jsonToYAML(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}
