package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/schema"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f56"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))
)

// resultField is a label-value pair for printResult.
type resultField struct {
	Label string
	Value string
}

// printResult prints a styled summary with green checkmarks and gray labels.
func printResult(w io.Writer, fields []resultField, successMsg string) {
	check := successStyle.Render("✓")

	_, _ = fmt.Fprintln(w)
	for _, f := range fields {
		_, _ = fmt.Fprintf(w, "%s %s %s\n", check, labelStyle.Render(f.Label+":"), f.Value)
	}
	if successMsg != "" {
		_, _ = fmt.Fprintln(w, successStyle.Render("\n"+successMsg))
	}
}

// printErrors lists messages in field declaration order followed by the
// messages that name no field.
func printErrors(w io.Writer, s *schema.Schema, errs model.Errors, failureMsg string) {
	cross := failureStyle.Render("✗")
	mapping := render.MapErrors(s, errs)

	_, _ = fmt.Fprintln(w)
	for _, field := range s.Fields {
		for _, msg := range mapping.Fields.For(field.Name) {
			_, _ = fmt.Fprintf(w, "%s %s %s\n", cross, labelStyle.Render(field.DisplayLabel()+":"), msg)
		}
	}
	for _, msg := range mapping.Form {
		_, _ = fmt.Fprintf(w, "%s %s\n", cross, msg)
	}
	if failureMsg != "" {
		_, _ = fmt.Fprintln(w, failureStyle.Render("\n"+failureMsg))
	}
}

// payloadFields describes an accepted payload in field order using option
// labels where the field has options.
func payloadFields(s *schema.Schema, payload model.Values) []resultField {
	fields := make([]resultField, 0, len(payload))
	for _, field := range s.Fields {
		value, ok := payload[field.Name]
		if !ok {
			continue
		}
		fields = append(fields, resultField{Label: field.DisplayLabel(), Value: displayValue(field, value)})
	}
	return fields
}

func displayValue(field model.Field, value model.Value) string {
	if !field.Type.HasOptions() {
		if text := value.Text(); text != "" {
			return text
		}
		return "-"
	}
	items := value.Items()
	if len(items) == 0 {
		return "-"
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = field.OptionLabel(item)
	}
	return strings.Join(labels, ", ")
}
