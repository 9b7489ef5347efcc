package tui

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
)

// Name identifies the renderer in a render.Registry.
const Name = "tui"

// Renderer implements render.Renderer for terminal sessions. Render
// serializes a view; Fill walks a session through the prompt driver.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	maxAttempts  int
	maxRounds    int
	inline       bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
		maxAttempts:  3,
		maxRounds:    3,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// document is the JSON shape of a view that has not produced a payload.
type document struct {
	Schema     string         `json:"schema"`
	Values     map[string]any `json:"values"`
	Errors     model.Errors   `json:"errors,omitempty"`
	FormErrors []string       `json:"formErrors,omitempty"`
}

// Render serializes view. An accepted submission renders its payload;
// anything else renders the visible values together with their messages.
func (r *Renderer) Render(ctx context.Context, view render.View, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if view.Schema == nil {
		return nil, fmt.Errorf("tui: view has no schema")
	}

	values := visibleValues(view)
	if view.Submitted && view.Payload != nil {
		values = view.Payload
	}

	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(view)), nil
	}

	if view.Submitted && view.Payload != nil {
		return json.MarshalIndent(view.Payload, "", "  ")
	}
	doc := document{
		Schema:     view.Schema.Key,
		Values:     values,
		FormErrors: view.FormErrors,
	}
	if !view.Errors.Empty() {
		doc.Errors = view.Errors
	}
	return json.MarshalIndent(doc, "", "  ")
}

func visibleValues(view render.View) map[string]any {
	out := make(map[string]any, len(view.Fields))
	for _, field := range view.Fields {
		if field.Value.Present() {
			out[field.Field.Name] = field.Value.Interface()
		}
	}
	return out
}

func encodeForm(values map[string]any) string {
	form := url.Values{}
	for name, raw := range values {
		switch v := raw.(type) {
		case nil:
			form.Set(name, "")
		case string:
			form.Set(name, v)
		case []string:
			for _, item := range v {
				form.Add(name, item)
			}
		case float64:
			form.Set(name, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			form.Set(name, fmt.Sprint(v))
		}
	}
	return form.Encode()
}

func prettyPrint(view render.View) string {
	var b strings.Builder
	b.WriteString(view.Schema.Title)
	b.WriteByte('\n')
	for _, field := range view.Fields {
		if field.Value.Present() {
			fmt.Fprintf(&b, "  %s: %s\n", field.Field.DisplayLabel(), displayValue(field.Field, field.Value))
		} else {
			fmt.Fprintf(&b, "  %s: -\n", field.Field.DisplayLabel())
		}
		for _, msg := range field.Errors {
			fmt.Fprintf(&b, "    ! %s\n", msg)
		}
	}
	for _, msg := range view.FormErrors {
		fmt.Fprintf(&b, "  ! %s\n", msg)
	}
	if view.Submitted {
		if view.Payload != nil {
			b.WriteString("submitted\n")
		} else {
			fmt.Fprintf(&b, "rejected: %d error(s)\n", view.Errors.Count()+len(view.FormErrors))
		}
	}
	return b.String()
}

func displayValue(field model.Field, value model.Value) string {
	if !field.Type.HasOptions() {
		return value.Text()
	}
	items := value.Items()
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, field.OptionLabel(item))
	}
	return strings.Join(labels, ", ")
}
