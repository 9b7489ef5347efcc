// Package html renders a form view as a standalone HTML page using embedded
// pongo2 templates. Help text is sanitised with bluemonday and themes from
// go-theme are applied as CSS custom properties.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"github.com/goccy/go-json"
	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	rendertemplate "github.com/goliatone/go-formflow/pkg/render/template"
	"github.com/goliatone/go-formflow/pkg/render/template/gotemplate"
)

// Name is the registry name of the renderer.
const Name = "html"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	selector         theme.ThemeSelector
	themeName        string
	themeVariant     string
	policy           *bluemonday.Policy
	stylesheet       *string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithTemplateRenderer injects a template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies an already resolved theme configuration.
func WithTheme(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.theme = themeCfg
	}
}

// WithThemeSelector resolves name/variant through selector when the renderer
// is built.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// WithHelpPolicy overrides the sanitiser used for field help markup.
func WithHelpPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithStylesheet replaces the embedded stylesheet; "" disables it.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = &css
	}
}

// Renderer renders render.View values into HTML pages.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	theme      *theme.RendererConfig
	policy     *bluemonday.Policy
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// defaultHelpPolicy allows inline formatting and links only.
func defaultHelpPolicy() *bluemonday.Policy {
	helpPolicyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("b", "strong", "i", "em", "code", "br", "small")
		p.AllowStandardURLs()
		p.AllowAttrs("href").OnElements("a")
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		helpPolicy = p
	})
	return helpPolicy
}

// New builds the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	themeCfg := cfg.theme
	if themeCfg == nil && cfg.selector != nil {
		resolved, err := ResolveTheme(cfg.selector, cfg.themeName, cfg.themeVariant)
		if err != nil {
			return nil, err
		}
		themeCfg = resolved
	}

	policy := cfg.policy
	if policy == nil {
		policy = defaultHelpPolicy()
	}

	stylesheet := defaultStylesheet()
	if cfg.stylesheet != nil {
		stylesheet = *cfg.stylesheet
	}

	return &Renderer{templates: templates, theme: themeCfg, policy: policy, stylesheet: stylesheet}, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return Name }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render implements render.Renderer.
func (r *Renderer) Render(_ context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if view.Schema == nil {
		return nil, fmt.Errorf("html renderer: view has no schema")
	}
	data, err := r.templateData(view, opts)
	if err != nil {
		return nil, err
	}
	out, err := r.templates.RenderTemplate("templates/form.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) templateData(view render.View, opts render.RenderOptions) (map[string]any, error) {
	method := opts.Method
	if method == "" {
		method = "post"
	}

	hiddenInputs := opts.Hidden
	if view.SessionID != "" {
		hiddenInputs = render.MergeHiddenFields(hiddenInputs, render.Hidden(render.SessionField, view.SessionID))
	}
	hidden := make([]map[string]any, 0, len(hiddenInputs))
	for _, input := range render.SortedHiddenFields(hiddenInputs) {
		hidden = append(hidden, map[string]any{"name": input.Name, "value": input.Value})
	}

	fields := make([]map[string]any, 0, len(view.Fields))
	for _, field := range view.Fields {
		fields = append(fields, r.fieldData(field))
	}

	links := make([]map[string]any, 0, len(opts.Schemas))
	for _, link := range opts.Schemas {
		links = append(links, map[string]any{"key": link.Key, "title": link.Title, "url": link.URL, "active": link.Active})
	}

	data := map[string]any{
		"form": map[string]any{
			"key":         view.Schema.Key,
			"title":       view.Schema.Title,
			"description": view.Schema.Description,
		},
		"fields":     fields,
		"formErrors": view.FormErrors,
		"hidden":     hidden,
		"method":     method,
		"action":     opts.Action,
		"changeURL":  opts.ChangeURL,
		"schemas":    links,
		"submitted":  view.Submitted,
		"stylesheet": r.stylesheet,
		"theme":      r.themeData(),
	}

	if view.Submitted && view.Payload != nil {
		payload, err := json.MarshalIndent(view.Payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("html renderer: encode payload: %w", err)
		}
		data["payload"] = string(payload)
	}
	if opts.ShowSchema {
		raw, err := json.MarshalIndent(view.Schema, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("html renderer: encode schema: %w", err)
		}
		data["schemaJSON"] = string(raw)
	}
	return data, nil
}

func (r *Renderer) fieldData(view render.FieldView) map[string]any {
	field := view.Field
	data := map[string]any{
		"name":        field.Name,
		"id":          "ff-" + field.Name,
		"type":        string(field.Type),
		"label":       field.DisplayLabel(),
		"placeholder": field.Placeholder,
		"required":    field.Rules.Required,
		"invalid":     view.Invalid(),
		"errors":      view.Errors,
		"value":       "",
	}
	if field.Help != "" {
		data["help"] = r.policy.Sanitize(field.Help)
	}
	if !field.Type.Multi() {
		data["value"] = view.Value.Text()
	}
	if field.Type == model.FieldTypeNumber {
		if field.Rules.Min != nil {
			data["min"] = strconv.FormatFloat(*field.Rules.Min, 'f', -1, 64)
		}
		if field.Rules.Max != nil {
			data["max"] = strconv.FormatFloat(*field.Rules.Max, 'f', -1, 64)
		}
	}
	if field.Type.HasOptions() {
		options := make([]map[string]any, 0, len(field.Options))
		for _, opt := range field.Options {
			options = append(options, map[string]any{
				"value":    opt.Value,
				"label":    field.OptionLabel(opt.Value),
				"selected": view.Value.Present() && view.Value.Contains(opt.Value),
			})
		}
		data["options"] = options
	}
	return data
}

func (r *Renderer) themeData() map[string]any {
	if r.theme == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":    r.theme.Theme,
		"variant": r.theme.Variant,
		"style":   cssVarsStyle(r.theme.CSSVars),
	}
}
