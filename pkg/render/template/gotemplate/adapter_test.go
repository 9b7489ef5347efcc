package gotemplate_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formflow/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	files := fstest.MapFS{
		"greeting.tpl": {Data: []byte(`Hello {{ name|trim }}!`)},
		"global.tpl":   {Data: []byte(`env={{ settings.env }}`)},
		"fields.tpl":   {Data: []byte(`{% for f in fields %}[{{ f.name }}]{% endfor %}`)},
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestRenderTemplateWritesToOutputs(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	got, err := engine.RenderTemplate("greeting", map[string]any{"name": "  Ada "}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada!" || buf.String() != got {
		t.Fatalf("unexpected output %q / %q", got, buf.String())
	}
}

func TestRenderStructData(t *testing.T) {
	engine := newEngine(t)

	type field struct {
		Name string `json:"name"`
	}
	data := struct {
		Fields []field `json:"fields"`
	}{Fields: []field{{Name: "firstName"}, {Name: "email"}}}

	got, err := engine.Render("fields", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "[firstName][email]" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGlobalData(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))
	got, err := engine.RenderTemplate("global.tpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderStringAndFilters(t *testing.T) {
	engine := newEngine(t)
	if err := engine.RegisterFilter("formflow_shout", func(input any, _ any) (any, error) {
		s, _ := input.(string)
		return strings.ToUpper(s), nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := engine.Render("{{ word|formflow_shout }}", map[string]any{"word": "done"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "DONE" {
		t.Fatalf("unexpected output %q", got)
	}
	if err := engine.RegisterFilter("formflow_shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatal("expected duplicate filter error")
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatal("expected error without template source")
	}
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatal("expected missing template error")
	}
}
