package formflow

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/registry"
)

func TestSubmitDropsHiddenValues(t *testing.T) {
	t.Parallel()

	result, err := Submit(DefaultRegistry(), "survey", Values{
		"customerType":      Scalar("existing"),
		"purchaseFrequency": Scalar("weekly"),
		"referralSource":    Scalar("friend"),
		"satisfaction":      Scalar("neutral"),
		"improvements":      Multi("pricing"),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.OK() {
		t.Fatalf("expected acceptance, got %v", result.Errors)
	}
	want := map[string]any{
		"customerType":      "existing",
		"purchaseFrequency": "weekly",
		"satisfaction":      "neutral",
		"improvements":      []string{"pricing"},
	}
	if diff := cmp.Diff(want, result.Data()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSessionUnknownSchema(t *testing.T) {
	t.Parallel()

	_, err := NewSession(DefaultRegistry(), "missing", nil)
	if !errors.Is(err, registry.ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	sess, err := NewSession(DefaultRegistry(), "employee", Values{"isEmployed": Scalar("no")})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	out, err := RenderHTML(context.Background(), sess, RenderOptions{Action: "/submit"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := string(out)
	if !strings.Contains(doc, `name="lookingForJob"`) || strings.Contains(doc, `name="companyName"`) {
		t.Fatalf("unexpected fields in output:\n%s", doc)
	}
}

func TestEmbeddedFiles(t *testing.T) {
	t.Parallel()

	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template to be readable: %v", err)
	}
	data, err := fs.ReadFile(AssetsFS(), "formflow.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty stylesheet")
	}
}

func TestLoadRegistry(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"topics.yaml": {Data: []byte("title: Topics\nfields:\n  - name: kind\n    type: radio\n    options: [{value: a}, {value: b}]\n")},
	}
	reg, err := LoadRegistry(fsys, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"employee", "survey", "topics"}, reg.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if !reg.Sealed() {
		t.Fatalf("expected sealed registry")
	}
}
