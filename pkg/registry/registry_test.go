package registry_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/registry"
	"github.com/goliatone/go-formflow/pkg/schema"
)

func contactSchema(key string) *schema.Schema {
	return &schema.Schema{
		Key:    key,
		Title:  "Contact",
		Fields: []model.Field{{Name: "email", Type: model.FieldTypeEmail, Label: "Email"}},
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	reg.MustRegister(contactSchema("b"))
	reg.MustRegister(contactSchema("a"))

	if diff := cmp.Diff([]string{"a", "b"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "a"}, reg.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if reg.First() != "b" || !reg.Has("a") || reg.Len() != 2 {
		t.Fatalf("unexpected registry state: first=%q len=%d", reg.First(), reg.Len())
	}

	got, err := reg.Get("a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Key != "a" {
		t.Fatalf("unexpected schema %q", got.Key)
	}

	if _, err := reg.Get("missing"); !errors.Is(err, registry.ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}
}

func TestRegistryRejectsDuplicatesAndInvalidSchemas(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	reg.MustRegister(contactSchema("contact"))

	if err := reg.Register(contactSchema("contact")); !errors.Is(err, registry.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	invalid := contactSchema("invalid")
	invalid.Fields = append(invalid.Fields, model.Field{Name: "note", Type: model.FieldTypeText, Condition: model.When("note", "x")})
	err := reg.Register(invalid)
	var checkErr *schema.CheckError
	if !errors.As(err, &checkErr) {
		t.Fatalf("expected *schema.CheckError, got %v", err)
	}
	if reg.Has("invalid") {
		t.Fatal("invalid schema must not be registered")
	}
}

func TestRegistrySeal(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	reg.Seal()
	if !reg.Sealed() {
		t.Fatal("expected sealed registry")
	}
	if err := reg.Register(contactSchema("late")); !errors.Is(err, registry.ErrSealed) {
		t.Fatalf("expected ErrSealed, got %v", err)
	}
}

const feedbackYAML = `
key: feedback
title: Feedback
fields:
  - name: rating
    type: radio
    label: Rating
    options:
      - {value: good, label: Good}
      - {value: bad, label: Bad}
  - name: reason
    type: text
    label: Reason
    validationRules:
      minLength: 5
    condition:
      field: rating
      value: bad
aggregate:
  - field: rating
    rule: oneOf
    values: [good, bad]
    message: Rating is required
  - field: reason
    rule: required
    message: Tell us what went wrong
    when:
      field: rating
      value: bad
`

const newsletterJSON = `{
  "title": "Newsletter",
  "fields": [
    {"name": "topics", "type": "checkbox", "label": "Topics",
     "options": [{"value": "go", "label": "Go"}, {"value": "web", "label": "Web"}],
     "validationRules": {"required": true}},
    {"name": "frequency", "type": "select", "label": "Frequency",
     "options": [{"value": "", "label": "Select"}, {"value": "weekly", "label": "Weekly"}],
     "condition": {"field": "topics_count", "value": ["1", "2"]}}
  ]
}`

func TestLoadFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"forms/feedback.yaml": {Data: []byte(feedbackYAML)},
		"README.md":           {Data: []byte("ignored")},
	}
	reg := registry.New()
	if err := reg.LoadFS(fsys); err != nil {
		t.Fatalf("load: %v", err)
	}

	s := reg.MustGet("feedback")
	if diff := cmp.Diff([]string{"rating", "reason"}, s.FieldNames()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	reason, _ := s.Field("reason")
	if reason.Rules.MinLength == nil || *reason.Rules.MinLength != 5 {
		t.Fatalf("expected minLength 5, got %+v", reason.Rules)
	}
	if diff := cmp.Diff(&model.Condition{Field: "rating", Value: "bad"}, reason.Condition); diff != "" {
		t.Fatalf("condition mismatch (-want +got):\n%s", diff)
	}
	if !s.HasAggregate() {
		t.Fatal("expected aggregate validator")
	}

	errs := s.Validator.Validate(model.Values{"rating": model.Scalar("bad")})
	want := model.Errors{"reason": {"Tell us what went wrong"}}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("aggregate errors mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFSRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	err := reg.LoadFS(fstest.MapFS{"newsletter.json": {Data: []byte(newsletterJSON)}})
	var checkErr *schema.CheckError
	if !errors.As(err, &checkErr) {
		t.Fatalf("expected *schema.CheckError, got %v", err)
	}
	if checkErr.Schema != "newsletter" {
		t.Fatalf("expected key derived from file name, got %q", checkErr.Schema)
	}
}

func TestParseSchemaJSON(t *testing.T) {
	t.Parallel()

	doc := `{"key": "topics", "fields": [
	  {"name": "kind", "type": "radio", "options": [{"value": "a"}, {"value": "b"}]},
	  {"name": "detail", "type": "text", "condition": {"field": "kind", "value": ["a", "b"]}}
	]}`
	s, err := registry.ParseSchema("topics.json", []byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	detail, _ := s.Field("detail")
	if diff := cmp.Diff(&model.Condition{Field: "kind", In: []string{"a", "b"}}, detail.Condition); diff != "" {
		t.Fatalf("condition mismatch (-want +got):\n%s", diff)
	}
	if s.HasAggregate() {
		t.Fatal("schema without aggregate section must fall back to field rules")
	}
}

func TestParseSchemaErrors(t *testing.T) {
	t.Parallel()

	if _, err := registry.ParseSchema("empty.yaml", []byte("  ")); err == nil {
		t.Fatal("expected error for empty file")
	}
	if _, err := registry.ParseSchema("bad.json", []byte("{")); err == nil {
		t.Fatal("expected parse error")
	}
	bad := "key: x\nfields: [{name: a, type: text}]\naggregate: [{field: a, rule: nope, message: m}]\n"
	if _, err := registry.ParseSchema("x.yaml", []byte(bad)); err == nil {
		t.Fatal("expected aggregate build error")
	}
}
