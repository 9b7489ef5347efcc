package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/validation"
)

func profileSchema(v schema.Validator) *schema.Schema {
	return &schema.Schema{
		Key:   "profile",
		Title: "Profile",
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeText, Label: "Name", Rules: model.Rules{Required: true, MinLength: model.Int(2)}},
			{Name: "hasPet", Type: model.FieldTypeRadio, Label: "Has Pet", Options: []model.Option{{Value: "yes"}, {Value: "no"}}},
			{Name: "petName", Type: model.FieldTypeText, Label: "Pet Name", Rules: model.Rules{Required: true}, Condition: model.When("hasPet", "yes")},
			{Name: "age", Type: model.FieldTypeNumber, Label: "Age", Rules: model.Rules{Min: model.Float(0)}},
			{Name: "tags", Type: model.FieldTypeCheckbox, Label: "Tags", Options: []model.Option{{Value: "a"}, {Value: "b"}}},
		},
		Validator: v,
	}
}

func TestSubmissionDefaultsToFieldRules(t *testing.T) {
	t.Parallel()

	s := profileSchema(nil)
	result := validation.Submission(s, model.Values{
		"name":    model.Scalar("J"),
		"hasPet":  model.Scalar("yes"),
		"petName": model.Scalar(""),
	})
	if result.OK() {
		t.Fatal("expected rejection")
	}
	want := model.Errors{
		"name":    {"Name must be at least 2 characters"},
		"petName": {"Pet Name is required"},
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if result.Payload != nil {
		t.Fatalf("rejected submission must not carry a payload, got %v", result.Payload)
	}
}

func TestSubmissionDropsHiddenValuesFromPayload(t *testing.T) {
	t.Parallel()

	s := profileSchema(nil)
	result := validation.Submission(s, model.Values{
		"name":    model.Scalar("Jane"),
		"hasPet":  model.Scalar("no"),
		"petName": model.Scalar("Rex"),
		"age":     model.Scalar("34"),
		"tags":    model.Multi("a", "b"),
		"extra":   model.Scalar("ignored"),
	})
	if !result.OK() {
		t.Fatalf("unexpected errors %v", result.Errors)
	}
	if diff := cmp.Diff([]string{"age", "hasPet", "name", "tags"}, result.Payload.Names()); diff != "" {
		t.Fatalf("payload names mismatch (-want +got):\n%s", diff)
	}
	want := map[string]any{
		"name":   "Jane",
		"hasPet": "no",
		"age":    float64(34),
		"tags":   []string{"a", "b"},
	}
	if diff := cmp.Diff(want, result.Data()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmissionAggregateValidatorSeesFilteredValues(t *testing.T) {
	t.Parallel()

	var seen []string
	v := schema.ValidatorFunc(func(values model.Values) model.Errors {
		seen = values.Names()
		return model.Errors{}
	})
	s := profileSchema(v)
	result := validation.Submission(s, model.Values{
		"name":    model.Scalar(""),
		"hasPet":  model.Scalar("no"),
		"petName": model.Scalar("Rex"),
	})
	if !result.OK() {
		t.Fatalf("aggregate validator is authoritative, got %v", result.Errors)
	}
	if diff := cmp.Diff([]string{"hasPet", "name"}, seen); diff != "" {
		t.Fatalf("validator input mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmissionIsIdempotent(t *testing.T) {
	t.Parallel()

	s := profileSchema(schema.Refine(
		schema.MinLength("name", 2, "Name must be at least 2 characters"),
	).When(model.When("hasPet", "yes"), schema.Require("petName", "Pet Name is required")))

	values := model.Values{"name": model.Scalar("J"), "hasPet": model.Scalar("yes")}
	before := values.Clone()

	first := validation.Submission(s, values)
	second := validation.Submission(s, values)
	if diff := cmp.Diff(first.Errors, second.Errors); diff != "" {
		t.Fatalf("errors differ between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, values); diff != "" {
		t.Fatalf("input values mutated (-want +got):\n%s", diff)
	}
}

func TestResultErr(t *testing.T) {
	t.Parallel()

	s := profileSchema(nil)
	ok := validation.Submission(s, model.Values{"name": model.Scalar("Jane")})
	if err := ok.Err(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	failed := validation.Submission(s, model.Values{})
	var subErr *validation.SubmissionError
	if !errors.As(failed.Err(), &subErr) {
		t.Fatalf("expected *SubmissionError, got %v", failed.Err())
	}
	if subErr.Schema != "profile" || subErr.Errors.Count() != 1 {
		t.Fatalf("unexpected error details %+v", subErr)
	}
	if failed.Data() != nil {
		t.Fatal("rejected submission must not project data")
	}
}

func TestAdvisoryCoversVisibleFields(t *testing.T) {
	t.Parallel()

	got := validation.Advisory(profileSchema(nil), model.Values{"hasPet": model.Scalar("yes"), "age": model.Scalar("-3")})
	want := model.Errors{
		"name":    {"Name is required"},
		"petName": {"Pet Name is required"},
		"age":     {"Age must be at least 0"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}
