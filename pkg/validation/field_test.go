package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/validation"
)

func TestFieldRulesRunInOrder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		field model.Field
		value model.Value
		want  []string
	}{
		{
			name:  "required absent",
			field: model.Field{Name: "firstName", Label: "First Name", Rules: model.Rules{Required: true, MinLength: model.Int(2)}},
			value: model.Value{},
			want:  []string{"First Name is required"},
		},
		{
			name:  "required empty string",
			field: model.Field{Name: "firstName", Label: "First Name", Rules: model.Rules{Required: true}},
			value: model.Scalar(""),
			want:  []string{"First Name is required"},
		},
		{
			name:  "optional empty skips everything",
			field: model.Field{Name: "nickname", Label: "Nickname", Rules: model.Rules{MinLength: model.Int(3), Pattern: "^[a-z]+$"}},
			value: model.Scalar(""),
			want:  nil,
		},
		{
			name:  "min length",
			field: model.Field{Name: "firstName", Label: "First Name", Rules: model.Rules{Required: true, MinLength: model.Int(2)}},
			value: model.Scalar("J"),
			want:  []string{"First Name must be at least 2 characters"},
		},
		{
			name:  "max length and pattern both fire",
			field: model.Field{Name: "code", Label: "Code", Rules: model.Rules{MaxLength: model.Int(3), Pattern: "^[A-Z]+$"}},
			value: model.Scalar("abcd"),
			want:  []string{"Code must be no more than 3 characters", "Code format is invalid"},
		},
		{
			name:  "length counts runes",
			field: model.Field{Name: "name", Label: "Name", Rules: model.Rules{MaxLength: model.Int(4)}},
			value: model.Scalar("Zoë!"),
			want:  nil,
		},
		{
			name:  "numeric min",
			field: model.Field{Name: "experience", Type: model.FieldTypeNumber, Label: "Years of Experience", Rules: model.Rules{Min: model.Float(0), Max: model.Float(50)}},
			value: model.Scalar("-1"),
			want:  []string{"Years of Experience must be at least 0"},
		},
		{
			name:  "numeric max",
			field: model.Field{Name: "experience", Type: model.FieldTypeNumber, Label: "Years of Experience", Rules: model.Rules{Min: model.Float(0), Max: model.Float(50)}},
			value: model.Scalar("50.5"),
			want:  []string{"Years of Experience must be no more than 50"},
		},
		{
			name:  "fractional bound formatting",
			field: model.Field{Name: "ratio", Type: model.FieldTypeNumber, Label: "Ratio", Rules: model.Rules{Min: model.Float(0.25)}},
			value: model.Scalar("0.1"),
			want:  []string{"Ratio must be at least 0.25"},
		},
		{
			name:  "non numeric input",
			field: model.Field{Name: "experience", Type: model.FieldTypeNumber, Label: "Years of Experience", Rules: model.Rules{Min: model.Float(0), Max: model.Float(50)}},
			value: model.Scalar("ten"),
			want:  []string{"Years of Experience must be a number"},
		},
		{
			name:  "email pattern",
			field: model.Field{Name: "email", Type: model.FieldTypeEmail, Label: "Email", Rules: model.Rules{Required: true, Pattern: `^[^\s@]+@[^\s@]+\.[^\s@]+$`}},
			value: model.Scalar("jane@example"),
			want:  []string{"Email format is invalid"},
		},
		{
			name:  "label falls back to name",
			field: model.Field{Name: "city", Rules: model.Rules{Required: true}},
			value: model.Value{},
			want:  []string{"city is required"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := validation.Field(tc.field, tc.value)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("messages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldRequiredEmptySetYieldsSingleMessage(t *testing.T) {
	t.Parallel()

	field := model.Field{
		Name:    "skills",
		Type:    model.FieldTypeCheckbox,
		Label:   "Skills",
		Options: []model.Option{{Value: "go", Label: "Go"}},
		Rules:   model.Rules{Required: true, MinLength: model.Int(1), MaxLength: model.Int(0), Min: model.Float(1), Pattern: "^x$"},
	}
	for _, value := range []model.Value{model.Multi(), {}} {
		got := validation.Field(field, value)
		if diff := cmp.Diff([]string{"Skills is required"}, got); diff != "" {
			t.Fatalf("messages mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestFieldMultiLengthCountsSelections(t *testing.T) {
	t.Parallel()

	field := model.Field{Name: "skills", Type: model.FieldTypeCheckbox, Label: "Skills", Rules: model.Rules{MaxLength: model.Int(2), Min: model.Float(5)}}
	got := validation.Field(field, model.Multi("go", "rust", "zig"))
	want := []string{"Skills must be no more than 2 characters"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldBoundsIgnoreAbsentOptionalNumber(t *testing.T) {
	t.Parallel()

	field := model.Field{Name: "experience", Type: model.FieldTypeNumber, Label: "Experience", Rules: model.Rules{Min: model.Float(0), Max: model.Float(50)}}
	if got := validation.Field(field, model.Value{}); len(got) != 0 {
		t.Fatalf("expected no messages, got %v", got)
	}
}
