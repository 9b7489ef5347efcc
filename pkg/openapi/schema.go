package openapi

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// ConditionExtension carries a field's visibility condition. JSON Schema has
// no direct equivalent for "present only when another field matches".
const ConditionExtension = "x-formflow-condition"

// Schema describes the payload accepted for s. Only unconditional required
// fields are listed as required; conditional fields keep their condition as
// an extension.
func Schema(s *schema.Schema) *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	out.Title = s.Title
	out.Description = s.Description
	for _, field := range s.Fields {
		out.WithProperty(field.Name, Field(field))
		if field.Rules.Required && field.Condition == nil {
			out.Required = append(out.Required, field.Name)
		}
	}
	return out
}

// Field describes one field value.
func Field(field model.Field) *openapi3.Schema {
	var out *openapi3.Schema
	switch field.Type {
	case model.FieldTypeNumber:
		out = openapi3.NewFloat64Schema()
		if field.Rules.Min != nil {
			out.WithMin(*field.Rules.Min)
		}
		if field.Rules.Max != nil {
			out.WithMax(*field.Rules.Max)
		}
		if !field.Rules.Required {
			out.Nullable = true
		}
	case model.FieldTypeCheckbox:
		items := openapi3.NewStringSchema().WithEnum(enum(field)...)
		out = openapi3.NewArraySchema().WithItems(items)
		out.UniqueItems = true
		if field.Rules.MinLength != nil {
			out.WithMinItems(int64(*field.Rules.MinLength))
		}
		if field.Rules.MaxLength != nil {
			out.WithMaxItems(int64(*field.Rules.MaxLength))
		}
	case model.FieldTypeSelect, model.FieldTypeRadio:
		out = openapi3.NewStringSchema().WithEnum(enum(field)...)
	default:
		out = openapi3.NewStringSchema()
		if field.Type == model.FieldTypeEmail {
			out.WithFormat("email")
		}
		if field.Rules.MinLength != nil {
			out.WithMinLength(int64(*field.Rules.MinLength))
		}
		if field.Rules.MaxLength != nil {
			out.WithMaxLength(int64(*field.Rules.MaxLength))
		}
		if field.Rules.Pattern != "" {
			out.WithPattern(field.Rules.Pattern)
		}
	}

	out.Title = field.DisplayLabel()
	out.Description = field.Help
	if cond := field.Condition; cond != nil {
		out.Extensions = map[string]any{
			ConditionExtension: map[string]any{
				"field": cond.Field,
				"in":    cond.Candidates(),
			},
		}
	}
	return out
}

// enum lists the selectable values. Placeholder options with an empty value
// are never part of an accepted payload.
func enum(field model.Field) []any {
	out := make([]any, 0, len(field.Options))
	for _, opt := range field.Options {
		if opt.Value != "" {
			out = append(out, opt.Value)
		}
	}
	return out
}

// ValidatePayload checks data, typically validation.Result.Data, against the
// exported schema of s. Values are normalised through JSON first so Go slices
// and numbers take the shapes kin-openapi expects.
func ValidatePayload(ctx context.Context, s *schema.Schema, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("openapi: encode payload: %w", err)
	}
	var normalised any
	if err := json.Unmarshal(raw, &normalised); err != nil {
		return fmt.Errorf("openapi: decode payload: %w", err)
	}
	if err := Schema(s).VisitJSON(normalised); err != nil {
		return fmt.Errorf("openapi: %s: %w", s.Key, err)
	}
	return nil
}
