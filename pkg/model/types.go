package model

import "strings"

// FieldType enumerates the supported input kinds.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
)

// FieldTypes lists every supported type in declaration order.
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeEmail,
	FieldTypeNumber,
	FieldTypeSelect,
	FieldTypeRadio,
	FieldTypeCheckbox,
}

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	for _, known := range FieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Multi reports whether the field stores a set of strings.
func (t FieldType) Multi() bool {
	return t == FieldTypeCheckbox
}

// HasOptions reports whether the field type draws its values from Options.
func (t FieldType) HasOptions() bool {
	switch t {
	case FieldTypeSelect, FieldTypeRadio, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// Option is a single value/label pair offered by select, radio and checkbox
// fields.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Rules holds the per-field validation constraints. Every rule is optional;
// nil pointers and an empty Pattern disable the corresponding check.
type Rules struct {
	Required  bool     `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// Empty reports whether no rule is configured.
func (r Rules) Empty() bool {
	return !r.Required && r.MinLength == nil && r.MaxLength == nil &&
		r.Min == nil && r.Max == nil && r.Pattern == ""
}

// Int returns a pointer to n, for use in Rules literals.
func Int(n int) *int { return &n }

// Float returns a pointer to f, for use in Rules literals.
func Float(f float64) *float64 { return &f }

// Field describes one declared input.
type Field struct {
	Name        string     `json:"name" yaml:"name"`
	Type        FieldType  `json:"type" yaml:"type"`
	Label       string     `json:"label" yaml:"label"`
	Placeholder string     `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string     `json:"help,omitempty" yaml:"help,omitempty"`
	Options     []Option   `json:"options,omitempty" yaml:"options,omitempty"`
	Rules       Rules      `json:"validationRules,omitempty" yaml:"validationRules,omitempty"`
	Condition   *Condition `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// DisplayLabel returns the label, falling back to the field name.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.Name
}

// OptionLabel resolves the label for an option value. Unknown values are
// returned unchanged.
func (f Field) OptionLabel(value string) string {
	for _, opt := range f.Options {
		if opt.Value == value {
			if opt.Label != "" {
				return opt.Label
			}
			return opt.Value
		}
	}
	return value
}

// HasOption reports whether value is one of the declared option values.
func (f Field) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
