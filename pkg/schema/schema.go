// Package schema defines a form schema: a keyed, titled, ordered list of
// fields plus the aggregate validator that is authoritative at submission
// time. Check verifies a schema's static invariants (unique names, known
// drivers, acyclic conditions, well-formed rules) before it is registered.
package schema

import (
	"github.com/goliatone/go-formflow/pkg/model"
)

// Validator derives cross-field errors from a value map. Implementations
// must be pure: the same values always yield the same errors.
type Validator interface {
	Validate(values model.Values) model.Errors
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(values model.Values) model.Errors

// Validate delegates to the underlying function.
func (fn ValidatorFunc) Validate(values model.Values) model.Errors {
	return fn(values)
}

// Schema is one form definition. Schemas are immutable once registered.
type Schema struct {
	Key         string        `json:"key" yaml:"key"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []model.Field `json:"fields" yaml:"fields"`
	Validator   Validator     `json:"-" yaml:"-"`
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (model.Field, bool) {
	if s == nil {
		return model.Field{}, false
	}
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return model.Field{}, false
}

// FieldNames returns field names in declaration order.
func (s *Schema) FieldNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		names = append(names, field.Name)
	}
	return names
}

// HasAggregate reports whether an explicit aggregate validator is attached.
func (s *Schema) HasAggregate() bool {
	return s != nil && s.Validator != nil
}
