package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// Result is the outcome of a submission. Exactly one of Payload and Errors
// carries content: Payload is the visible subset of the values when the
// aggregate validator found nothing, Errors lists every violation otherwise.
type Result struct {
	Schema  string       `json:"schema"`
	Payload model.Values `json:"payload,omitempty"`
	Errors  model.Errors `json:"errors,omitempty"`

	fields []model.Field
}

// OK reports whether the submission was accepted.
func (r Result) OK() bool {
	return r.Errors.Empty()
}

// Err returns a *SubmissionError for rejected submissions and nil otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &SubmissionError{Schema: r.Schema, Errors: r.Errors.Clone()}
}

// Data projects the payload onto plain Go values: number fields become
// float64 (nil when blank), checkbox fields []string, everything else string.
func (r Result) Data() map[string]any {
	if !r.OK() || r.Payload == nil {
		return nil
	}
	types := make(map[string]model.FieldType, len(r.fields))
	for _, field := range r.fields {
		types[field.Name] = field.Type
	}
	out := make(map[string]any, len(r.Payload))
	for name, value := range r.Payload {
		if types[name] == model.FieldTypeNumber && value.Kind() == model.KindScalar {
			if number, ok := value.Float(); ok {
				out[name] = number
			} else {
				out[name] = nil
			}
			continue
		}
		out[name] = value.Interface()
	}
	return out
}

// SubmissionError reports a rejected submission.
type SubmissionError struct {
	Schema string
	Errors model.Errors
}

func (e *SubmissionError) Error() string {
	fields := e.Errors.Fields()
	return fmt.Sprintf("validation: submission of %q rejected: %d error(s) on %s",
		e.Schema, e.Errors.Count(), strings.Join(fields, ", "))
}

// Submission filters values to the fields visible under them and runs the
// schema's aggregate validator on the filtered map. Schemas without an
// aggregate validator fall back to RulesValidator over their fields.
func Submission(s *schema.Schema, values model.Values) Result {
	filtered := visibility.Filter(s.Fields, values)

	validator := s.Validator
	if validator == nil {
		validator = RulesValidator(s.Fields)
	}

	errs := validator.Validate(filtered.Clone())
	if errs == nil {
		errs = model.Errors{}
	}
	if !errs.Empty() {
		return Result{Schema: s.Key, Errors: errs, fields: s.Fields}
	}
	return Result{Schema: s.Key, Payload: filtered, Errors: model.Errors{}, fields: s.Fields}
}

// RulesValidator builds an aggregate validator that applies each visible
// field's own rules.
func RulesValidator(fields []model.Field) schema.Validator {
	return schema.ValidatorFunc(func(values model.Values) model.Errors {
		errs := model.Errors{}
		for _, field := range visibility.VisibleFields(fields, values) {
			errs.Set(field.Name, Field(field, values.Get(field.Name)))
		}
		return errs
	})
}

// Advisory returns the per-field rule messages of every visible field.
func Advisory(s *schema.Schema, values model.Values) model.Errors {
	return RulesValidator(s.Fields).Validate(values)
}
