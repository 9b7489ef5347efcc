package render

import (
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/validation"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// View is everything a renderer needs for one form: the visible fields with
// their current values and messages, plus form level state.
type View struct {
	Schema     *schema.Schema
	SessionID  string
	Fields     []FieldView
	Values     model.Values
	Errors     model.Errors
	FormErrors []string
	Submitted  bool
	Payload    map[string]any
}

// FieldView pairs a visible field with its value and messages.
type FieldView struct {
	Field  model.Field
	Value  model.Value
	Errors []string
}

// Invalid reports whether the field carries messages.
func (f FieldView) Invalid() bool {
	return len(f.Errors) > 0
}

// NewView builds a view over the fields of s visible under values. Messages
// for fields that are not visible become form level messages.
func NewView(s *schema.Schema, values model.Values, errs model.Errors) View {
	mapping := MapErrors(s, errs)
	view := View{
		Schema:     s,
		Values:     values.Clone(),
		Errors:     mapping.Fields,
		FormErrors: mapping.Form,
	}
	visible := visibility.VisibleFields(s.Fields, values)
	view.Fields = make([]FieldView, 0, len(visible))
	for _, field := range visible {
		view.Fields = append(view.Fields, FieldView{
			Field:  field,
			Value:  values.Get(field.Name),
			Errors: mapping.Fields.For(field.Name),
		})
	}
	return view
}

// FromSession builds a view from a consistent snapshot of sess.
func FromSession(sess *session.Session) View {
	s, snap := sess.Current()
	view := NewView(s, snap.Values, snap.Errors)
	view.SessionID = snap.ID
	return view
}

// WithResult records a submission outcome on the view.
func (v View) WithResult(result validation.Result) View {
	v.Submitted = true
	if result.OK() {
		v.Payload = result.Data()
		return v
	}
	mapping := MapErrors(v.Schema, result.Errors)
	v.Errors = mapping.Fields
	v.FormErrors = MergeFormErrors(v.FormErrors, mapping.Form...)
	for i := range v.Fields {
		v.Fields[i].Errors = mapping.Fields.For(v.Fields[i].Field.Name)
	}
	return v
}
