// Package visibility decides which fields of a flat form are currently shown.
// A field without a condition is always visible; otherwise it is visible only
// while its driver field holds a scalar equal to (or a member of) the
// condition's value. An absent driver value never matches.
package visibility

import "github.com/goliatone/go-formflow/pkg/model"

// Visible reports whether field is shown for the given values.
func Visible(field model.Field, values model.Values) bool {
	cond := field.Condition
	if cond == nil {
		return true
	}
	current := values.Get(cond.Field)
	if current.Kind() != model.KindScalar {
		return false
	}
	return cond.Accepts(current.Text())
}

// Effective restricts values to declared fields and then repeatedly drops
// the values of hidden fields until nothing changes. A field driven by a
// hidden field is therefore hidden as well, whatever stale value its driver
// still carries in values.
func Effective(fields []model.Field, values model.Values) model.Values {
	out := make(model.Values, len(values))
	for _, field := range fields {
		if value, ok := values[field.Name]; ok {
			out[field.Name] = value
		}
	}
	for changed := true; changed; {
		changed = false
		for _, field := range fields {
			if _, ok := out[field.Name]; ok && !Visible(field, out) {
				delete(out, field.Name)
				changed = true
			}
		}
	}
	return out
}

// VisibleFields returns the visible subset of fields in declaration order.
// Visibility is evaluated against Effective(fields, values).
func VisibleFields(fields []model.Field, values model.Values) []model.Field {
	effective := Effective(fields, values)
	out := make([]model.Field, 0, len(fields))
	for _, field := range fields {
		if Visible(field, effective) {
			out = append(out, field)
		}
	}
	return out
}

// VisibleNames is VisibleFields reduced to names.
func VisibleNames(fields []model.Field, values model.Values) []string {
	visible := VisibleFields(fields, values)
	names := make([]string, 0, len(visible))
	for _, field := range visible {
		names = append(names, field.Name)
	}
	return names
}

// Filter restricts values to entries of visible fields. Keys that do not
// belong to any declared field are dropped as well.
func Filter(fields []model.Field, values model.Values) model.Values {
	effective := Effective(fields, values)
	out := make(model.Values, len(effective))
	for _, field := range fields {
		if !Visible(field, effective) {
			continue
		}
		if value, ok := effective[field.Name]; ok {
			out[field.Name] = value
		}
	}
	return out
}

// Dependents returns the fields whose condition is driven by name.
func Dependents(fields []model.Field, name string) []model.Field {
	var out []model.Field
	for _, field := range fields {
		if field.Condition != nil && field.Condition.Field == name {
			out = append(out, field)
		}
	}
	return out
}

// Hidden returns the names of fields that are not visible.
func Hidden(fields []model.Field, values model.Values) []string {
	effective := Effective(fields, values)
	var out []string
	for _, field := range fields {
		if !Visible(field, effective) {
			out = append(out, field.Name)
		}
	}
	return out
}
