package schema

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Constraint is a single aggregate check attributed to one field. Violated
// receives the field's value (zero Value when absent) and the full value map.
type Constraint struct {
	Field    string
	Message  string
	Violated func(value model.Value, values model.Values) bool
}

// Require fails when the value is absent, blank (whitespace only) or an empty
// set.
func Require(field, message string) Constraint {
	return Constraint{
		Field:   field,
		Message: message,
		Violated: func(value model.Value, _ model.Values) bool {
			return blank(value)
		},
	}
}

// RequireNumber fails when the value is absent or does not parse as a number.
func RequireNumber(field, message string) Constraint {
	return Constraint{
		Field:   field,
		Message: message,
		Violated: func(value model.Value, _ model.Values) bool {
			if blank(value) {
				return true
			}
			_, ok := value.Float()
			return !ok
		},
	}
}

// MinLength fails when a present value is shorter than n. Absent values pass;
// pair with Require to make the field mandatory.
func MinLength(field string, n int, message string) Constraint {
	return Constraint{
		Field:   field,
		Message: message,
		Violated: func(value model.Value, _ model.Values) bool {
			return value.Present() && value.Len() < n
		},
	}
}

// MaxLength fails when a present value is longer than n.
func MaxLength(field string, n int, message string) Constraint {
	return Constraint{
		Field:   field,
		Message: message,
		Violated: func(value model.Value, _ model.Values) bool {
			return value.Present() && value.Len() > n
		},
	}
}

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+'\-]+@[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?)*\.[A-Za-z]{2,}$`)

// Email fails when a present value is not an email address.
func Email(field, message string) Constraint {
	return Constraint{
		Field:   field,
		Message: message,
		Violated: func(value model.Value, _ model.Values) bool {
			if !value.Present() {
				return false
			}
			return value.Kind() != model.KindScalar || !emailPattern.MatchString(value.Text())
		},
	}
}

// Matches fails when a present value does not match pattern.
func Matches(field, pattern, message string) Constraint {
	re, err := model.CompilePattern(pattern)
	return Constraint{
		Field:   field,
		Message: message,
		Violated: func(value model.Value, _ model.Values) bool {
			if !value.Present() {
				return false
			}
			return err != nil || !re.MatchString(value.Text())
		},
	}
}

// OneOf fails when the value is absent or not one of allowed.
func OneOf(field string, allowed []string, message string) Constraint {
	set := make(map[string]struct{}, len(allowed))
	for _, item := range allowed {
		set[item] = struct{}{}
	}
	return Constraint{
		Field:   field,
		Message: message,
		Violated: func(value model.Value, _ model.Values) bool {
			if value.Kind() != model.KindScalar {
				return true
			}
			_, ok := set[value.Text()]
			return !ok
		},
	}
}

// NumberBetween fails when a present, non-empty value is not a number within
// [min, max]. Absent and empty values pass.
func NumberBetween(field string, min, max float64, message string) Constraint {
	return Constraint{
		Field:   field,
		Message: message,
		Violated: func(value model.Value, _ model.Values) bool {
			if blank(value) {
				return false
			}
			number, ok := value.Float()
			return !ok || number < min || number > max
		},
	}
}

// RequireSelection fails when fewer than n members are selected.
func RequireSelection(field string, n int, message string) Constraint {
	return Constraint{
		Field:   field,
		Message: message,
		Violated: func(value model.Value, _ model.Values) bool {
			if value.Kind() != model.KindMulti {
				return true
			}
			return value.Len() < n
		},
	}
}

// Custom wraps an arbitrary predicate.
func Custom(field, message string, violated func(value model.Value, values model.Values) bool) Constraint {
	return Constraint{Field: field, Message: message, Violated: violated}
}

func blank(value model.Value) bool {
	switch value.Kind() {
	case model.KindScalar:
		return strings.TrimSpace(value.Text()) == ""
	case model.KindMulti:
		return value.Len() == 0
	default:
		return true
	}
}

type step struct {
	when        *model.Condition
	constraints []Constraint
}

// Refiner is a declarative aggregate validator: unconditional constraints
// plus branches that only apply while a driver field holds given values. All
// steps run; every violation is recorded in declaration order.
type Refiner struct {
	steps []step
}

var _ Validator = (*Refiner)(nil)
var _ FieldReferencer = (*Refiner)(nil)

// Refine starts a Refiner with unconditional constraints.
func Refine(constraints ...Constraint) *Refiner {
	r := &Refiner{}
	return r.Always(constraints...)
}

// Always appends unconditional constraints.
func (r *Refiner) Always(constraints ...Constraint) *Refiner {
	if len(constraints) > 0 {
		r.steps = append(r.steps, step{constraints: constraints})
	}
	return r
}

// When appends constraints that apply only while cond matches the values.
func (r *Refiner) When(cond *model.Condition, constraints ...Constraint) *Refiner {
	if cond != nil && len(constraints) > 0 {
		r.steps = append(r.steps, step{when: cond, constraints: constraints})
	}
	return r
}

// Validate implements Validator.
func (r *Refiner) Validate(values model.Values) model.Errors {
	errs := model.Errors{}
	if r == nil {
		return errs
	}
	for _, st := range r.steps {
		if st.when != nil && !branchActive(st.when, values) {
			continue
		}
		for _, c := range st.constraints {
			if c.Violated == nil {
				continue
			}
			if c.Violated(values.Get(c.Field), values) {
				errs.Add(c.Field, c.Message)
			}
		}
	}
	return errs
}

// ReferencedFields lists every driver and constrained field name.
func (r *Refiner) ReferencedFields() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if _, ok := seen[name]; ok || name == "" {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, st := range r.steps {
		if st.when != nil {
			add(st.when.Field)
		}
		for _, c := range st.constraints {
			add(c.Field)
		}
	}
	return out
}

func branchActive(cond *model.Condition, values model.Values) bool {
	current := values.Get(cond.Field)
	if current.Kind() != model.KindScalar {
		return false
	}
	return cond.Accepts(current.Text())
}

// RequireWhen requires target while driver holds one of values.
func RequireWhen(driver string, values []string, target, message string) Constraint {
	cond := model.WhenIn(driver, values...)
	return Constraint{
		Field:   target,
		Message: message,
		Violated: func(value model.Value, all model.Values) bool {
			return branchActive(cond, all) && blank(value)
		},
	}
}

// RequireSelectionWhen requires at least one selected member of target while
// driver holds one of values.
func RequireSelectionWhen(driver string, values []string, target, message string) Constraint {
	cond := model.WhenIn(driver, values...)
	inner := RequireSelection(target, 1, message)
	return Constraint{
		Field:   target,
		Message: message,
		Violated: func(value model.Value, all model.Values) bool {
			return branchActive(cond, all) && inner.Violated(value, all)
		},
	}
}
