// Package session owns form state. The engine functions (Apply, Submit) are
// pure: they take a State and return a new one. Session wraps a State behind
// a mutex so a change is observed either entirely or not at all, and Store
// keeps sessions addressable by id for servers.
package session

import (
	"fmt"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/validation"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// State is the value map and advisory errors of one form.
type State struct {
	Schema string       `json:"schema"`
	Values model.Values `json:"values"`
	Errors model.Errors `json:"errors"`
}

// NewState returns the empty state for schema key.
func NewState(key string) State {
	return State{Schema: key, Values: model.Values{}, Errors: model.Errors{}}
}

// Clone deep copies the state.
func (s State) Clone() State {
	return State{Schema: s.Schema, Values: s.Values.Clone(), Errors: s.Errors.Clone()}
}

// Update describes the outcome of one change.
type Update struct {
	Field   string       `json:"field"`
	Visible []string     `json:"visible"`
	Cleared []string     `json:"cleared,omitempty"`
	Values  model.Values `json:"values"`
	Errors  model.Errors `json:"errors"`
}

// Apply sets name to value and returns the resulting state. Fields whose
// driver chain no longer matches are cleared, together with their errors,
// and the changed field's own rules are re-run. Errors of other fields are
// left as they were. An absent value clears the field. A field that is hidden
// under the resulting values keeps no value: the change is reported in Cleared.
func Apply(s *schema.Schema, state State, name string, value model.Value) (State, Update, error) {
	field, ok := s.Field(name)
	if !ok {
		return state, Update{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if err := checkKind(field, value); err != nil {
		return state, Update{}, err
	}

	next := state.Clone()
	if next.Values == nil {
		next.Values = model.Values{}
	}
	if next.Errors == nil {
		next.Errors = model.Errors{}
	}

	if value.Present() {
		next.Values[name] = value
	} else {
		delete(next.Values, name)
	}

	cleared := clearHidden(s.Fields, next, name)

	if visibility.Visible(field, visibility.Effective(s.Fields, next.Values)) {
		next.Errors.Set(name, validation.Field(field, value))
	} else {
		if _, stored := next.Values[name]; stored {
			cleared = append(cleared, name)
		}
		delete(next.Values, name)
		delete(next.Errors, name)
	}

	update := Update{
		Field:   name,
		Visible: visibility.VisibleNames(s.Fields, next.Values),
		Cleared: cleared,
		Values:  next.Values.Clone(),
		Errors:  next.Errors.Clone(),
	}
	return next, update, nil
}

// clearHidden walks the dependents of driver breadth first and removes the
// values and errors of every field that is no longer visible.
func clearHidden(fields []model.Field, state State, driver string) []string {
	var cleared []string
	seen := map[string]struct{}{driver: {}}
	queue := []string{driver}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dep := range visibility.Dependents(fields, current) {
			if _, done := seen[dep.Name]; done {
				continue
			}
			if visibility.Visible(dep, state.Values) {
				continue
			}
			seen[dep.Name] = struct{}{}
			if _, had := state.Values[dep.Name]; had {
				delete(state.Values, dep.Name)
				cleared = append(cleared, dep.Name)
			}
			delete(state.Errors, dep.Name)
			queue = append(queue, dep.Name)
		}
	}
	return cleared
}

func checkKind(field model.Field, value model.Value) error {
	switch value.Kind() {
	case model.KindAbsent:
		return nil
	case model.KindMulti:
		if field.Type.Multi() {
			return nil
		}
	case model.KindScalar:
		if !field.Type.Multi() {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is %s", ErrValueKind, field.Name, field.Type)
}

// Submit runs the submission path. On rejection the aggregate errors replace
// the state's errors; on success the errors are cleared. Values are never
// modified.
func Submit(s *schema.Schema, state State) (State, validation.Result) {
	result := validation.Submission(s, state.Values)
	next := state.Clone()
	if result.OK() {
		next.Errors = model.Errors{}
	} else {
		next.Errors = result.Errors.Clone()
	}
	return next, result
}
