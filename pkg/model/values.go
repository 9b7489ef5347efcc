package model

import (
	"sort"
	"strings"
)

// Values maps field names to their current value. A missing key means the
// field has never been set or was cleared.
type Values map[string]Value

// Get returns the stored value; the zero Value signals absence.
func (v Values) Get(name string) Value {
	if v == nil {
		return Value{}
	}
	return v[name]
}

// Has reports whether name has an entry.
func (v Values) Has(name string) bool {
	if v == nil {
		return false
	}
	_, ok := v[name]
	return ok
}

// Clone returns a shallow copy. Value is immutable so this is a full copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// Names returns the keys in lexical order.
func (v Values) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Interface converts the map into plain Go values (string / []string).
func (v Values) Interface() map[string]any {
	out := make(map[string]any, len(v))
	for key, value := range v {
		out[key] = value.Interface()
	}
	return out
}

// Errors maps field names to ordered lists of messages.
type Errors map[string][]string

// Add appends a message for field, ignoring blank messages.
func (e Errors) Add(field, message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	e[field] = append(e[field], message)
}

// Set replaces the messages for field, dropping the entry when msgs is empty.
func (e Errors) Set(field string, msgs []string) {
	if len(msgs) == 0 {
		delete(e, field)
		return
	}
	e[field] = append([]string(nil), msgs...)
}

// For returns the messages recorded for field.
func (e Errors) For(field string) []string {
	if e == nil {
		return nil
	}
	return e[field]
}

// Empty reports whether no field carries a message.
func (e Errors) Empty() bool {
	for _, msgs := range e {
		if len(msgs) > 0 {
			return false
		}
	}
	return true
}

// Count returns the total number of messages.
func (e Errors) Count() int {
	total := 0
	for _, msgs := range e {
		total += len(msgs)
	}
	return total
}

// Fields returns the names of fields with at least one message, sorted.
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for name, msgs := range e {
		if len(msgs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Clone deep copies the map.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for key, msgs := range e {
		out[key] = append([]string(nil), msgs...)
	}
	return out
}

// Merge appends every message from other, preserving order.
func (e Errors) Merge(other Errors) {
	for _, name := range other.Fields() {
		for _, msg := range other[name] {
			e.Add(name, msg)
		}
	}
}
