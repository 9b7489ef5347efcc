package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

const (
	// KindAbsent is the zero Value: nothing stored.
	KindAbsent ValueKind = iota
	// KindScalar holds one string (text, email, number, select, radio).
	KindScalar
	// KindMulti holds a set of strings (checkbox).
	KindMulti
)

// Value is the tagged variant stored per field. Numbers are kept as their
// textual input; callers parse them where a numeric reading is required.
type Value struct {
	kind   ValueKind
	scalar string
	items  []string
}

// Scalar wraps a single string.
func Scalar(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// Multi wraps a set of strings. Duplicates are dropped, order is preserved.
func Multi(items ...string) Value {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return Value{kind: KindMulti, items: out}
}

// Kind reports which variant is held.
func (v Value) Kind() ValueKind { return v.kind }

// Present reports whether any variant is held (an empty scalar is present).
func (v Value) Present() bool { return v.kind != KindAbsent }

// Empty reports whether the value is absent, an empty string or an empty set.
func (v Value) Empty() bool {
	switch v.kind {
	case KindScalar:
		return v.scalar == ""
	case KindMulti:
		return len(v.items) == 0
	default:
		return true
	}
}

// Text returns the scalar string. Multi values are joined with commas.
func (v Value) Text() string {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindMulti:
		return strings.Join(v.items, ",")
	default:
		return ""
	}
}

// Items returns the set members. A scalar yields a single-element slice.
func (v Value) Items() []string {
	switch v.kind {
	case KindMulti:
		return append([]string(nil), v.items...)
	case KindScalar:
		return []string{v.scalar}
	default:
		return nil
	}
}

// Contains reports whether s is the scalar or a member of the set.
func (v Value) Contains(s string) bool {
	switch v.kind {
	case KindScalar:
		return v.scalar == s
	case KindMulti:
		for _, item := range v.items {
			if item == s {
				return true
			}
		}
	}
	return false
}

// Len is the string length in runes for scalars and the member count for sets.
func (v Value) Len() int {
	switch v.kind {
	case KindScalar:
		return len([]rune(v.scalar))
	case KindMulti:
		return len(v.items)
	default:
		return 0
	}
}

// Float parses the scalar as a float64.
func (v Value) Float() (float64, bool) {
	if v.kind != KindScalar {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.scalar), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Equal compares kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.scalar == other.scalar
	case KindMulti:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if v.items[i] != other.items[i] {
				return false
			}
		}
	}
	return true
}

// Interface returns a string, a []string or nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindMulti:
		return v.Items()
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return strconv.Quote(v.scalar)
	case KindMulti:
		return fmt.Sprintf("%q", v.items)
	default:
		return "<absent>"
	}
}

// MarshalJSON encodes scalars as strings, sets as arrays and absent as null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON accepts strings, numbers, booleans, arrays of those, and null.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ErrUnsupportedValue is returned by ValueOf for maps and other nested shapes.
var ErrUnsupportedValue = errors.New("model: unsupported value shape")

// ValueOf converts decoded JSON/YAML data into a Value.
func ValueOf(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return typed, nil
	case string:
		return Scalar(typed), nil
	case []string:
		return Multi(typed...), nil
	case []any:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			switch item.(type) {
			case map[string]any, []any:
				return Value{}, ErrUnsupportedValue
			}
			items = append(items, scalarText(item))
		}
		return Multi(items...), nil
	case map[string]any:
		return Value{}, ErrUnsupportedValue
	default:
		return Scalar(scalarText(typed)), nil
	}
}

func scalarText(raw any) string {
	switch typed := raw.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return fmt.Sprint(typed)
	}
}
