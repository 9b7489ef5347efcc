package model

import (
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Condition makes a field visible only while its driver field holds a given
// value. A condition either compares against a single scalar (Value) or tests
// membership in a set (In); In takes precedence when non-nil.
type Condition struct {
	Field string
	Value string
	In    []string
}

// When builds a scalar equality condition.
func When(field, value string) *Condition {
	return &Condition{Field: field, Value: value}
}

// WhenIn builds a set membership condition.
func WhenIn(field string, values ...string) *Condition {
	in := make([]string, len(values))
	copy(in, values)
	return &Condition{Field: field, In: in}
}

// IsSet reports whether the condition tests set membership.
func (c Condition) IsSet() bool {
	return c.In != nil
}

// Accepts reports whether the scalar s satisfies the condition.
func (c Condition) Accepts(s string) bool {
	if c.IsSet() {
		for _, candidate := range c.In {
			if candidate == s {
				return true
			}
		}
		return false
	}
	return s == c.Value
}

// Candidates returns the accepted values as a slice.
func (c Condition) Candidates() []string {
	if c.IsSet() {
		return append([]string(nil), c.In...)
	}
	return []string{c.Value}
}

type conditionWire struct {
	Field string `json:"field" yaml:"field"`
	Value any    `json:"value" yaml:"value"`
}

// MarshalJSON encodes the condition as {"field": ..., "value": scalar|[...]}.
func (c Condition) MarshalJSON() ([]byte, error) {
	wire := conditionWire{Field: c.Field, Value: c.Value}
	if c.IsSet() {
		wire.Value = c.Candidates()
	}
	return json.Marshal(wire)
}

// UnmarshalJSON accepts a scalar or an array for "value".
func (c *Condition) UnmarshalJSON(data []byte) error {
	var wire conditionWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	return c.fromWire(wire)
}

// UnmarshalYAML accepts a scalar or a sequence for "value".
func (c *Condition) UnmarshalYAML(node *yaml.Node) error {
	var wire conditionWire
	if err := node.Decode(&wire); err != nil {
		return err
	}
	return c.fromWire(wire)
}

func (c *Condition) fromWire(wire conditionWire) error {
	c.Field = wire.Field
	c.Value = ""
	c.In = nil
	switch typed := wire.Value.(type) {
	case nil:
		return fmt.Errorf("model: condition on %q has no value", wire.Field)
	case []any:
		c.In = make([]string, 0, len(typed))
		for _, item := range typed {
			c.In = append(c.In, scalarText(item))
		}
	default:
		c.Value = scalarText(typed)
	}
	return nil
}
