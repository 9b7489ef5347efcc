package schema

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Rule names accepted in declarative aggregate sections.
const (
	RuleRequired  = "required"
	RuleNumber    = "number"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RuleEmail     = "email"
	RulePattern   = "pattern"
	RuleOneOf     = "oneOf"
	RuleBetween   = "between"
	RuleSelect    = "select"
)

// AggregateRule is the document form of a Constraint. When is optional and
// scopes the rule to a conditional branch.
type AggregateRule struct {
	Field   string           `json:"field" yaml:"field"`
	Rule    string           `json:"rule" yaml:"rule"`
	Message string           `json:"message" yaml:"message"`
	When    *model.Condition `json:"when,omitempty" yaml:"when,omitempty"`
	Length  int              `json:"length,omitempty" yaml:"length,omitempty"`
	Values  []string         `json:"values,omitempty" yaml:"values,omitempty"`
	Min     *float64         `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64         `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern string           `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

var errUnknownRule = errors.New("unknown aggregate rule")

// Constraint converts the rule into its Go primitive.
func (r AggregateRule) Constraint() (Constraint, error) {
	if r.Field == "" {
		return Constraint{}, fmt.Errorf("schema: aggregate rule %q: field is required", r.Rule)
	}
	if r.Message == "" {
		return Constraint{}, fmt.Errorf("schema: aggregate rule %q on %q: message is required", r.Rule, r.Field)
	}
	switch r.Rule {
	case RuleRequired:
		return Require(r.Field, r.Message), nil
	case RuleNumber:
		return RequireNumber(r.Field, r.Message), nil
	case RuleMinLength:
		return MinLength(r.Field, r.Length, r.Message), nil
	case RuleMaxLength:
		return MaxLength(r.Field, r.Length, r.Message), nil
	case RuleEmail:
		return Email(r.Field, r.Message), nil
	case RulePattern:
		if _, err := model.CompilePattern(r.Pattern); err != nil {
			return Constraint{}, fmt.Errorf("schema: aggregate rule on %q: %w", r.Field, err)
		}
		return Matches(r.Field, r.Pattern, r.Message), nil
	case RuleOneOf:
		if len(r.Values) == 0 {
			return Constraint{}, fmt.Errorf("schema: aggregate oneOf on %q: values are required", r.Field)
		}
		return OneOf(r.Field, r.Values, r.Message), nil
	case RuleBetween:
		if r.Min == nil || r.Max == nil {
			return Constraint{}, fmt.Errorf("schema: aggregate between on %q: min and max are required", r.Field)
		}
		return NumberBetween(r.Field, *r.Min, *r.Max, r.Message), nil
	case RuleSelect:
		n := r.Length
		if n < 1 {
			n = 1
		}
		return RequireSelection(r.Field, n, r.Message), nil
	default:
		return Constraint{}, fmt.Errorf("schema: aggregate rule %q on %q: %w", r.Rule, r.Field, errUnknownRule)
	}
}

// BuildRefiner assembles a Refiner from declarative rules in order. Every
// invalid rule is reported.
func BuildRefiner(rules []AggregateRule) (*Refiner, error) {
	r := &Refiner{}
	var errs []error
	for i, rule := range rules {
		c, err := rule.Constraint()
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %d: %w", i, err))
			continue
		}
		if rule.When == nil {
			r.Always(c)
			continue
		}
		r.When(rule.When, c)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}
