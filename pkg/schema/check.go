package schema

import (
	"strings"

	"github.com/goliatone/go-formflow/pkg/model"
)

// FieldReferencer is implemented by validators that can report which fields
// they read or attribute errors to. Check verifies those names exist.
type FieldReferencer interface {
	ReferencedFields() []string
}

// Check validates the static invariants of s and returns a *CheckError
// listing every problem, or nil.
func Check(s *Schema) error {
	if s == nil {
		return &CheckError{Issues: []Issue{{Message: "schema is nil"}}}
	}
	report := &CheckError{Schema: s.Key}

	if strings.TrimSpace(s.Key) == "" {
		report.add("", "key is required")
	}
	if len(s.Fields) == 0 {
		report.add("", "at least one field is required")
	}

	index := make(map[string]model.Field, len(s.Fields))
	for pos, field := range s.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			report.add("", "field #%d has no name", pos+1)
			continue
		}
		if name != field.Name {
			report.add(field.Name, "name has surrounding whitespace")
		}
		if _, dup := index[name]; dup {
			report.add(name, "duplicate field name")
			continue
		}
		index[name] = field
		checkField(report, field)
	}

	for _, field := range s.Fields {
		cond := field.Condition
		if cond == nil {
			continue
		}
		switch {
		case cond.Field == "":
			report.add(field.Name, "condition has no driver field")
		case cond.Field == field.Name:
			report.add(field.Name, "condition references the field itself")
		default:
			driver, ok := index[cond.Field]
			if !ok {
				report.add(field.Name, "condition references unknown field %q", cond.Field)
				continue
			}
			if driver.Type.Multi() {
				report.add(field.Name, "condition driver %q must be single-valued", cond.Field)
			}
		}
		if cond.IsSet() && len(cond.In) == 0 {
			report.add(field.Name, "condition value set is empty")
		}
	}

	for _, cycle := range findCycles(s.Fields, index) {
		report.add(cycle[0], "cyclic condition: %s", strings.Join(cycle, " -> "))
	}

	if refs, ok := s.Validator.(FieldReferencer); ok {
		for _, name := range refs.ReferencedFields() {
			if _, known := index[name]; !known {
				report.add(name, "aggregate validator references unknown field")
			}
		}
	}

	if len(report.Issues) == 0 {
		return nil
	}
	return report
}

func checkField(report *CheckError, field model.Field) {
	if !field.Type.Valid() {
		report.add(field.Name, "unsupported type %q", field.Type)
	}
	if field.Type.HasOptions() {
		if len(field.Options) == 0 {
			report.add(field.Name, "%s field requires options", field.Type)
		}
		seen := make(map[string]struct{}, len(field.Options))
		for _, opt := range field.Options {
			if _, dup := seen[opt.Value]; dup {
				report.add(field.Name, "duplicate option value %q", opt.Value)
			}
			seen[opt.Value] = struct{}{}
		}
	}

	rules := field.Rules
	if rules.MinLength != nil && *rules.MinLength < 0 {
		report.add(field.Name, "minLength must not be negative")
	}
	if rules.MaxLength != nil && *rules.MaxLength < 0 {
		report.add(field.Name, "maxLength must not be negative")
	}
	if rules.MinLength != nil && rules.MaxLength != nil && *rules.MinLength > *rules.MaxLength {
		report.add(field.Name, "minLength %d exceeds maxLength %d", *rules.MinLength, *rules.MaxLength)
	}
	if rules.Min != nil && rules.Max != nil && *rules.Min > *rules.Max {
		report.add(field.Name, "min exceeds max")
	}
	if rules.Pattern != "" {
		if _, err := model.CompilePattern(rules.Pattern); err != nil {
			report.add(field.Name, "invalid pattern: %v", err)
		}
	}
}

// findCycles walks each driver chain and returns every distinct cycle once,
// rotated so that it starts at its first declared member.
func findCycles(fields []model.Field, index map[string]model.Field) [][]string {
	order := make(map[string]int, len(fields))
	for pos, field := range fields {
		if _, ok := order[field.Name]; !ok {
			order[field.Name] = pos
		}
	}

	reported := make(map[string]struct{})
	var cycles [][]string
	for _, start := range fields {
		path := []string{}
		onPath := make(map[string]int)
		current := start.Name
		for {
			if pos, ok := onPath[current]; ok {
				cycle := rotate(path[pos:], order)
				key := strings.Join(cycle, "\x00")
				if _, done := reported[key]; !done {
					reported[key] = struct{}{}
					cycles = append(cycles, append(cycle, cycle[0]))
				}
				break
			}
			field, ok := index[current]
			if !ok || field.Condition == nil || field.Condition.Field == "" || field.Condition.Field == current {
				break
			}
			onPath[current] = len(path)
			path = append(path, current)
			current = field.Condition.Field
		}
	}
	return cycles
}

func rotate(cycle []string, order map[string]int) []string {
	best := 0
	for i, name := range cycle {
		if order[name] < order[cycle[best]] {
			best = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[best:]...)
	out = append(out, cycle[:best]...)
	return out
}
