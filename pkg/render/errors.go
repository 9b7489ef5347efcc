package render

import (
	"strings"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// ErrorMapping splits an error map into messages attached to visible fields
// and form level messages.
type ErrorMapping struct {
	Fields model.Errors
	Form   []string
}

// MergeFormErrors concatenates and normalises form level messages, trimming
// whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrors normalises messages per field. Keys that do not name a declared
// field are moved to the form level so no message is lost.
func MapErrors(s *schema.Schema, errs model.Errors) ErrorMapping {
	mapping := ErrorMapping{Fields: model.Errors{}}
	for _, name := range errs.Fields() {
		msgs := normalizeMessages(errs[name])
		if len(msgs) == 0 {
			continue
		}
		if _, ok := s.Field(name); !ok {
			mapping.Form = append(mapping.Form, msgs...)
			continue
		}
		mapping.Fields.Set(name, msgs)
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
