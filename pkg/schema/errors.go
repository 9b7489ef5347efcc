package schema

import (
	"fmt"
	"strings"
)

// Issue is one static problem found by Check.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// CheckError collects every issue found in a schema.
type CheckError struct {
	Schema string
	Issues []Issue
}

func (e *CheckError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("schema %q: %s", e.Schema, strings.Join(parts, "; "))
}

func (e *CheckError) add(field, format string, args ...any) {
	e.Issues = append(e.Issues, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
}
