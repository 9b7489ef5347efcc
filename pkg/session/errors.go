package session

import "errors"

var (
	// ErrUnknownField is returned when a change names a field the schema does
	// not declare.
	ErrUnknownField = errors.New("session: unknown field")
	// ErrValueKind is returned when a change carries a set for a single-valued
	// field or a scalar for a multi-valued one.
	ErrValueKind = errors.New("session: value kind does not match field type")
	// ErrSessionNotFound is returned by Store lookups for unknown ids.
	ErrSessionNotFound = errors.New("session: not found")
)
