package registry

import "errors"

var (
	// ErrSchemaNotFound is returned when a key has no registered schema.
	ErrSchemaNotFound = errors.New("registry: schema not found")
	// ErrDuplicateKey is returned when a key is registered twice.
	ErrDuplicateKey = errors.New("registry: duplicate schema key")
	// ErrSealed is returned by Register once the registry has been sealed.
	ErrSealed = errors.New("registry: sealed")
)
