package entity

import "errors"

// Entity errors.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("entity: not found")

	// ErrUnknownEntity is returned when a name has no registered descriptor.
	ErrUnknownEntity = errors.New("entity: unknown entity")

	// ErrDuplicate is returned when registering a name twice.
	ErrDuplicate = errors.New("entity: duplicate registration")
)
