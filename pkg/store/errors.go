package store

import "errors"

var (
	// ErrNotFound is returned when no document is stored under a name.
	ErrNotFound = errors.New("store: form not found")
	// ErrInvalidName is returned when saving under a blank name.
	ErrInvalidName = errors.New("store: form name is required")
)
