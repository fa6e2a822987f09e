package store

import "errors"

var (
	// ErrNotFound is returned when an entity doesn't exist or is deleted (has TTL <= now).
	ErrNotFound = errors.New("stockroom: entity not found")

	// ErrInvalidKey is returned when an entity's key is empty or has an empty attribute.
	ErrInvalidKey = errors.New("stockroom: invalid entity key")
)
