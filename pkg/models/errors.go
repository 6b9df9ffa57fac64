package models

import "errors"

var (
	// ErrValidation marks input rejected before it reaches storage.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a lookup of an unknown identifier.
	ErrNotFound = errors.New("not found")
)
