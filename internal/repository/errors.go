package repository

import "errors"

// Common repository errors
var (
	// ErrDuplicate is returned when a conditional insert hits an existing
	// row (duplicate board name, membership pair, pending request).
	ErrDuplicate = errors.New("duplicate record")
)
