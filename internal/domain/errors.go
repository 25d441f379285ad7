package domain

import "errors"

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned by admin-only operations outside admin mode.
	ErrForbidden = errors.New("forbidden")
)

// ConflictError reports an insert whose ID is already taken. Seed loading
// relies on it to refuse loading the same data twice.
type ConflictError struct {
	ResourceType string // article, update
	ResourceID   string
}

func (e *ConflictError) Error() string {
	return e.ResourceType + " " + e.ResourceID + " already exists"
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
