package calculation

import (
	"errors"
	"fmt"
)

var (
	// ErrReasonNotFound means the termination reason code is not in the catalog
	ErrReasonNotFound = errors.New("termination reason not found")
	// ErrCategoryNotFound means the reason points at a category missing from the rules
	ErrCategoryNotFound = errors.New("termination category not found")
	// ErrInvalidInput covers invariant violations in the termination input
	ErrInvalidInput = errors.New("invalid termination input")
	// ErrInvalidRules covers malformed tax tables
	ErrInvalidRules = errors.New("invalid regulatory rules")
)

// LookupError reports a catalog lookup failure. The calculation is aborted with no
// partial result.
type LookupError struct {
	Kind string // "reason" or "category"
	Code string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Code, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// ValidationError names the input field that broke an invariant
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// IsClientError reports whether err was caused by the caller's input rather than by the
// engine or its rules.
func IsClientError(err error) bool {
	return errors.Is(err, ErrReasonNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrInvalidInput)
}
