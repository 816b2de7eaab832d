package transform

import (
	"fmt"

	"github.com/rgehrsitz/rescisao/internal/domain"
)

// InputTransform is a composable what-if edit of a termination input, such as moving the
// termination date or switching the notice type.
type InputTransform interface {
	// Apply returns a modified copy of base; base itself is never changed.
	Apply(base *domain.TerminationInput) (*domain.TerminationInput, error)

	// Name returns the registry identifier (e.g., "postpone_termination").
	Name() string

	// Description returns a human-readable description in Portuguese for notes and reports.
	Description() string

	// Validate checks the parameters against base without applying the transform.
	Validate(base *domain.TerminationInput) error
}

// ApplyTransforms applies transforms in order, each one receiving the output of the
// previous. With no transforms it returns a deep copy of base.
func ApplyTransforms(base *domain.TerminationInput, transforms []InputTransform) (*domain.TerminationInput, error) {
	if base == nil {
		return nil, fmt.Errorf("base input cannot be nil")
	}

	current := base.DeepCopy()
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(&current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(&current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = *next
	}

	return &current, nil
}

// Describe lists the descriptions of transforms in order
func Describe(transforms []InputTransform) []string {
	out := make([]string, 0, len(transforms))
	for _, t := range transforms {
		out = append(out, t.Description())
	}
	return out
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
