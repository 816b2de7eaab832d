package transform

import (
	"fmt"

	"github.com/rgehrsitz/rescisao/internal/domain"
)

// Adjustable names accepted by OverrideAdjustable
const (
	AdjustableVacation   = "vacation_fraction"
	AdjustableThirteenth = "thirteenth_fraction"
	AdjustableNotice     = "notice_days"
)

// OverrideAdjustable sets the edited value of one prorated quantity. The engine logs the
// override with its justification when it differs from the calculated value.
type OverrideAdjustable struct {
	Field         string
	Value         int
	Justification string
}

func (oa *OverrideAdjustable) Name() string {
	return "override"
}

func (oa *OverrideAdjustable) Description() string {
	return fmt.Sprintf("%s ajustado manualmente para %d", oa.Field, oa.Value)
}

func (oa *OverrideAdjustable) Validate(base *domain.TerminationInput) error {
	max := 0
	switch oa.Field {
	case AdjustableVacation, AdjustableThirteenth:
		max = 12
	case AdjustableNotice:
	default:
		return NewTransformError(oa.Name(), "validate", fmt.Sprintf("unknown adjustable %q", oa.Field), nil)
	}
	if oa.Value < 0 || (max > 0 && oa.Value > max) {
		return NewTransformError(oa.Name(), "validate", fmt.Sprintf("value %d out of range for %s", oa.Value, oa.Field), nil)
	}
	if base == nil {
		return NewTransformError(oa.Name(), "validate", "base input cannot be nil", nil)
	}
	return nil
}

func (oa *OverrideAdjustable) Apply(base *domain.TerminationInput) (*domain.TerminationInput, error) {
	modified := base.DeepCopy()

	var target *domain.Adjustable
	switch oa.Field {
	case AdjustableVacation:
		target = &modified.Adjustables.VacationFraction
	case AdjustableThirteenth:
		target = &modified.Adjustables.ThirteenthFraction
	case AdjustableNotice:
		target = &modified.Adjustables.NoticeDays
	default:
		return nil, NewTransformError(oa.Name(), "apply", fmt.Sprintf("unknown adjustable %q", oa.Field), nil)
	}

	v := oa.Value
	target.Edited = &v
	if oa.Justification != "" {
		target.Justification = oa.Justification
	}
	return &modified, nil
}
