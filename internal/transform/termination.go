package transform

import (
	"fmt"

	"github.com/rgehrsitz/rescisao/internal/domain"
)

// PostponeTermination moves the termination date forward by Days. The salary balance
// follows the new day of the month, as for a worker paid monthly.
type PostponeTermination struct {
	Days int
}

func (pt *PostponeTermination) Name() string {
	return "postpone_termination"
}

func (pt *PostponeTermination) Description() string {
	return fmt.Sprintf("Desligamento adiado em %d dia(s)", pt.Days)
}

func (pt *PostponeTermination) Validate(base *domain.TerminationInput) error {
	if pt.Days < 0 {
		return NewTransformError(pt.Name(), "validate", fmt.Sprintf("days must be non-negative, got %d", pt.Days), nil)
	}
	if base == nil {
		return NewTransformError(pt.Name(), "validate", "base input cannot be nil", nil)
	}
	if base.TerminationDate.IsZero() {
		return NewTransformError(pt.Name(), "validate", "input has no termination date", nil)
	}
	return nil
}

func (pt *PostponeTermination) Apply(base *domain.TerminationInput) (*domain.TerminationInput, error) {
	modified := base.DeepCopy()
	modified.TerminationDate = domain.Date{Time: base.TerminationDate.AddDate(0, 0, pt.Days)}
	modified.DaysWorked = modified.TerminationDate.Day()
	return &modified, nil
}

// SetTerminationDate sets an absolute termination date. DaysWorked is replaced only
// when set to a non-negative value.
type SetTerminationDate struct {
	Date       domain.Date
	DaysWorked int // -1 keeps the input's value
}

func (st *SetTerminationDate) Name() string {
	return "set_termination_date"
}

func (st *SetTerminationDate) Description() string {
	return fmt.Sprintf("Data de desligamento alterada para %s", st.Date.Format("02/01/2006"))
}

func (st *SetTerminationDate) Validate(base *domain.TerminationInput) error {
	if st.Date.IsZero() {
		return NewTransformError(st.Name(), "validate", "date cannot be zero", nil)
	}
	if base == nil {
		return NewTransformError(st.Name(), "validate", "base input cannot be nil", nil)
	}
	if !base.HireDate.IsZero() && st.Date.Before(base.HireDate.Time) {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("date %s is before hire date %s", st.Date, base.HireDate), nil)
	}
	if st.DaysWorked > 31 {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("days_worked must be at most 31, got %d", st.DaysWorked), nil)
	}
	return nil
}

func (st *SetTerminationDate) Apply(base *domain.TerminationInput) (*domain.TerminationInput, error) {
	modified := base.DeepCopy()
	modified.TerminationDate = st.Date
	if st.DaysWorked >= 0 {
		modified.DaysWorked = st.DaysWorked
	}
	return &modified, nil
}

// SetNotice switches between worked and indemnified notice
type SetNotice struct {
	Type domain.NoticeType
}

func (sn *SetNotice) Name() string {
	return "set_notice"
}

func (sn *SetNotice) Description() string {
	return fmt.Sprintf("Aviso prévio alterado para %s", sn.Type)
}

func (sn *SetNotice) Validate(base *domain.TerminationInput) error {
	switch sn.Type {
	case domain.NoticeIndemnified, domain.NoticeWorked:
	default:
		return NewTransformError(sn.Name(), "validate", fmt.Sprintf("unknown notice type %q", sn.Type), nil)
	}
	if base == nil {
		return NewTransformError(sn.Name(), "validate", "base input cannot be nil", nil)
	}
	return nil
}

func (sn *SetNotice) Apply(base *domain.TerminationInput) (*domain.TerminationInput, error) {
	modified := base.DeepCopy()
	modified.NoticeType = sn.Type
	return &modified, nil
}

// SetReason replaces the termination reason. The code is checked against the catalog
// by the engine, not here.
type SetReason struct {
	Code string
}

func (sr *SetReason) Name() string {
	return "set_reason"
}

func (sr *SetReason) Description() string {
	return fmt.Sprintf("Motivo alterado para %s", sr.Code)
}

func (sr *SetReason) Validate(base *domain.TerminationInput) error {
	if sr.Code == "" {
		return NewTransformError(sr.Name(), "validate", "reason code cannot be empty", nil)
	}
	if base == nil {
		return NewTransformError(sr.Name(), "validate", "base input cannot be nil", nil)
	}
	return nil
}

func (sr *SetReason) Apply(base *domain.TerminationInput) (*domain.TerminationInput, error) {
	modified := base.DeepCopy()
	modified.ReasonCode = sr.Code
	return &modified, nil
}
