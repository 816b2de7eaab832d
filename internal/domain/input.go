package domain

import (
	"github.com/shopspring/decimal"
)

// NoticeType selects how the notice period is honored
type NoticeType string

const (
	NoticeIndemnified NoticeType = "INDENIZADO"
	NoticeWorked      NoticeType = "TRABALHADO"
)

// ContractType is informational for the ledger; fixed-term behavior is driven by the
// reason's category and the presence of FixedTermEnd.
type ContractType string

const (
	ContractIndefinite ContractType = "INDETERMINADO"
	ContractFixedTerm  ContractType = "PRAZO_DETERMINADO"
	ContractTrial      ContractType = "EXPERIENCIA"
)

// TerminationInput is everything the engine needs for one settlement. It is treated as
// immutable by the calculation.
type TerminationInput struct {
	Salary                 decimal.Decimal `yaml:"salary" json:"salary"`
	HireDate               Date            `yaml:"hire_date" json:"hire_date"`
	TerminationDate        Date            `yaml:"termination_date" json:"termination_date"`
	ReasonCode             string          `yaml:"reason_code" json:"reason_code"`
	ContractType           ContractType    `yaml:"contract_type,omitempty" json:"contract_type,omitempty"`
	NoticeType             NoticeType      `yaml:"notice_type" json:"notice_type"`
	DaysWorked             int             `yaml:"days_worked" json:"days_worked"`
	ExpiredVacationPeriods int             `yaml:"expired_vacation_periods,omitempty" json:"expired_vacation_periods,omitempty"`
	FGTSBalance            decimal.Decimal `yaml:"fgts_balance" json:"fgts_balance"`
	Dependents             int             `yaml:"dependents,omitempty" json:"dependents,omitempty"`
	AverageVariablePay     decimal.Decimal `yaml:"average_variable_pay" json:"average_variable_pay"`
	NoticePenaltyDays      int             `yaml:"notice_penalty_days,omitempty" json:"notice_penalty_days,omitempty"`
	AbsenceDays            decimal.Decimal `yaml:"absence_days" json:"absence_days"`
	AbsenceDSR             decimal.Decimal `yaml:"absence_dsr" json:"absence_dsr"`
	FixedTermEnd           *Date           `yaml:"fixed_term_end,omitempty" json:"fixed_term_end,omitempty"`
	Adjustables            Adjustables     `yaml:"adjustables,omitempty" json:"adjustables,omitempty"`
	Adicionais             *Adicionais     `yaml:"adicionais,omitempty" json:"adicionais,omitempty"`
}

// ReferenceRemuneration is the salary plus the average of variable pay. Every prorated
// or notice-based entitlement draws on this richer base instead of the raw salary.
func (in TerminationInput) ReferenceRemuneration() decimal.Decimal {
	return in.Salary.Add(in.AverageVariablePay)
}

// Adjustable is a prorated quantity the user may override. The override takes effect
// only when Edited differs from the value the engine derives. A caller-supplied
// Calculated is advisory only: a mismatch is logged as a warning and otherwise ignored.
type Adjustable struct {
	Calculated    *int   `yaml:"calculated,omitempty" json:"calculated,omitempty"`
	Edited        *int   `yaml:"edited,omitempty" json:"edited,omitempty"`
	Justification string `yaml:"justification,omitempty" json:"justification,omitempty"`
}

// Adjustables groups the three overridable quantities
type Adjustables struct {
	VacationFraction   Adjustable `yaml:"vacation_fraction,omitempty" json:"vacation_fraction,omitempty"`
	ThirteenthFraction Adjustable `yaml:"thirteenth_fraction,omitempty" json:"thirteenth_fraction,omitempty"`
	NoticeDays         Adjustable `yaml:"notice_days,omitempty" json:"notice_days,omitempty"`
}

// Adicionais carries optional variable-pay inputs. A nil sub-block means the feature
// does not apply.
type Adicionais struct {
	NightShift     *NightShift      `yaml:"night_shift,omitempty" json:"night_shift,omitempty"`
	HazardPercent  *decimal.Decimal `yaml:"hazard_percent,omitempty" json:"hazard_percent,omitempty"`
	Unhealthy      *Unhealthy       `yaml:"unhealthy,omitempty" json:"unhealthy,omitempty"`
	CashierPercent *decimal.Decimal `yaml:"cashier_percent,omitempty" json:"cashier_percent,omitempty"`
	MealVoucher    *MealVoucher     `yaml:"meal_voucher,omitempty" json:"meal_voucher,omitempty"`
	Seniority      *Seniority       `yaml:"seniority,omitempty" json:"seniority,omitempty"`
	Bonus          *decimal.Decimal `yaml:"bonus,omitempty" json:"bonus,omitempty"`
	Commission     *decimal.Decimal `yaml:"commission,omitempty" json:"commission,omitempty"`
	Overtime       *Overtime        `yaml:"overtime,omitempty" json:"overtime,omitempty"`
	IntraShift     *RestViolation   `yaml:"intra_shift,omitempty" json:"intra_shift,omitempty"`
	InterShift     *RestViolation   `yaml:"inter_shift,omitempty" json:"inter_shift,omitempty"`
	DSR            *DSRConfig       `yaml:"dsr,omitempty" json:"dsr,omitempty"`
}

// NightShift is paid at the derived hourly rate with the reduced night hour (52m30s).
// Percent is a fraction: 0.20 means 20%.
type NightShift struct {
	Hours   decimal.Decimal `yaml:"hours" json:"hours"`
	Percent decimal.Decimal `yaml:"percent" json:"percent"`
}

// UnhealthyGrade is the insalubridade grade
type UnhealthyGrade string

const (
	UnhealthyMinimum UnhealthyGrade = "minimo"
	UnhealthyMedium  UnhealthyGrade = "medio"
	UnhealthyMaximum UnhealthyGrade = "maximo"
)

// Percent returns the grade's rate over the configured base, or false for an unknown grade
func (g UnhealthyGrade) Percent() (decimal.Decimal, bool) {
	switch g {
	case UnhealthyMinimum:
		return decimal.NewFromFloat(0.10), true
	case UnhealthyMedium:
		return decimal.NewFromFloat(0.20), true
	case UnhealthyMaximum:
		return decimal.NewFromFloat(0.40), true
	default:
		return decimal.Zero, false
	}
}

// Unhealthy is paid over a configurable base (usually the minimum wage), not the salary
type Unhealthy struct {
	Grade UnhealthyGrade  `yaml:"grade" json:"grade"`
	Base  decimal.Decimal `yaml:"base" json:"base"`
}

// MealVoucher is paid per business day and has no tax incidence
type MealVoucher struct {
	DayRate decimal.Decimal `yaml:"day_rate" json:"day_rate"`
	Days    int             `yaml:"days" json:"days"`
}

// Seniority (ATS) pays Percent of the salary for each applicable year
type Seniority struct {
	Percent decimal.Decimal `yaml:"percent" json:"percent"`
	Years   int             `yaml:"years" json:"years"`
}

// Overtime quantities at the 50% and 100% tiers. MonthlyHours is the divisor of the
// derived hourly rate; zero means the default of 220.
type Overtime struct {
	MonthlyHours int             `yaml:"monthly_hours,omitempty" json:"monthly_hours,omitempty"`
	Hours50      decimal.Decimal `yaml:"hours_50" json:"hours_50"`
	Hours100     decimal.Decimal `yaml:"hours_100" json:"hours_100"`
}

// RestViolation covers suppressed intrajornada or interjornada rest, paid as overtime
// at Factor times the derived hourly rate.
type RestViolation struct {
	Hours  decimal.Decimal `yaml:"hours" json:"hours"`
	Factor decimal.Decimal `yaml:"factor" json:"factor"`
}

// DSRConfig holds the month's business and non-business day counts used to reflect
// variable pay into weekly paid rest.
type DSRConfig struct {
	BusinessDays    int `yaml:"business_days" json:"business_days"`
	NonBusinessDays int `yaml:"non_business_days" json:"non_business_days"`
}

// DeepCopy returns a copy of in that shares no pointers with it
func (in TerminationInput) DeepCopy() TerminationInput {
	out := in
	if in.FixedTermEnd != nil {
		d := *in.FixedTermEnd
		out.FixedTermEnd = &d
	}
	out.Adjustables = Adjustables{
		VacationFraction:   in.Adjustables.VacationFraction.copy(),
		ThirteenthFraction: in.Adjustables.ThirteenthFraction.copy(),
		NoticeDays:         in.Adjustables.NoticeDays.copy(),
	}
	if in.Adicionais != nil {
		a := in.Adicionais.copy()
		out.Adicionais = &a
	}
	return out
}

func (a Adjustable) copy() Adjustable {
	out := a
	out.Calculated = copyPtr(a.Calculated)
	out.Edited = copyPtr(a.Edited)
	return out
}

func (a Adicionais) copy() Adicionais {
	return Adicionais{
		NightShift:     copyPtr(a.NightShift),
		HazardPercent:  copyPtr(a.HazardPercent),
		Unhealthy:      copyPtr(a.Unhealthy),
		CashierPercent: copyPtr(a.CashierPercent),
		MealVoucher:    copyPtr(a.MealVoucher),
		Seniority:      copyPtr(a.Seniority),
		Bonus:          copyPtr(a.Bonus),
		Commission:     copyPtr(a.Commission),
		Overtime:       copyPtr(a.Overtime),
		IntraShift:     copyPtr(a.IntraShift),
		InterShift:     copyPtr(a.InterShift),
		DSR:            copyPtr(a.DSR),
	}
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
