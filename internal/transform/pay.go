package transform

import (
	"fmt"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/rgehrsitz/rescisao/internal/output"
	"github.com/shopspring/decimal"
)

// SetSalary replaces the monthly salary
type SetSalary struct {
	Amount decimal.Decimal
}

func (ss *SetSalary) Name() string {
	return "set_salary"
}

func (ss *SetSalary) Description() string {
	return fmt.Sprintf("Salário alterado para %s", output.FormatCurrency(ss.Amount))
}

func (ss *SetSalary) Validate(base *domain.TerminationInput) error {
	if ss.Amount.IsNegative() {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", ss.Amount), nil)
	}
	if base == nil {
		return NewTransformError(ss.Name(), "validate", "base input cannot be nil", nil)
	}
	return nil
}

func (ss *SetSalary) Apply(base *domain.TerminationInput) (*domain.TerminationInput, error) {
	modified := base.DeepCopy()
	modified.Salary = ss.Amount
	return &modified, nil
}

// RaiseSalary applies a percentage raise (0.05 means 5%) rounded to cents
type RaiseSalary struct {
	Percent decimal.Decimal
}

func (rs *RaiseSalary) Name() string {
	return "raise_salary"
}

func (rs *RaiseSalary) Description() string {
	return fmt.Sprintf("Reajuste salarial de %s%%", rs.Percent.Mul(decimal.NewFromInt(100)).StringFixed(2))
}

func (rs *RaiseSalary) Validate(base *domain.TerminationInput) error {
	if rs.Percent.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return NewTransformError(rs.Name(), "validate", fmt.Sprintf("percent must be greater than -1, got %s", rs.Percent), nil)
	}
	if base == nil {
		return NewTransformError(rs.Name(), "validate", "base input cannot be nil", nil)
	}
	return nil
}

func (rs *RaiseSalary) Apply(base *domain.TerminationInput) (*domain.TerminationInput, error) {
	modified := base.DeepCopy()
	modified.Salary = base.Salary.Mul(decimal.NewFromInt(1).Add(rs.Percent)).Round(2)
	return &modified, nil
}

// SetFGTSBalance replaces the FGTS balance the penalty is computed on
type SetFGTSBalance struct {
	Amount decimal.Decimal
}

func (sf *SetFGTSBalance) Name() string {
	return "set_fgts_balance"
}

func (sf *SetFGTSBalance) Description() string {
	return fmt.Sprintf("Saldo de FGTS alterado para %s", output.FormatCurrency(sf.Amount))
}

func (sf *SetFGTSBalance) Validate(base *domain.TerminationInput) error {
	if sf.Amount.IsNegative() {
		return NewTransformError(sf.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", sf.Amount), nil)
	}
	if base == nil {
		return NewTransformError(sf.Name(), "validate", "base input cannot be nil", nil)
	}
	return nil
}

func (sf *SetFGTSBalance) Apply(base *domain.TerminationInput) (*domain.TerminationInput, error) {
	modified := base.DeepCopy()
	modified.FGTSBalance = sf.Amount
	return &modified, nil
}

// SetDependents replaces the IRRF dependent count
type SetDependents struct {
	Count int
}

func (sd *SetDependents) Name() string {
	return "set_dependents"
}

func (sd *SetDependents) Description() string {
	return fmt.Sprintf("Dependentes para IRRF: %d", sd.Count)
}

func (sd *SetDependents) Validate(base *domain.TerminationInput) error {
	if sd.Count < 0 {
		return NewTransformError(sd.Name(), "validate", fmt.Sprintf("count must be non-negative, got %d", sd.Count), nil)
	}
	if base == nil {
		return NewTransformError(sd.Name(), "validate", "base input cannot be nil", nil)
	}
	return nil
}

func (sd *SetDependents) Apply(base *domain.TerminationInput) (*domain.TerminationInput, error) {
	modified := base.DeepCopy()
	modified.Dependents = sd.Count
	return &modified, nil
}

// SetBonus replaces the settlement bonus (gratificação). Zero removes it.
type SetBonus struct {
	Amount decimal.Decimal
}

func (sb *SetBonus) Name() string {
	return "set_bonus"
}

func (sb *SetBonus) Description() string {
	return fmt.Sprintf("Gratificação alterada para %s", output.FormatCurrency(sb.Amount))
}

func (sb *SetBonus) Validate(base *domain.TerminationInput) error {
	if sb.Amount.IsNegative() {
		return NewTransformError(sb.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", sb.Amount), nil)
	}
	if base == nil {
		return NewTransformError(sb.Name(), "validate", "base input cannot be nil", nil)
	}
	return nil
}

func (sb *SetBonus) Apply(base *domain.TerminationInput) (*domain.TerminationInput, error) {
	modified := base.DeepCopy()
	if sb.Amount.IsZero() {
		if modified.Adicionais != nil {
			modified.Adicionais.Bonus = nil
		}
		return &modified, nil
	}
	if modified.Adicionais == nil {
		modified.Adicionais = &domain.Adicionais{}
	}
	amount := sb.Amount
	modified.Adicionais.Bonus = &amount
	return &modified, nil
}
