// Package legacy converts inputs of the older, simpler settlement form into the canonical
// termination input. The older form took flat amounts where the canonical engine derives
// them from the hourly rate; the adapter back-solves the canonical quantities so that the
// engine reproduces the same amounts.
package legacy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rgehrsitz/rescisao/internal/calculation"
	"github.com/rgehrsitz/rescisao/internal/config"
	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Input wraps a canonical input whose add-ons are given in the legacy shape
type Input struct {
	Termination domain.TerminationInput `yaml:"rescisao" json:"rescisao"`
	Adicionais  *Adicionais             `yaml:"adicionais_legado,omitempty" json:"adicionais_legado,omitempty"`
}

// Adicionais is the legacy add-on block
type Adicionais struct {
	NightShift    *NightShift         `yaml:"night_shift,omitempty" json:"night_shift,omitempty"`
	HazardPercent *decimal.Decimal    `yaml:"hazard_percent,omitempty" json:"hazard_percent,omitempty"`
	Unhealthy     *domain.Unhealthy   `yaml:"unhealthy,omitempty" json:"unhealthy,omitempty"`
	CashierAmount *decimal.Decimal    `yaml:"cashier_amount,omitempty" json:"cashier_amount,omitempty"`
	MealVoucher   *domain.MealVoucher `yaml:"meal_voucher,omitempty" json:"meal_voucher,omitempty"`
	Seniority     *domain.Seniority   `yaml:"seniority,omitempty" json:"seniority,omitempty"`
	Commission    *decimal.Decimal    `yaml:"commission,omitempty" json:"commission,omitempty"`
	Overtime      *Overtime           `yaml:"overtime,omitempty" json:"overtime,omitempty"`
	DSRAmount     *decimal.Decimal    `yaml:"dsr_amount,omitempty" json:"dsr_amount,omitempty"`
	DSR           *domain.DSRConfig   `yaml:"dsr,omitempty" json:"dsr,omitempty"`
}

// NightShift is paid as a flat premium per night hour
type NightShift struct {
	Hours         decimal.Decimal `yaml:"hours" json:"hours"`
	HourlyPremium decimal.Decimal `yaml:"hourly_premium" json:"hourly_premium"`
}

// Overtime is a pre-computed total with its premium (0.5 or 1.0)
type Overtime struct {
	Amount         decimal.Decimal `yaml:"amount" json:"amount"`
	PremiumPercent decimal.Decimal `yaml:"premium_percent" json:"premium_percent"`
}

const hoursPrecision = 6

var (
	nightHourMinutes = decimal.NewFromFloat(52.5)
	minutesPerHour   = decimal.NewFromInt(60)
	one              = decimal.NewFromInt(1)
	premium50        = decimal.NewFromFloat(0.5)
)

// Load reads a legacy input from a YAML or JSON file
func Load(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("failed to read legacy file %s: %w", path, err)
	}
	return Parse(data, config.FormatForPath(path))
}

// Parse decodes a legacy input, rejecting unknown fields
func Parse(data []byte, format config.Format) (Input, error) {
	var li Input
	switch format {
	case config.FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&li); err != nil {
			return Input{}, fmt.Errorf("failed to parse legacy JSON: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&li); err != nil {
			return Input{}, fmt.Errorf("failed to parse legacy YAML: %w", err)
		}
	}
	return li, nil
}

// Convert returns the canonical input and any notes about lossy conversions
func Convert(li Input) (domain.TerminationInput, []string, error) {
	out := li.Termination
	if li.Adicionais == nil {
		return out, nil, nil
	}
	if out.Adicionais != nil {
		return domain.TerminationInput{}, nil, &calculation.ValidationError{
			Field: "adicionais_legado", Message: "cannot be combined with canonical adicionais"}
	}
	la := li.Adicionais
	var notes []string

	a := &domain.Adicionais{
		HazardPercent: la.HazardPercent,
		Unhealthy:     la.Unhealthy,
		MealVoucher:   la.MealVoucher,
		Seniority:     la.Seniority,
		Commission:    la.Commission,
		DSR:           la.DSR,
	}

	if la.CashierAmount != nil && la.CashierAmount.IsPositive() {
		if !out.Salary.IsPositive() {
			return domain.TerminationInput{}, nil, &calculation.ValidationError{
				Field: "adicionais_legado.cashier_amount", Message: "requires a positive salary"}
		}
		pct := la.CashierAmount.Div(out.Salary)
		a.CashierPercent = &pct
	}

	// hourly-dependent quantities use the rate derived from the add-ons above
	rate := calculation.NewHourlyBase(out.Salary, a).Rate()

	if ns := la.NightShift; ns != nil && ns.Hours.IsPositive() && ns.HourlyPremium.IsPositive() {
		if !rate.IsPositive() {
			return domain.TerminationInput{}, nil, &calculation.ValidationError{
				Field: "adicionais_legado.night_shift", Message: "requires a positive hourly rate"}
		}
		pct := ns.HourlyPremium.Mul(nightHourMinutes).Div(rate.Mul(minutesPerHour))
		a.NightShift = &domain.NightShift{Hours: ns.Hours, Percent: pct}
	}

	if ot := la.Overtime; ot != nil && ot.Amount.IsPositive() {
		if !rate.IsPositive() {
			return domain.TerminationInput{}, nil, &calculation.ValidationError{
				Field: "adicionais_legado.overtime", Message: "requires a positive hourly rate"}
		}
		premium := ot.PremiumPercent
		if premium.IsZero() {
			premium = premium50
		}
		factor := one.Add(premium)
		hours := ot.Amount.Div(rate.Mul(factor)).Round(hoursPrecision)
		switch {
		case premium.Equal(premium50):
			a.Overtime = &domain.Overtime{Hours50: hours}
		case premium.Equal(one):
			a.Overtime = &domain.Overtime{Hours100: hours}
		default:
			return domain.TerminationInput{}, nil, &calculation.ValidationError{
				Field:   "adicionais_legado.overtime.premium_percent",
				Message: fmt.Sprintf("unsupported premium %s, expected 0.5 or 1.0", premium)}
		}
		notes = append(notes, fmt.Sprintf("Hora extra informada como valor (R$ %s) convertida para %sh pelo valor hora R$ %s",
			ot.Amount.StringFixed(2), hours, rate.StringFixed(2)))
	}

	if la.DSRAmount != nil && la.DSRAmount.IsPositive() {
		if la.DSR == nil {
			return domain.TerminationInput{}, nil, &calculation.ValidationError{
				Field: "adicionais_legado.dsr_amount", Message: "a flat DSR amount needs business/non-business day counts (dsr)"}
		}
		notes = append(notes, fmt.Sprintf("DSR informado (R$ %s) substituído pelo cálculo sobre variáveis com %d úteis / %d não úteis",
			la.DSRAmount.StringFixed(2), la.DSR.BusinessDays, la.DSR.NonBusinessDays))
	}

	out.Adicionais = a
	return out, notes, nil
}
