package sensitivity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParameterType names an input the analyzer can sweep
type ParameterType string

const (
	// ParamTerminationDate sweeps the termination date forward by Min..Max days
	ParamTerminationDate ParameterType = "termination_date"
	ParamSalary          ParameterType = "salary"
	ParamBonus           ParameterType = "bonus"
	ParamFGTSBalance     ParameterType = "fgts_balance"
	ParamDependents      ParameterType = "dependents"
)

// Parameters lists every sweepable parameter in display order
func Parameters() []ParameterType {
	return []ParameterType{ParamTerminationDate, ParamSalary, ParamBonus, ParamFGTSBalance, ParamDependents}
}

// integral reports whether the parameter only takes whole values
func (p ParameterType) integral() bool {
	return p == ParamTerminationDate || p == ParamDependents
}

// Label is the Portuguese column heading for the parameter
func (p ParameterType) Label() string {
	switch p {
	case ParamTerminationDate:
		return "Data de saída"
	case ParamSalary:
		return "Salário"
	case ParamBonus:
		return "Gratificação"
	case ParamFGTSBalance:
		return "Saldo FGTS"
	case ParamDependents:
		return "Dependentes"
	}
	return string(p)
}

// Parameter describes one sweep. For ParamTerminationDate, Min and Max are day offsets
// from the input's termination date.
type Parameter struct {
	Type  ParameterType   `json:"type"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
	Steps int             `json:"steps"`
}

// Validate checks the range and step count
func (p Parameter) Validate() error {
	known := false
	for _, t := range Parameters() {
		if p.Type == t {
			known = true
			break
		}
	}
	if !known {
		return &AnalysisError{Operation: "validate", Message: fmt.Sprintf("unknown parameter %q", p.Type)}
	}
	if p.Min.IsNegative() || p.Max.IsNegative() {
		return &AnalysisError{Operation: "validate", Message: "range must not be negative"}
	}
	if p.Max.LessThan(p.Min) {
		return &AnalysisError{Operation: "validate", Message: fmt.Sprintf("max %s is below min %s", p.Max, p.Min)}
	}
	if p.Steps < 2 {
		return &AnalysisError{Operation: "validate", Message: fmt.Sprintf("steps must be at least 2, got %d", p.Steps)}
	}
	return nil
}

// Values returns the evenly spaced sweep points. Integral parameters are rounded and
// repeated points dropped.
func (p Parameter) Values() []decimal.Decimal {
	span := p.Max.Sub(p.Min)
	div := decimal.NewFromInt(int64(p.Steps - 1))
	var out []decimal.Decimal
	for i := 0; i < p.Steps; i++ {
		v := p.Min.Add(span.Mul(decimal.NewFromInt(int64(i))).Div(div))
		if p.Type.integral() {
			v = v.Round(0)
		} else {
			v = v.Round(2)
		}
		if len(out) > 0 && out[len(out)-1].Equal(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ParseParameter reads "name:min-max:steps". The steps part is optional and defaults to
// defaultSteps.
func ParseParameter(spec string, defaultSteps int) (Parameter, error) {
	parts := strings.Split(strings.TrimSpace(spec), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Parameter{}, &AnalysisError{Operation: "parse", Message: fmt.Sprintf("invalid parameter %q, expected name:min-max[:steps]", spec)}
	}
	p := Parameter{Type: ParameterType(strings.ToLower(strings.TrimSpace(parts[0]))), Steps: defaultSteps}

	bounds := strings.SplitN(parts[1], "-", 2)
	if len(bounds) != 2 {
		return Parameter{}, &AnalysisError{Operation: "parse", Message: fmt.Sprintf("invalid range %q, expected min-max", parts[1])}
	}
	var err error
	if p.Min, err = decimal.NewFromString(strings.TrimSpace(bounds[0])); err != nil {
		return Parameter{}, &AnalysisError{Operation: "parse", Message: "invalid range minimum", Cause: err}
	}
	if p.Max, err = decimal.NewFromString(strings.TrimSpace(bounds[1])); err != nil {
		return Parameter{}, &AnalysisError{Operation: "parse", Message: "invalid range maximum", Cause: err}
	}
	if len(parts) == 3 {
		if p.Steps, err = strconv.Atoi(strings.TrimSpace(parts[2])); err != nil {
			return Parameter{}, &AnalysisError{Operation: "parse", Message: "invalid steps", Cause: err}
		}
	}
	return p, p.Validate()
}

// Point is the settlement at one sweep value
type Point struct {
	Value              decimal.Decimal `json:"value"`
	Label              string          `json:"label"`
	Net                decimal.Decimal `json:"net"`
	Taxes              decimal.Decimal `json:"taxes"`
	TotalEarnings      decimal.Decimal `json:"total_earnings"`
	FGTSPenalty        decimal.Decimal `json:"fgts_penalty"`
	VacationFraction   int             `json:"vacation_fraction"`
	ThirteenthFraction int             `json:"thirteenth_fraction"`
	NoticeDays         int             `json:"notice_days"`
	NetChange          decimal.Decimal `json:"net_change"`
	NetChangePct       decimal.Decimal `json:"net_change_pct"`
}

// Step marks a sweep point where a fraction or the notice length changed from the
// previous point
type Step struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Summary condenses one sweep
type Summary struct {
	Best     Point           `json:"best"`
	Worst    Point           `json:"worst"`
	NetRange decimal.Decimal `json:"net_range"`
	Steps    []Step          `json:"steps,omitempty"`
}

// Analysis is the result of sweeping one parameter
type Analysis struct {
	Parameter Parameter       `json:"parameter"`
	BaseLabel string          `json:"base_label"`
	BaseNet   decimal.Decimal `json:"base_net"`
	Points    []Point         `json:"points"`
	Summary   Summary         `json:"summary"`
}

// MultiAnalysis holds several sweeps ranked by net range, widest first
type MultiAnalysis struct {
	Analyses      []*Analysis   `json:"analyses"`
	MostSensitive ParameterType `json:"most_sensitive"`
}

// AnalysisError reports a failed sweep
type AnalysisError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sensitivity %s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("sensitivity %s: %s", e.Operation, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}
