package sensitivity

import (
	"context"
	"fmt"
	"sort"

	"github.com/rgehrsitz/rescisao/internal/calculation"
	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/rgehrsitz/rescisao/internal/output"
	"github.com/rgehrsitz/rescisao/internal/transform"
	"github.com/shopspring/decimal"
)

// Analyzer sweeps one input at a time and records how the settlement responds
type Analyzer struct {
	CalcEngine *calculation.Engine
}

// NewAnalyzer creates an analyzer backed by engine
func NewAnalyzer(engine *calculation.Engine) *Analyzer {
	return &Analyzer{CalcEngine: engine}
}

// Analyze calculates the settlement at every value of p. Net changes are relative to
// the unmodified base input.
func (a *Analyzer) Analyze(ctx context.Context, base *domain.TerminationInput, p Parameter) (*Analysis, error) {
	if base == nil {
		return nil, &AnalysisError{Operation: "analyze", Message: "base input cannot be nil"}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	baseResult, err := a.CalcEngine.Calculate(*base)
	if err != nil {
		return nil, &AnalysisError{Operation: "analyze", Message: "failed to calculate base input", Cause: err}
	}

	analysis := &Analysis{
		Parameter: p,
		BaseLabel: baseLabel(base, p.Type),
		BaseNet:   baseResult.Net,
	}
	for _, v := range p.Values() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		modified, err := transform.ApplyTransforms(base, []transform.InputTransform{transformFor(p.Type, v)})
		if err != nil {
			return nil, &AnalysisError{Operation: "analyze", Message: fmt.Sprintf("cannot apply %s=%s", p.Type, v), Cause: err}
		}
		result, err := a.CalcEngine.Calculate(*modified)
		if err != nil {
			return nil, &AnalysisError{Operation: "analyze", Message: fmt.Sprintf("calculation failed at %s=%s", p.Type, v), Cause: err}
		}
		analysis.Points = append(analysis.Points, newPoint(v, pointLabel(modified, p.Type, v), result, baseResult.Net))
	}
	analysis.Summary = summarize(analysis.Points)
	return analysis, nil
}

// AnalyzeMultiple runs each sweep independently against base and ranks them by how
// far the net moves
func (a *Analyzer) AnalyzeMultiple(ctx context.Context, base *domain.TerminationInput, params []Parameter) (*MultiAnalysis, error) {
	if len(params) == 0 {
		return nil, &AnalysisError{Operation: "analyze_multiple", Message: "no parameters given"}
	}
	multi := &MultiAnalysis{}
	for _, p := range params {
		analysis, err := a.Analyze(ctx, base, p)
		if err != nil {
			return nil, err
		}
		multi.Analyses = append(multi.Analyses, analysis)
	}
	sort.SliceStable(multi.Analyses, func(i, j int) bool {
		return multi.Analyses[i].Summary.NetRange.GreaterThan(multi.Analyses[j].Summary.NetRange)
	})
	multi.MostSensitive = multi.Analyses[0].Parameter.Type
	return multi, nil
}

func transformFor(t ParameterType, v decimal.Decimal) transform.InputTransform {
	switch t {
	case ParamTerminationDate:
		return &transform.PostponeTermination{Days: int(v.IntPart())}
	case ParamSalary:
		return &transform.SetSalary{Amount: v}
	case ParamBonus:
		return &transform.SetBonus{Amount: v}
	case ParamFGTSBalance:
		return &transform.SetFGTSBalance{Amount: v}
	default:
		return &transform.SetDependents{Count: int(v.IntPart())}
	}
}

func baseLabel(in *domain.TerminationInput, t ParameterType) string {
	switch t {
	case ParamTerminationDate:
		return in.TerminationDate.Format(domain.DateLayout)
	case ParamSalary:
		return output.FormatCurrency(in.Salary)
	case ParamBonus:
		if in.Adicionais != nil && in.Adicionais.Bonus != nil {
			return output.FormatCurrency(*in.Adicionais.Bonus)
		}
		return output.FormatCurrency(decimal.Zero)
	case ParamFGTSBalance:
		return output.FormatCurrency(in.FGTSBalance)
	default:
		return fmt.Sprintf("%d", in.Dependents)
	}
}

func pointLabel(modified *domain.TerminationInput, t ParameterType, v decimal.Decimal) string {
	switch t {
	case ParamTerminationDate:
		return modified.TerminationDate.Format(domain.DateLayout)
	case ParamDependents:
		return v.String()
	default:
		return output.FormatCurrency(v)
	}
}

func newPoint(v decimal.Decimal, label string, r *domain.SettlementResult, baseNet decimal.Decimal) Point {
	change := r.Net.Sub(baseNet)
	pct := decimal.Zero
	if !baseNet.IsZero() {
		pct = change.Div(baseNet).Round(4)
	}
	return Point{
		Value:              v,
		Label:              label,
		Net:                r.Net,
		Taxes:              r.INSS.Total.Add(r.IRRF.Total),
		TotalEarnings:      r.TotalEarnings,
		FGTSPenalty:        r.FGTSPenalty,
		VacationFraction:   r.VacationFractionUsed,
		ThirteenthFraction: r.ThirteenthFractionUsed,
		NoticeDays:         r.NoticeDaysUsed,
		NetChange:          change,
		NetChangePct:       pct,
	}
}

func summarize(points []Point) Summary {
	var s Summary
	if len(points) == 0 {
		return s
	}
	s.Best, s.Worst = points[0], points[0]
	for i, pt := range points {
		if pt.Net.GreaterThan(s.Best.Net) {
			s.Best = pt
		}
		if pt.Net.LessThan(s.Worst.Net) {
			s.Worst = pt
		}
		if i > 0 {
			s.Steps = append(s.Steps, stepsBetween(points[i-1], pt)...)
		}
	}
	s.NetRange = s.Best.Net.Sub(s.Worst.Net)
	return s
}

func stepsBetween(prev, cur Point) []Step {
	var steps []Step
	if prev.VacationFraction != cur.VacationFraction {
		steps = append(steps, Step{
			Label:       cur.Label,
			Description: fmt.Sprintf("Férias proporcionais: %d/12 → %d/12", prev.VacationFraction, cur.VacationFraction),
		})
	}
	if prev.ThirteenthFraction != cur.ThirteenthFraction {
		steps = append(steps, Step{
			Label:       cur.Label,
			Description: fmt.Sprintf("13º proporcional: %d/12 → %d/12", prev.ThirteenthFraction, cur.ThirteenthFraction),
		})
	}
	if prev.NoticeDays != cur.NoticeDays {
		steps = append(steps, Step{
			Label:       cur.Label,
			Description: fmt.Sprintf("Aviso prévio: %d → %d dias", prev.NoticeDays, cur.NoticeDays),
		})
	}
	return steps
}
