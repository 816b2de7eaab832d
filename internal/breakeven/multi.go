package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/rgehrsitz/rescisao/internal/output"
	"github.com/shopspring/decimal"
)

// SolveAllTargets solves the same goal for every target. Min and Max are per-target
// bounds and are ignored here.
func (s *Solver) SolveAllTargets(
	ctx context.Context,
	base *domain.TerminationInput,
	goal Goal,
	constraints Constraints,
) (*MultiTargetResult, error) {
	constraints.Min, constraints.Max = nil, nil
	if err := constraints.Validate(goal); err != nil {
		return nil, err
	}

	var results []SolveResult
	for _, target := range []SolveTarget{TargetBonus, TargetSalary} {
		result, err := s.Solve(ctx, SolveRequest{
			Base:          base,
			Target:        target,
			Goal:          goal,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if result.Success {
			results = append(results, *result)
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_all_targets",
			Message:   "no successful solutions found",
		}
	}

	multi := &MultiTargetResult{Results: results}
	multi.Recommendations = generateRecommendations(multi)
	return multi, nil
}

func generateRecommendations(m *MultiTargetResult) []string {
	var recs []string
	var lowestTax *SolveResult
	for i := range m.Results {
		r := &m.Results[i]
		switch r.Target {
		case TargetBonus:
			recs = append(recs, fmt.Sprintf("Gratificação necessária: %s", output.FormatCurrency(r.Value)))
		case TargetSalary:
			rec := fmt.Sprintf("Salário necessário: %s", output.FormatCurrency(r.Value))
			if r.BaseValue.IsPositive() {
				raise := r.Value.Sub(r.BaseValue).Div(r.BaseValue)
				rec += fmt.Sprintf(" (reajuste de %s)", output.FormatPercentage(raise.Round(4)))
			}
			recs = append(recs, rec)
		}
		if lowestTax == nil || r.Taxes.LessThan(lowestTax.Taxes) {
			lowestTax = r
		}
	}
	if lowestTax != nil && len(m.Results) > 1 {
		recs = append(recs, fmt.Sprintf("Menor tributação: %s (%s de INSS + IRRF)",
			targetLabel(lowestTax.Target), output.FormatCurrency(lowestTax.Taxes)))
	}
	return recs
}

func targetLabel(t SolveTarget) string {
	switch t {
	case TargetBonus:
		return "gratificação"
	case TargetSalary:
		return "salário"
	default:
		return string(t)
	}
}

// pctOf returns a/b, or zero when b is zero
func pctOf(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}
