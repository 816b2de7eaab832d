package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rescisao/internal/calculation"
	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/rgehrsitz/rescisao/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver grosses up a bonus or salary until the settlement reaches a target net
type Solver struct {
	CalcEngine *calculation.Engine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.Engine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve finds the smallest value of req.Target, to the tolerance, whose settlement nets
// at least the goal's target. Net grows with both targets, so bisection applies.
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if req.Base == nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "base input cannot be nil"}
	}
	if err := req.Constraints.Validate(req.Goal); err != nil {
		return nil, err
	}
	if req.Target != TargetBonus && req.Target != TargetSalary {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported target: %s", req.Target),
		}
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	base, err := s.CalcEngine.Calculate(*req.Base)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to calculate base input", Cause: err}
	}
	targetNet, err := s.targetNet(req)
	if err != nil {
		return nil, err
	}

	result := &SolveResult{
		Request:   req,
		Target:    req.Target,
		Goal:      req.Goal,
		TargetNet: targetNet,
		BaseValue: currentValue(req.Base, req.Target),
		BaseNet:   base.Net,
		BaseTaxes: taxes(base),
	}

	lo := decimal.Zero
	if req.Constraints.Min != nil {
		lo = *req.Constraints.Min
	}
	loSettlement, err := s.evaluate(req, lo)
	if err != nil {
		return nil, err
	}
	result.Iterations++
	if !loSettlement.Net.LessThan(targetNet) {
		result.finish(lo, loSettlement, true, "Meta já atingida no limite inferior")
		return result, nil
	}

	hi, hiSettlement, err := s.upperBound(ctx, req, lo, targetNet, result)
	if err != nil {
		return nil, err
	}

	for hi.Sub(lo).GreaterThan(req.Tolerance) {
		if result.Iterations >= req.MaxIterations {
			result.finish(hi, hiSettlement, false, fmt.Sprintf("Limite de %d iterações atingido", req.MaxIterations))
			return result, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(decimal.NewFromInt(2)).Round(2)
		if mid.Equal(lo) || mid.Equal(hi) {
			break
		}
		settlement, err := s.evaluate(req, mid)
		if err != nil {
			return nil, err
		}
		result.Iterations++
		if settlement.Net.LessThan(targetNet) {
			lo = mid
		} else {
			hi, hiSettlement = mid, settlement
		}
	}

	result.finish(hi, hiSettlement, true, fmt.Sprintf("Convergiu com precisão de %s", req.Tolerance.StringFixed(2)))
	return result, nil
}

// upperBound returns a value that reaches targetNet, from Constraints.Max or by doubling
func (s *Solver) upperBound(ctx context.Context, req SolveRequest, lo, targetNet decimal.Decimal, result *SolveResult) (decimal.Decimal, *domain.SettlementResult, error) {
	if req.Constraints.Max != nil {
		hi := *req.Constraints.Max
		settlement, err := s.evaluate(req, hi)
		if err != nil {
			return decimal.Zero, nil, err
		}
		result.Iterations++
		if settlement.Net.LessThan(targetNet) {
			return decimal.Zero, nil, &BreakEvenError{
				Operation: "solve",
				Message:   fmt.Sprintf("target net %s unreachable with %s up to %s", targetNet.StringFixed(2), req.Target, hi.StringFixed(2)),
			}
		}
		return hi, settlement, nil
	}

	hi := targetNet.Sub(result.BaseNet)
	if current := currentValue(req.Base, req.Target); current.GreaterThan(hi) {
		hi = current
	}
	if !hi.GreaterThan(lo) {
		hi = lo.Add(decimal.NewFromInt(100))
	}
	for i := 0; i < s.Options.MaxExpansions; i++ {
		select {
		case <-ctx.Done():
			return decimal.Zero, nil, ctx.Err()
		default:
		}
		settlement, err := s.evaluate(req, hi)
		if err != nil {
			return decimal.Zero, nil, err
		}
		result.Iterations++
		if !settlement.Net.LessThan(targetNet) {
			return hi, settlement, nil
		}
		hi = hi.Mul(decimal.NewFromInt(2))
	}
	return decimal.Zero, nil, &BreakEvenError{
		Operation: "solve",
		Message:   fmt.Sprintf("target net %s unreachable after %d expansions", targetNet.StringFixed(2), s.Options.MaxExpansions),
	}
}

func (s *Solver) targetNet(req SolveRequest) (decimal.Decimal, error) {
	if req.Goal == GoalMatchNet {
		return *req.Constraints.TargetNet, nil
	}
	in, err := transform.ApplyTransforms(req.Base, []transform.InputTransform{
		&transform.SetReason{Code: req.Constraints.MatchReason},
	})
	if err != nil {
		return decimal.Zero, &BreakEvenError{Operation: "target_net", Message: "failed to apply reason transform", Cause: err}
	}
	r, err := s.CalcEngine.Calculate(*in)
	if err != nil {
		return decimal.Zero, &BreakEvenError{
			Operation: "target_net",
			Message:   fmt.Sprintf("failed to calculate reason %s", req.Constraints.MatchReason),
			Cause:     err,
		}
	}
	return r.Net, nil
}

// evaluate computes the settlement with the target set to v
func (s *Solver) evaluate(req SolveRequest, v decimal.Decimal) (*domain.SettlementResult, error) {
	var t transform.InputTransform
	switch req.Target {
	case TargetBonus:
		t = &transform.SetBonus{Amount: v}
	default:
		t = &transform.SetSalary{Amount: v}
	}
	in, err := transform.ApplyTransforms(req.Base, []transform.InputTransform{t})
	if err != nil {
		return nil, &BreakEvenError{Operation: "evaluate", Message: "failed to apply " + t.Name(), Cause: err}
	}
	r, err := s.CalcEngine.Calculate(*in)
	if err != nil {
		return nil, &BreakEvenError{Operation: "evaluate", Message: "failed to calculate settlement", Cause: err}
	}
	return r, nil
}

func (r *SolveResult) finish(v decimal.Decimal, settlement *domain.SettlementResult, success bool, info string) {
	r.Value = v
	r.Settlement = settlement
	r.Net = settlement.Net
	r.Taxes = taxes(settlement)
	r.NetDiffFromBase = r.Net.Sub(r.BaseNet)
	r.TaxDiffFromBase = r.Taxes.Sub(r.BaseTaxes)
	r.Success = success
	r.ConvergenceInfo = info
}

func currentValue(in *domain.TerminationInput, target SolveTarget) decimal.Decimal {
	if target == TargetSalary {
		return in.Salary
	}
	if in.Adicionais != nil && in.Adicionais.Bonus != nil {
		return *in.Adicionais.Bonus
	}
	return decimal.Zero
}

func taxes(r *domain.SettlementResult) decimal.Decimal {
	return r.INSS.Total.Add(r.IRRF.Total)
}
