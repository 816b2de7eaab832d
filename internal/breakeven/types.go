package breakeven

import (
	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveTarget is the input quantity the solver varies
type SolveTarget string

const (
	TargetBonus  SolveTarget = "bonus"  // gratificação paid with the settlement
	TargetSalary SolveTarget = "salary" // monthly salary
)

// Goal defines what net the solved value must reach
type Goal string

const (
	GoalMatchNet    Goal = "match_net"    // reach Constraints.TargetNet
	GoalMatchReason Goal = "match_reason" // reach the net of the input under Constraints.MatchReason
)

// Constraints bound the search and carry the goal's parameters
type Constraints struct {
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`

	TargetNet   *decimal.Decimal `json:"target_net,omitempty"`
	MatchReason string           `json:"match_reason,omitempty"`
}

// SolveRequest defines the parameters for one solver run
type SolveRequest struct {
	Base          *domain.TerminationInput
	Target        SolveTarget
	Goal          Goal
	Constraints   Constraints
	MaxIterations int             // Maximum bisection steps
	Tolerance     decimal.Decimal // Width of the final bracket on the solved value
}

// SolveResult is the smallest value of the target whose settlement nets at least the
// target net
type SolveResult struct {
	Request         SolveRequest `json:"-"`
	Target          SolveTarget  `json:"target"`
	Goal            Goal         `json:"goal"`
	Success         bool         `json:"success"`
	Iterations      int          `json:"iterations"`
	ConvergenceInfo string       `json:"convergence_info"`

	TargetNet decimal.Decimal `json:"target_net"`
	Value     decimal.Decimal `json:"value"`
	BaseValue decimal.Decimal `json:"base_value"`

	Settlement      *domain.SettlementResult `json:"-"`
	Net             decimal.Decimal          `json:"net"`
	Taxes           decimal.Decimal          `json:"taxes"`
	BaseNet         decimal.Decimal          `json:"base_net"`
	BaseTaxes       decimal.Decimal          `json:"base_taxes"`
	NetDiffFromBase decimal.Decimal          `json:"net_diff_from_base"`
	TaxDiffFromBase decimal.Decimal          `json:"tax_diff_from_base"`
}

// MultiTargetResult holds one result per target for the same goal
type MultiTargetResult struct {
	Results         []SolveResult `json:"results"`
	Recommendations []string      `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Bracket width that ends the bisection
	MaxIterations int             // Maximum bisection steps
	MaxExpansions int             // Maximum doublings of the upper bound
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.01),
		MaxIterations: 100,
		MaxExpansions: 30,
	}
}

// Validate checks the constraints against the goal
func (c *Constraints) Validate(goal Goal) error {
	switch goal {
	case GoalMatchNet:
		if c.TargetNet == nil {
			return &BreakEvenError{Operation: "validate_constraints", Message: "target_net is required for match_net"}
		}
		if c.TargetNet.IsNegative() {
			return &BreakEvenError{Operation: "validate_constraints", Message: "target_net cannot be negative"}
		}
	case GoalMatchReason:
		if c.MatchReason == "" {
			return &BreakEvenError{Operation: "validate_constraints", Message: "match_reason is required for match_reason"}
		}
	default:
		return &BreakEvenError{Operation: "validate_constraints", Message: "unsupported goal: " + string(goal)}
	}

	if c.Min != nil && c.Min.IsNegative() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min cannot be negative"}
	}
	if c.Min != nil && c.Max != nil && c.Min.GreaterThan(*c.Max) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min cannot be greater than max"}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
