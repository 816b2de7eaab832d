package calculation

import (
	"fmt"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/shopspring/decimal"
)

// roundCents rounds half away from zero to two decimal places
func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// INSSCalculator computes the progressive social security contribution. Each band taxes
// only the slice of the base that falls inside it, so the result is monotonic and
// continuous at every boundary.
type INSSCalculator struct {
	Brackets []domain.INSSBracket
	Ceiling  decimal.Decimal
}

// NewINSSCalculator checks that bands are ascending and returns the calculator
func NewINSSCalculator(table domain.INSSTable) (*INSSCalculator, error) {
	if len(table.Brackets) == 0 {
		return nil, fmt.Errorf("%w: inss table has no brackets", ErrInvalidRules)
	}
	prev := decimal.Zero
	for i, b := range table.Brackets {
		if !b.UpTo.GreaterThan(prev) {
			return nil, fmt.Errorf("%w: inss bracket %d upper bound %s is not above %s", ErrInvalidRules, i, b.UpTo, prev)
		}
		if b.Rate.IsNegative() {
			return nil, fmt.Errorf("%w: inss bracket %d has negative rate", ErrInvalidRules, i)
		}
		prev = b.UpTo
	}
	if !table.Ceiling.IsPositive() {
		return nil, fmt.Errorf("%w: inss ceiling must be positive", ErrInvalidRules)
	}
	return &INSSCalculator{Brackets: table.Brackets, Ceiling: table.Ceiling}, nil
}

// Calculate returns the contribution for base, rounded to cents
func (c *INSSCalculator) Calculate(base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	remaining := decimal.Min(base, c.Ceiling)
	lower := decimal.Zero
	total := decimal.Zero
	for _, b := range c.Brackets {
		inBand := decimal.Min(remaining, b.UpTo.Sub(lower))
		if inBand.IsPositive() {
			total = total.Add(inBand.Mul(b.Rate))
			remaining = remaining.Sub(inBand)
		}
		lower = b.UpTo
		if !remaining.IsPositive() {
			break
		}
	}
	return roundCents(total)
}

// IRRFCalculator computes withholding income tax. Unlike INSS it is not a cumulative
// walk: exactly one band applies to the whole adjusted base, minus that band's fixed
// deduction.
type IRRFCalculator struct {
	Brackets           []domain.IRRFBracket
	DependentDeduction decimal.Decimal
}

// NewIRRFCalculator checks that bands are contiguous and only the last is open ended
func NewIRRFCalculator(table domain.IRRFTable) (*IRRFCalculator, error) {
	if len(table.Brackets) == 0 {
		return nil, fmt.Errorf("%w: irrf table has no brackets", ErrInvalidRules)
	}
	for i, b := range table.Brackets {
		last := i == len(table.Brackets)-1
		if b.To == nil && !last {
			return nil, fmt.Errorf("%w: irrf bracket %d is open ended but not last", ErrInvalidRules, i)
		}
		if b.To != nil && !b.To.GreaterThan(b.From) {
			return nil, fmt.Errorf("%w: irrf bracket %d is empty", ErrInvalidRules, i)
		}
		if i > 0 {
			prev := table.Brackets[i-1]
			if !prev.To.Equal(b.From) {
				return nil, fmt.Errorf("%w: irrf bracket %d starts at %s, previous ends at %s", ErrInvalidRules, i, b.From, prev.To)
			}
		}
	}
	return &IRRFCalculator{Brackets: table.Brackets, DependentDeduction: table.DependentDeduction}, nil
}

// AdjustedBase is base minus the contribution already paid and the dependents deduction
func (c *IRRFCalculator) AdjustedBase(base decimal.Decimal, dependents int, paidINSS decimal.Decimal) decimal.Decimal {
	deps := decimal.NewFromInt(int64(dependents)).Mul(c.DependentDeduction)
	return base.Sub(paidINSS).Sub(deps)
}

// Calculate returns the tax on base for the given dependents and INSS already withheld
// from the same group, rounded to cents.
func (c *IRRFCalculator) Calculate(base decimal.Decimal, dependents int, paidINSS decimal.Decimal) decimal.Decimal {
	adjusted := c.AdjustedBase(base, dependents, paidINSS)
	if !adjusted.IsPositive() {
		return decimal.Zero
	}
	for _, b := range c.Brackets {
		if b.Contains(adjusted) {
			tax := adjusted.Mul(b.Rate).Sub(b.Deduction)
			return roundCents(decimal.Max(decimal.Zero, tax))
		}
	}
	return decimal.Zero
}
