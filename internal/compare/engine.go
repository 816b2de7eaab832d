package compare

import (
	"fmt"

	"github.com/rgehrsitz/rescisao/internal/calculation"
	"github.com/rgehrsitz/rescisao/internal/domain"
)

// CompareEngine runs one input under several termination reasons
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseReason   string   // defaults to the input's own reason
	Alternatives []string // defaults to every other reason of the catalog
}

// Compare calculates in under the base reason and each alternative
func (ce *CompareEngine) Compare(in domain.TerminationInput, options CompareOptions) (*ComparisonSet, error) {
	rules := ce.CalcEngine.Rules()

	baseCode := options.BaseReason
	if baseCode == "" {
		baseCode = in.ReasonCode
	}

	baseResult, err := ce.calculate(in, baseCode)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base reason: %w", err)
	}

	alternativesCodes := options.Alternatives
	if len(alternativesCodes) == 0 {
		for _, r := range rules.Reasons {
			if r.Code != baseCode {
				alternativesCodes = append(alternativesCodes, r.Code)
			}
		}
	}

	alternatives := []ComparisonResult{}
	for _, code := range alternativesCodes {
		if code == baseCode {
			continue
		}
		altResult, err := ce.calculate(in, code)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate reason %s: %w", code, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseReason:         baseCode,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) calculate(in domain.TerminationInput, code string) (ComparisonResult, error) {
	in.ReasonCode = code
	result, err := ce.CalcEngine.Calculate(in)
	if err != nil {
		return ComparisonResult{}, err
	}
	reason, _ := ce.CalcEngine.Rules().Reason(code)
	return ce.MetricsCalculator.CalculateMetrics(reason, result), nil
}
