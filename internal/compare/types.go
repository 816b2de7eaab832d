package compare

import (
	"fmt"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/rgehrsitz/rescisao/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one termination reason applied to the shared input
type ComparisonResult struct {
	ReasonCode  string                   `json:"reasonCode"`
	Description string                   `json:"description"`
	Category    string                   `json:"category"`
	Result      *domain.SettlementResult `json:"-"`

	// Key Metrics
	TotalEarnings   decimal.Decimal `json:"totalEarnings"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	Taxes           decimal.Decimal `json:"taxes"`
	FGTSPenalty     decimal.Decimal `json:"fgtsPenalty"`
	Net             decimal.Decimal `json:"net"`
	NoticeDays      int             `json:"noticeDays"`
	Warnings        int             `json:"warnings"`

	// Comparison to Base
	NetDiffFromBase     decimal.Decimal `json:"netDiffFromBase"`
	NetPctFromBase      decimal.Decimal `json:"netPctFromBase"`
	TaxDiffFromBase     decimal.Decimal `json:"taxDiffFromBase"`
	PenaltyDiffFromBase decimal.Decimal `json:"penaltyDiffFromBase"`
}

// ComparisonSet is a base reason plus its alternatives
type ComparisonSet struct {
	BaseReason         string             `json:"baseReason"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	InputPath          string             `json:"inputPath,omitempty"`
}

// MetricsCalculator extracts key metrics from settlements
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics summarizes one settlement
func (mc *MetricsCalculator) CalculateMetrics(reason domain.TerminationReason, r *domain.SettlementResult) ComparisonResult {
	return ComparisonResult{
		ReasonCode:      reason.Code,
		Description:     reason.Description,
		Category:        reason.Category,
		Result:          r,
		TotalEarnings:   r.TotalEarnings,
		TotalDeductions: r.TotalDeductions,
		Taxes:           r.INSS.Total.Add(r.IRRF.Total),
		FGTSPenalty:     r.FGTSPenalty,
		Net:             r.Net,
		NoticeDays:      r.NoticeDaysUsed,
		Warnings:        len(r.LogOfKind(domain.LogWarning)),
	}
}

// CalculateComparison fills the deltas of alt relative to base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.NetDiffFromBase = alt.Net.Sub(base.Net)
	if !base.Net.IsZero() {
		alt.NetPctFromBase = alt.NetDiffFromBase.
			Div(base.Net.Abs()).
			Mul(decimal.NewFromInt(100))
	}
	alt.TaxDiffFromBase = alt.Taxes.Sub(base.Taxes)
	alt.PenaltyDiffFromBase = alt.FGTSPenalty.Sub(base.FGTSPenalty)
	return alt
}

// GenerateRecommendations notes which reasons stand out against the base
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Highest net amount
	bestNet := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Net.GreaterThan(bestNet.Net) {
			bestNet = alt
		}
	}
	if bestNet != compSet.BaseResult {
		recommendations = append(recommendations,
			fmt.Sprintf("Maior líquido: %s paga %s a mais que %s",
				bestNet.ReasonCode, output.FormatCurrency(bestNet.Net.Sub(compSet.BaseResult.Net)), compSet.BaseReason))
	}

	// Lowest net amount
	worstNet := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Net.LessThan(worstNet.Net) {
			worstNet = alt
		}
	}
	if worstNet != compSet.BaseResult {
		recommendations = append(recommendations,
			fmt.Sprintf("Menor líquido: %s paga %s a menos que %s",
				worstNet.ReasonCode, output.FormatCurrency(compSet.BaseResult.Net.Sub(worstNet.Net)), compSet.BaseReason))
	}

	// Lowest tax burden
	lowestTax := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Taxes.LessThan(lowestTax.Taxes) {
			lowestTax = alt
		}
	}
	if lowestTax != compSet.BaseResult {
		recommendations = append(recommendations,
			fmt.Sprintf("Menor tributação: %s retém %s a menos de INSS/IRRF",
				lowestTax.ReasonCode, output.FormatCurrency(compSet.BaseResult.Taxes.Sub(lowestTax.Taxes))))
	}

	return recommendations
}
