package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Motivo",
		"Tipo",
		"Categoria",
		"Proventos",
		"Descontos",
		"Impostos",
		"Multa FGTS",
		"Liquido",
		"Dias Aviso",
		"Dif Liquido",
		"Dif Liquido %",
		"Dif Impostos",
		"Dif Multa FGTS",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternativa")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, kind string) []string {
	return []string{
		result.ReasonCode,
		kind,
		result.Category,
		result.TotalEarnings.StringFixed(2),
		result.TotalDeductions.StringFixed(2),
		result.Taxes.StringFixed(2),
		result.FGTSPenalty.StringFixed(2),
		result.Net.StringFixed(2),
		strconv.Itoa(result.NoticeDays),
		result.NetDiffFromBase.StringFixed(2),
		result.NetPctFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.PenaltyDiffFromBase.StringFixed(2),
	}
}
