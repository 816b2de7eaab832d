package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/rescisao/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing reasons
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("COMPARATIVO DE MOTIVOS DE RESCISÃO\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	sb.WriteString(fmt.Sprintf("Motivo base: %s\n", compSet.BaseReason))
	if compSet.InputPath != "" {
		sb.WriteString(fmt.Sprintf("Entrada: %s\n", compSet.InputPath))
	}
	sb.WriteString("\n")

	nameWidth := 32
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Motivo",
		numWidth, "Proventos",
		numWidth, "Impostos",
		numWidth, "Multa FGTS",
		numWidth, "Líquido"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	if base := compSet.BaseResult; base != nil {
		sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 96) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nDIFERENÇA EM RELAÇÃO À BASE\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ReasonCode))
			sb.WriteString(fmt.Sprintf("  Líquido:     %s%s (%s%%)\n",
				tf.deltaSymbol(alt.NetDiffFromBase),
				output.FormatCurrency(alt.NetDiffFromBase),
				alt.NetPctFromBase.StringFixed(1)))
			if !alt.TaxDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Impostos:    %s%s\n",
					tf.deltaSymbol(alt.TaxDiffFromBase),
					output.FormatCurrency(alt.TaxDiffFromBase)))
			}
			if !alt.PenaltyDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Multa FGTS:  %s%s\n",
					tf.deltaSymbol(alt.PenaltyDiffFromBase),
					output.FormatCurrency(alt.PenaltyDiffFromBase)))
			}
			if alt.Warnings > 0 {
				sb.WriteString(fmt.Sprintf("  Avisos:      %d (ver memória de cálculo)\n", alt.Warnings))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nOBSERVAÇÕES\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single reason row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ReasonCode
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, output.FormatCurrency(result.TotalEarnings),
		numWidth, output.FormatCurrency(result.Taxes),
		numWidth, output.FormatCurrency(result.FGTSPenalty),
		numWidth, output.FormatCurrency(result.Net))
}

// deltaSymbol returns a + for positive deltas; negative values carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each reason
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseReason))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.NetDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.NetDiffFromBase) + output.FormatCurrency(alt.NetDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ReasonCode, change))
	}

	return sb.String()
}
