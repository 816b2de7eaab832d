package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/rescisao/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results for the console
type TableFormatter struct{}

// Format renders one solver result
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("PONTO DE EQUILÍBRIO\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	sb.WriteString(fmt.Sprintf("Variável:        %s\n", targetLabel(result.Target)))
	sb.WriteString(fmt.Sprintf("Meta:            %s\n", tf.goalLabel(result)))
	sb.WriteString(fmt.Sprintf("Situação:        %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterações:       %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergência:    %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("RESULTADO\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%-17s%s\n", "Valor atual:", output.FormatCurrency(result.BaseValue)))
	sb.WriteString(fmt.Sprintf("%-17s%s\n", "Valor necessário:", output.FormatCurrency(result.Value)))
	sb.WriteString(fmt.Sprintf("%-17s%s\n", "Líquido meta:", output.FormatCurrency(result.TargetNet)))
	sb.WriteString(fmt.Sprintf("%-17s%s\n", "Líquido obtido:", output.FormatCurrency(result.Net)))
	sb.WriteString("\n")

	sb.WriteString("COMPARAÇÃO COM O CENÁRIO ATUAL\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Líquido:         %s%s\n", tf.deltaSymbol(result.NetDiffFromBase), output.FormatCurrency(result.NetDiffFromBase)))
	sb.WriteString(fmt.Sprintf("INSS + IRRF:     %s%s\n", tf.deltaSymbol(result.TaxDiffFromBase), output.FormatCurrency(result.TaxDiffFromBase)))
	if pct := pctOf(result.TaxDiffFromBase, result.Value.Sub(result.BaseValue)); pct.IsPositive() {
		sb.WriteString(fmt.Sprintf("Carga marginal:  %s\n", output.FormatPercentage(pct.Round(4))))
	}

	return sb.String()
}

// FormatMulti renders one line per target followed by the recommendations
func (tf *TableFormatter) FormatMulti(m *MultiTargetResult) string {
	var sb strings.Builder
	sb.WriteString("PONTO DE EQUILÍBRIO POR VARIÁVEL\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	for _, r := range m.Results {
		sb.WriteString(fmt.Sprintf("%-14s %16s  líquido %16s\n",
			targetLabel(r.Target), output.FormatCurrency(r.Value), output.FormatCurrency(r.Net)))
	}
	if len(m.Recommendations) > 0 {
		sb.WriteString("\nRECOMENDAÇÕES\n")
		for _, rec := range m.Recommendations {
			sb.WriteString("• " + rec + "\n")
		}
	}
	return sb.String()
}

func (tf *TableFormatter) goalLabel(r *SolveResult) string {
	if r.Goal == GoalMatchReason {
		return "igualar o líquido de " + r.Request.Constraints.MatchReason
	}
	return "líquido de " + output.FormatCurrency(r.TargetNet)
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Encontrado"
	}
	return "✗ Não convergiu"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// JSONFormatter formats solver results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format renders v, a *SolveResult or *MultiTargetResult
func (jf *JSONFormatter) Format(v any) (string, error) {
	var (
		data []byte
		err  error
	)
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal break-even result: %w", err)
	}
	return string(data) + "\n", nil
}
