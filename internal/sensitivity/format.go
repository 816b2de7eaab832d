package sensitivity

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/rescisao/internal/output"
	"github.com/shopspring/decimal"
)

// Formatter renders sensitivity sweeps
type Formatter interface {
	Format(m *MultiAnalysis) (string, error)
}

// NewFormatter returns the formatter registered under name
func NewFormatter(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "table", "console":
		return &TableFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	case "json":
		return &JSONFormatter{Pretty: true}, nil
	}
	return nil, fmt.Errorf("unknown sensitivity format %q", name)
}

// TableFormatter renders each sweep as a console table
type TableFormatter struct{}

func (tf *TableFormatter) Format(m *MultiAnalysis) (string, error) {
	if m == nil || len(m.Analyses) == 0 {
		return "", fmt.Errorf("no analyses to format")
	}
	var sb strings.Builder
	for i, a := range m.Analyses {
		if i > 0 {
			sb.WriteString("\n")
		}
		tf.formatOne(&sb, a)
	}
	if len(m.Analyses) > 1 {
		sb.WriteString(fmt.Sprintf("\nMaior impacto no líquido: %s\n", m.MostSensitive.Label()))
	}
	return sb.String(), nil
}

func (tf *TableFormatter) formatOne(sb *strings.Builder, a *Analysis) {
	sb.WriteString(fmt.Sprintf("SENSIBILIDADE: %s\n", strings.ToUpper(a.Parameter.Type.Label())))
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Valor atual: %s    Líquido atual: %s\n", a.BaseLabel, output.FormatCurrency(a.BaseNet)))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-16s %16s %14s %7s %7s %6s %16s\n",
		a.Parameter.Type.Label(), "Líquido", "INSS + IRRF", "Férias", "13º", "Aviso", "Variação"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")
	for _, pt := range a.Points {
		sb.WriteString(fmt.Sprintf("%-16s %16s %14s %7s %7s %6d %16s\n",
			pt.Label,
			output.FormatCurrency(pt.Net),
			output.FormatCurrency(pt.Taxes),
			fmt.Sprintf("%d/12", pt.VacationFraction),
			fmt.Sprintf("%d/12", pt.ThirteenthFraction),
			pt.NoticeDays,
			signed(pt.NetChange)))
	}
	sb.WriteString("\n")

	s := a.Summary
	sb.WriteString(fmt.Sprintf("Melhor: %s (%s)\n", s.Best.Label, output.FormatCurrency(s.Best.Net)))
	sb.WriteString(fmt.Sprintf("Pior:   %s (%s)\n", s.Worst.Label, output.FormatCurrency(s.Worst.Net)))
	sb.WriteString(fmt.Sprintf("Amplitude: %s\n", output.FormatCurrency(s.NetRange)))
	if len(s.Steps) > 0 {
		sb.WriteString("\nDEGRAUS\n")
		for _, st := range s.Steps {
			sb.WriteString(fmt.Sprintf("• %s: %s\n", st.Label, st.Description))
		}
	}
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + output.FormatCurrency(d)
	}
	return output.FormatCurrency(d)
}

// CSVFormatter writes one row per sweep point
type CSVFormatter struct{}

func (cf *CSVFormatter) Format(m *MultiAnalysis) (string, error) {
	if m == nil {
		return "", fmt.Errorf("no analyses to format")
	}
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	header := []string{"Parametro", "Valor", "Rotulo", "Liquido", "Tributos", "Proventos", "Multa FGTS",
		"Ferias", "Decimo Terceiro", "Aviso", "Variacao", "Variacao %"}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, a := range m.Analyses {
		for _, pt := range a.Points {
			row := []string{
				string(a.Parameter.Type),
				pt.Value.String(),
				pt.Label,
				pt.Net.StringFixed(2),
				pt.Taxes.StringFixed(2),
				pt.TotalEarnings.StringFixed(2),
				pt.FGTSPenalty.StringFixed(2),
				strconv.Itoa(pt.VacationFraction),
				strconv.Itoa(pt.ThirteenthFraction),
				strconv.Itoa(pt.NoticeDays),
				pt.NetChange.StringFixed(2),
				pt.NetChangePct.Mul(decimal.NewFromInt(100)).StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}

// JSONFormatter encodes the sweeps as JSON
type JSONFormatter struct {
	Pretty bool
}

func (jf *JSONFormatter) Format(m *MultiAnalysis) (string, error) {
	var (
		data []byte
		err  error
	)
	if jf.Pretty {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = json.Marshal(m)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
