package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/rescisao/internal/domain"
)

// ConsoleFormatter renders a plain-text settlement statement
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *domain.SettlementResult) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 78)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "TERMO DE RESCISÃO - DEMONSTRATIVO DE VERBAS")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "Motivo: %s (%s)\n", r.ReasonCode, r.Category)
	fmt.Fprintf(&buf, "Remuneração de referência: %s\n", FormatCurrency(r.ReferenceRemuneration))
	fmt.Fprintf(&buf, "Avos férias: %d/12   Avos 13º: %d/12   Dias de aviso: %d\n",
		r.VacationFractionUsed, r.ThirteenthFractionUsed, r.NoticeDaysUsed)
	fmt.Fprintln(&buf)

	writeSection(&buf, "PROVENTOS", r.Lines, domain.Earning)
	writeSection(&buf, "DESCONTOS", r.Lines, domain.Deduction)

	fmt.Fprintln(&buf, "IMPOSTOS")
	fmt.Fprintln(&buf, strings.Repeat("-", 78))
	fmt.Fprintf(&buf, "%-40s %17s %18s\n", "", "Mensal", "13º Salário")
	fmt.Fprintf(&buf, "%-40s %17s %18s\n", "Base INSS", FormatCurrency(r.Bases.INSSMonthly), FormatCurrency(r.Bases.INSSThirteenth))
	fmt.Fprintf(&buf, "%-40s %17s %18s\n", "INSS", FormatCurrency(r.INSS.Monthly), FormatCurrency(r.INSS.Thirteenth))
	fmt.Fprintf(&buf, "%-40s %17s %18s\n", "Base IRRF", FormatCurrency(r.Bases.IRRFMonthly), FormatCurrency(r.Bases.IRRFThirteenth))
	fmt.Fprintf(&buf, "%-40s %17s %18s\n", "IRRF", FormatCurrency(r.IRRF.Monthly), FormatCurrency(r.IRRF.Thirteenth))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "TOTAIS")
	fmt.Fprintln(&buf, strings.Repeat("-", 78))
	fmt.Fprintf(&buf, "%-58s %19s\n", "Total de proventos", FormatCurrency(r.TotalEarnings))
	fmt.Fprintf(&buf, "%-58s %19s\n", "Total de descontos", FormatCurrency(r.TotalDeductions))
	fmt.Fprintf(&buf, "%-58s %19s\n", "INSS", FormatCurrency(r.INSS.Total))
	fmt.Fprintf(&buf, "%-58s %19s\n", "IRRF", FormatCurrency(r.IRRF.Total))
	fmt.Fprintf(&buf, "%-58s %19s\n", "Multa FGTS (incluída nos proventos)", FormatCurrency(r.FGTSPenalty))
	fmt.Fprintf(&buf, "%-58s %19s\n", "LÍQUIDO A RECEBER", FormatCurrency(r.Net))
	fmt.Fprintln(&buf)

	if r.OvertimeBase != nil {
		ob := r.OvertimeBase
		fmt.Fprintln(&buf, "BASE DE HORA EXTRA")
		fmt.Fprintln(&buf, strings.Repeat("-", 78))
		fmt.Fprintf(&buf, "Base: %s ÷ %dh = %s/h\n", FormatCurrency(ob.Total), ob.Divisor, FormatCurrency(ob.HourlyRate))
		fmt.Fprintf(&buf, "Total de horas extras: %s\n", FormatCurrency(ob.TotalOvertime))
		fmt.Fprintln(&buf)
	}
	if r.DSR != nil {
		fmt.Fprintf(&buf, "DSR: %d úteis / %d não úteis = %s\n\n", r.DSR.BusinessDays, r.DSR.NonBusinessDays, FormatCurrency(r.DSR.Value))
	}

	fmt.Fprintln(&buf, "MEMÓRIA DE CÁLCULO")
	fmt.Fprintln(&buf, strings.Repeat("-", 78))
	for _, e := range r.Log {
		fmt.Fprintf(&buf, "[%s] %s %s\n", e.Timestamp.Format("15:04:05"), e.Kind, e.Message)
	}
	return buf.Bytes(), nil
}

func writeSection(buf *bytes.Buffer, title string, lines []domain.LedgerLine, kind domain.LineKind) {
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("-", 78))
	for _, l := range lines {
		if l.Kind != kind {
			continue
		}
		fmt.Fprintf(buf, "%-50s %-8s %18s\n", l.Description, incidences(l), FormatCurrency(l.Value))
	}
	fmt.Fprintln(buf)
}

// incidences abbreviates the tax flags, e.g. "I/R/F" or "-"
func incidences(l domain.LedgerLine) string {
	var parts []string
	if l.INSS {
		parts = append(parts, "I")
	}
	if l.IRRF {
		parts = append(parts, "R")
	}
	if l.FGTS {
		parts = append(parts, "F")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "/")
}
