package output

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/rgehrsitz/rescisao/internal/domain"
)

// PDFFormatter renders an A4 settlement statement
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(r *domain.SettlementResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Termo de Rescisão"), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Demonstrativo de Rescisão"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Motivo: %s (%s)", r.ReasonCode, r.Category)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr("Remuneração de referência: "+FormatCurrency(r.ReferenceRemuneration)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Avos de férias: %d/12   Avos de 13º: %d/12   Dias de aviso: %d",
		r.VacationFractionUsed, r.ThirteenthFractionUsed, r.NoticeDaysUsed)))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(110, 7, tr("Descrição"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Tipo", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, tr("Incid."), "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Valor", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range r.Lines {
		kind := "P"
		if l.Kind == domain.Deduction {
			kind = "D"
		}
		pdf.CellFormat(110, 6, tr(l.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, kind, "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, incidences(l), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, tr(FormatCurrency(l.Value)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	rows := []struct {
		label string
		value string
	}{
		{"INSS mensal", FormatCurrency(r.INSS.Monthly)},
		{"INSS 13º salário", FormatCurrency(r.INSS.Thirteenth)},
		{"IRRF mensal", FormatCurrency(r.IRRF.Monthly)},
		{"IRRF 13º salário", FormatCurrency(r.IRRF.Thirteenth)},
		{"Total de proventos", FormatCurrency(r.TotalEarnings)},
		{"Total de descontos", FormatCurrency(r.TotalDeductions)},
		{"Multa FGTS", FormatCurrency(r.FGTSPenalty)},
	}
	for _, row := range rows {
		pdf.CellFormat(150, 6, tr(row.label), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tr(row.value), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(150, 8, tr("Líquido a receber"), "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, tr(FormatCurrency(r.Net)), "T", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, tr("Memória de cálculo"))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 8)
	for _, e := range r.Log {
		pdf.MultiCell(0, 4, tr(fmt.Sprintf("[%s] %s", e.Kind, e.Message)), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
