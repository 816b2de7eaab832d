package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/rgehrsitz/rescisao/internal/output"
	"github.com/rgehrsitz/rescisao/internal/tui/tuistyles"
)

func newLedgerTable() table.Model {
	columns := []table.Column{
		{Title: "Código", Width: 24},
		{Title: "Descrição", Width: 38},
		{Title: "Tipo", Width: 9},
		{Title: "Valor", Width: 14},
		{Title: "INSS", Width: 4},
		{Title: "IRRF", Width: 4},
		{Title: "FGTS", Width: 4},
		{Title: "Grupo", Width: 15},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(tuistyles.ColorPrimary).
		Bold(false)
	t.SetStyles(styles)
	return t
}

// ledgerRows lists the lines in emission order, deductions with a leading minus
func ledgerRows(r *domain.SettlementResult) []table.Row {
	if r == nil {
		return nil
	}
	rows := make([]table.Row, 0, len(r.Lines))
	for _, l := range r.Lines {
		value := output.FormatCurrency(l.Value)
		if !l.IsEarning() {
			value = "-" + value
		}
		rows = append(rows, table.Row{
			l.Code,
			l.Description,
			string(l.Kind),
			value,
			yesNo(l.INSS),
			yesNo(l.IRRF),
			yesNo(l.FGTS),
			string(l.Group),
		})
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}
