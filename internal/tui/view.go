package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/rescisao/internal/domain"
	"github.com/rgehrsitz/rescisao/internal/output"
	"github.com/rgehrsitz/rescisao/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp("Calculando rescisão...")
	}

	if m.err != nil {
		return m.renderApp(m.renderError())
	}

	var content string
	switch m.currentScene {
	case SceneLedger:
		content = m.renderLedger()
	case SceneTaxes:
		content = m.renderTaxes()
	case SceneLog:
		content = m.logView.View()
	case SceneHelp:
		content = m.help.View(m.keys)
	default:
		content = "Tela desconhecida"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, tabs and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		m.renderTabs(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Rescisão - Cálculo de Verbas Rescisórias")
	subtitle := SubtitleStyle.Render(m.inputPath)
	if m.result != nil {
		subtitle = SubtitleStyle.Render(fmt.Sprintf("%s (%s) - %s", m.result.ReasonCode, m.result.Category, m.inputPath))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(sceneOrder))
	for i, s := range sceneOrder {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == m.currentScene {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatusBar() string {
	if m.currentScene == SceneHelp {
		return StatusBarStyle.Render("esc voltar")
	}
	return StatusBarStyle.Render(m.help.View(m.keys))
}

func (m Model) renderError() string {
	return ErrorStyle.Render("Erro: "+m.err.Error()) + "\n\n" +
		"Pressione r para tentar novamente ou q para sair."
}

func (m Model) renderLedger() string {
	if m.result == nil {
		return "Nenhum cálculo disponível."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.ledger.View(), "", summaryCards(m.result, m.width))
}

func summaryCards(r *domain.SettlementResult, width int) string {
	cards := []*components.MetricCard{
		components.NewMetricCard("Proventos", output.FormatCurrency(r.TotalEarnings)).WithTone(1),
		components.NewMetricCard("Descontos", output.FormatCurrency(r.TotalDeductions)).WithTone(-1),
		components.NewMetricCard("INSS + IRRF", output.FormatCurrency(r.INSS.Total.Add(r.IRRF.Total))).WithTone(-1),
		components.NewMetricCard("Líquido a receber", output.FormatCurrency(r.Net)).WithTone(r.Net.Sign()),
	}
	columns := width / 28
	if columns > len(cards) {
		columns = len(cards)
	}
	return components.MetricGrid(cards, columns)
}

func (m Model) renderTaxes() string {
	r := m.result
	if r == nil {
		return "Nenhum cálculo disponível."
	}
	var b strings.Builder
	row := func(label string, value decimal.Decimal) {
		fmt.Fprintf(&b, "  %-34s %18s\n", label, output.FormatCurrency(value))
	}

	b.WriteString(TitleStyle.Render("Bases de cálculo") + "\n")
	row("Base INSS (mensal)", r.Bases.INSSMonthly)
	row("Base INSS (13º)", r.Bases.INSSThirteenth)
	row("Base IRRF (mensal)", r.Bases.IRRFMonthly)
	row("Base IRRF (13º)", r.Bases.IRRFThirteenth)

	b.WriteString("\n" + TitleStyle.Render("Impostos") + "\n")
	row("INSS mensal", r.INSS.Monthly)
	row("INSS 13º", r.INSS.Thirteenth)
	row("IRRF mensal", r.IRRF.Monthly)
	row("IRRF 13º", r.IRRF.Thirteenth)
	row("Total de impostos", r.INSS.Total.Add(r.IRRF.Total))

	b.WriteString("\n" + TitleStyle.Render("Parâmetros utilizados") + "\n")
	fmt.Fprintf(&b, "  %-34s %18s\n", "Avos de férias", fmt.Sprintf("%d/12", r.VacationFractionUsed))
	fmt.Fprintf(&b, "  %-34s %18s\n", "Avos de 13º", fmt.Sprintf("%d/12", r.ThirteenthFractionUsed))
	fmt.Fprintf(&b, "  %-34s %18s\n", "Dias de aviso", fmt.Sprintf("%d", r.NoticeDaysUsed))
	row("Remuneração de referência", r.ReferenceRemuneration)
	if r.FGTSPenalty.IsPositive() {
		row("Multa FGTS", r.FGTSPenalty)
	}

	if ob := r.OvertimeBase; ob != nil {
		b.WriteString("\n" + TitleStyle.Render("Base de hora extra") + "\n")
		row("Base total", ob.Total)
		fmt.Fprintf(&b, "  %-34s %18s\n", "Divisor", fmt.Sprintf("%dh", ob.Divisor))
		row("Valor hora", ob.HourlyRate)
		row("Total de horas extras", ob.TotalOvertime)
	}
	if r.DSR != nil {
		b.WriteString("\n" + TitleStyle.Render("DSR sobre variáveis") + "\n")
		fmt.Fprintf(&b, "  %-34s %18s\n", "Dias úteis / não úteis", fmt.Sprintf("%d / %d", r.DSR.BusinessDays, r.DSR.NonBusinessDays))
		row("Valor", r.DSR.Value)
	}
	return b.String()
}

// renderLog formats the audit log, one entry per line, colored by kind
func renderLog(r *domain.SettlementResult) string {
	if r == nil || len(r.Log) == 0 {
		return "Memória de cálculo vazia."
	}
	var b strings.Builder
	for _, e := range r.Log {
		kind := string(e.Kind)
		switch e.Kind {
		case domain.LogWarning:
			kind = LogWarningStyle.Render(kind)
		case domain.LogManual:
			kind = LogManualStyle.Render(kind)
		default:
			kind = LogInfoStyle.Render(kind)
		}
		fmt.Fprintf(&b, "[%s] %s %s\n", e.Timestamp.Format("15:04:05"), kind, e.Message)
	}
	return b.String()
}
