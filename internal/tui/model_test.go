package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/rescisao/internal/domain"
)

const scenarioYAML = `salary: 3000
hire_date: 2023-01-10
termination_date: 2024-07-20
reason_code: DISPENSA_SEM_JUSTA_CAUSA
notice_type: TRABALHADO
days_worked: 20
adicionais:
  commission: 500
  dsr:
    business_days: 0
    non_business_days: 5
`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rescisao.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(writeInput(t, scenarioYAML), "")
	msg := m.Init()()
	loaded, ok := msg.(SettlementLoadedMsg)
	require.True(t, ok, "unexpected message %T", msg)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	updated, _ = updated.Update(loaded)
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestModel_LoadsSettlement(t *testing.T) {
	m := loadedModel(t)
	require.NotNil(t, m.result)
	assert.False(t, m.loading)
	assert.Len(t, m.ledger.Rows(), len(m.result.Lines))

	view := m.View()
	assert.Contains(t, view, "DISPENSA_SEM_JUSTA_CAUSA")
	assert.Contains(t, view, "SALDO_SALARIO")
	assert.Contains(t, view, "Líquido a receber")
}

func TestModel_TabNavigation(t *testing.T) {
	m := loadedModel(t)
	assert.Equal(t, SceneLedger, m.currentScene)

	m = press(t, m, "tab")
	assert.Equal(t, SceneTaxes, m.currentScene)
	assert.Contains(t, m.View(), "Base INSS (mensal)")

	m = press(t, m, "tab")
	assert.Equal(t, SceneLog, m.currentScene)
	assert.Contains(t, m.View(), "DSR sobre variáveis não calculado")

	m = press(t, m, "tab")
	assert.Equal(t, SceneLedger, m.currentScene)

	m = press(t, m, "shift+tab")
	assert.Equal(t, SceneLog, m.currentScene)

	m = press(t, m, "2")
	assert.Equal(t, SceneTaxes, m.currentScene)
	m = press(t, m, "1")
	assert.Equal(t, SceneLedger, m.currentScene)
}

func TestModel_HelpToggle(t *testing.T) {
	m := press(t, loadedModel(t), "3", "?")
	assert.Equal(t, SceneHelp, m.currentScene)
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "recalcular")

	// tab keys are inert on the help screen
	m = press(t, m, "tab")
	assert.Equal(t, SceneHelp, m.currentScene)

	m = press(t, m, "esc")
	assert.Equal(t, SceneLog, m.currentScene)
	assert.False(t, m.help.ShowAll)
}

func TestModel_ReloadAndQuit(t *testing.T) {
	m := loadedModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	assert.True(t, updated.(Model).loading)
	assert.Contains(t, updated.View(), "Calculando")
	_, ok := cmd().(SettlementLoadedMsg)
	assert.True(t, ok)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unknown reason", content: strings.Replace(scenarioYAML, "DISPENSA_SEM_JUSTA_CAUSA", "NAO_EXISTE", 1), want: "NAO_EXISTE"},
		{name: "unknown field", content: scenarioYAML + "salario: 1\n", want: "salario"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(writeInput(t, tt.content), "")
			msg := m.Init()()
			errMsg, ok := msg.(ErrorMsg)
			require.True(t, ok, "unexpected message %T", msg)

			updated, _ := m.Update(errMsg)
			view := updated.View()
			assert.Contains(t, view, "Erro:")
			assert.Contains(t, view, tt.want)
		})
	}

	m := NewModel("missing.yaml", "")
	updated, _ := m.Update(ErrorMsg{Err: errors.New("boom")})
	assert.Contains(t, updated.View(), "boom")
}

func TestRenderLog(t *testing.T) {
	assert.Equal(t, "Memória de cálculo vazia.", renderLog(nil))
	r := &domain.SettlementResult{Log: []domain.LogEntry{
		{Kind: domain.LogInfo, Message: "primeira"},
		{Kind: domain.LogManual, Message: "segunda"},
	}}
	out := renderLog(r)
	assert.Equal(t, 2, strings.Count(out, "\n"))
	assert.Less(t, strings.Index(out, "primeira"), strings.Index(out, "segunda"))
}

func TestLedgerRows(t *testing.T) {
	assert.Nil(t, ledgerRows(nil))
	m := loadedModel(t)
	for i, row := range m.ledger.Rows() {
		line := m.result.Lines[i]
		assert.Equal(t, line.Code, row[0])
		if !line.IsEarning() {
			assert.True(t, strings.HasPrefix(row[3], "-"))
		}
	}
}
