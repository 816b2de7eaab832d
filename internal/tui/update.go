package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case NavigateMsg:
		m.navigate(msg.Scene)
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case SettlementLoadedMsg:
		m.loading = false
		m.err = nil
		m.input = msg.Input
		m.result = msg.Result
		m.ledger.SetRows(ledgerRows(msg.Result))
		m.ledger.GotoTop()
		m.logView.SetContent(renderLog(msg.Result))
		m.logView.GotoTop()
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		m.err = nil
		return m, loadSettlementCmd(m.inputPath, m.regulatoryPath)

	case key.Matches(msg, m.keys.Help):
		if m.currentScene == SceneHelp {
			m.navigate(m.previousScene)
		} else {
			m.navigate(SceneHelp)
		}
		return m, nil
	}

	if m.currentScene == SceneHelp {
		if msg.String() == "esc" {
			m.navigate(m.previousScene)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.navigate(m.cycle(1))
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.navigate(m.cycle(-1))
		return m, nil
	case key.Matches(msg, m.keys.Ledger):
		m.navigate(SceneLedger)
		return m, nil
	case key.Matches(msg, m.keys.Taxes):
		m.navigate(SceneTaxes)
		return m, nil
	case key.Matches(msg, m.keys.Log):
		m.navigate(SceneLog)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene forwards scrolling input to the widget of the active tab
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneLedger:
		m.ledger, cmd = m.ledger.Update(msg)
	case SceneLog:
		m.logView, cmd = m.logView.Update(msg)
	}
	return m, cmd
}

func (m *Model) navigate(s Scene) {
	if s == m.currentScene {
		return
	}
	m.previousScene = m.currentScene
	m.currentScene = s
	m.help.ShowAll = s == SceneHelp
}

// cycle returns the tab step positions away from the current one
func (m Model) cycle(step int) Scene {
	for i, s := range sceneOrder {
		if s == m.currentScene {
			n := len(sceneOrder)
			return sceneOrder[((i+step)%n+n)%n]
		}
	}
	return SceneLedger
}

func (m *Model) resize() {
	bodyHeight := m.height - 12
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.ledger.SetHeight(bodyHeight)
	m.ledger.SetWidth(m.width - 2)
	m.logView.Width = m.width - 2
	m.logView.Height = bodyHeight + 4
	m.help.Width = m.width
}
