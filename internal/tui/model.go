// Package tui is a terminal viewer for one computed settlement
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/rescisao/internal/calculation"
	"github.com/rgehrsitz/rescisao/internal/config"
	"github.com/rgehrsitz/rescisao/internal/domain"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Sources
	inputPath      string
	regulatoryPath string

	// Current settlement
	input  *domain.TerminationInput
	result *domain.SettlementResult

	// Widgets
	ledger  table.Model
	logView viewport.Model
	help    help.Model
	keys    keyMap

	// Error state
	err error

	// Loading state
	loading bool
}

// NewModel creates a model that computes the settlement of inputPath. An empty
// regulatoryPath uses the embedded tables.
func NewModel(inputPath, regulatoryPath string) Model {
	return Model{
		currentScene:   SceneLedger,
		inputPath:      inputPath,
		regulatoryPath: regulatoryPath,
		ledger:         newLedgerTable(),
		logView:        viewport.New(80, 16),
		help:           help.New(),
		keys:           defaultKeyMap(),
		width:          80,
		height:         24,
		loading:        true,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadSettlementCmd(m.inputPath, m.regulatoryPath)
}

// loadSettlementCmd returns a command that loads both files and runs the engine
func loadSettlementCmd(inputPath, regulatoryPath string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		rules, err := parser.LoadRegulatory(regulatoryPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		in, err := parser.LoadInput(inputPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		result, err := calculation.Calculate(rules, *in)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return SettlementLoadedMsg{Input: in, Result: result}
	}
}
