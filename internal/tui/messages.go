package tui

import (
	"github.com/rgehrsitz/rescisao/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneLedger Scene = iota
	SceneTaxes
	SceneLog
	SceneHelp
)

var sceneOrder = []Scene{SceneLedger, SceneTaxes, SceneLog}

// String returns the tab label of a scene
func (s Scene) String() string {
	switch s {
	case SceneLedger:
		return "Verbas"
	case SceneTaxes:
		return "Impostos"
	case SceneLog:
		return "Memória de Cálculo"
	case SceneHelp:
		return "Ajuda"
	default:
		return "Desconhecido"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// SettlementLoadedMsg carries a computed settlement
type SettlementLoadedMsg struct {
	Input  *domain.TerminationInput
	Result *domain.SettlementResult
}
