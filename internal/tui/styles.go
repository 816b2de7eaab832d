package tui

import "github.com/rgehrsitz/rescisao/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	TitleStyle      = tuistyles.TitleStyle
	SubtitleStyle   = tuistyles.SubtitleStyle
	TabStyle        = tuistyles.TabStyle
	ActiveTabStyle  = tuistyles.ActiveTabStyle
	StatusBarStyle  = tuistyles.StatusBarStyle
	ErrorStyle      = tuistyles.ErrorStyle
	LogInfoStyle    = tuistyles.LogInfoStyle
	LogWarningStyle = tuistyles.LogWarningStyle
	LogManualStyle  = tuistyles.LogManualStyle
)
