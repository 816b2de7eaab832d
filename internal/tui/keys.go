package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Ledger key.Binding
	Taxes  key.Binding
	Log    key.Binding
	Up     key.Binding
	Down   key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "próxima aba")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "aba anterior")),
		Ledger: key.NewBinding(key.WithKeys("1", "v"), key.WithHelp("1", "verbas")),
		Taxes:  key.NewBinding(key.WithKeys("2", "i"), key.WithHelp("2", "impostos")),
		Log:    key.NewBinding(key.WithKeys("3", "m"), key.WithHelp("3", "memória")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "subir")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "descer")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recalcular")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ajuda")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "sair")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Ledger, k.Taxes, k.Log},
		{k.Up, k.Down, k.Reload, k.Help, k.Quit},
	}
}
