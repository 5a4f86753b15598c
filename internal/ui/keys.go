package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Save     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	CloseTab key.Binding
	Help     key.Binding

	// Preview-pane only.
	Fit     key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Reset   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "prev tab"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "close tab"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "help"),
		),
		Fit: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fit to pane"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		Reset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset view"),
		),
	}
}

// ShortHelp satisfies help.KeyMap for the bottom bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.NextTab, k.CloseTab, k.Help, k.Quit}
}

// FullHelp satisfies help.KeyMap; the full listing lives in the glamour
// overlay instead.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.NextTab, k.PrevTab, k.CloseTab},
		{k.Fit, k.ZoomIn, k.ZoomOut, k.Reset},
		{k.Help, k.Quit},
	}
}
