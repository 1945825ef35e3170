package termhost

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/imtricks/internal/demo"
)

// KeyMap defines the key bindings for the terminal host.
type KeyMap struct {
	ToggleBox    key.Binding
	ToggleHeader key.Binding
	Default      key.Binding
	Success      key.Binding
	Warning      key.Binding
	Danger       key.Binding
	Quit         key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleBox, k.ToggleHeader, k.Default, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleBox, k.ToggleHeader},
		{k.Default, k.Success, k.Warning, k.Danger},
		{k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ToggleBox: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "box"),
		),
		ToggleHeader: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "header"),
		),
		Default: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1-4", "toast"),
		),
		Success: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "success"),
		),
		Warning: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "warning"),
		),
		Danger: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "danger"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action returns the demo action bound to msg.
func (k KeyMap) Action(msg tea.KeyMsg) demo.Action {
	switch {
	case key.Matches(msg, k.ToggleBox):
		return demo.ActionToggleBox
	case key.Matches(msg, k.ToggleHeader):
		return demo.ActionToggleHeader
	case key.Matches(msg, k.Default):
		return demo.ActionNotifyDefault
	case key.Matches(msg, k.Success):
		return demo.ActionNotifySuccess
	case key.Matches(msg, k.Warning):
		return demo.ActionNotifyWarning
	case key.Matches(msg, k.Danger):
		return demo.ActionNotifyDanger
	case key.Matches(msg, k.Quit):
		return demo.ActionQuit
	default:
		return demo.ActionNone
	}
}
