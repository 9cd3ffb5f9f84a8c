package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mmcdole/albumview/internal/tui/components"
)

// KeyMap defines the application-level key bindings.
// Record navigation lives in components.RecordViewKeys.
type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Filter key.Binding

	// Alert
	Dismiss key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Filter: components.RecordViewKeys.Filter,

		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", " "),
			key.WithHelp("enter", "dismiss alert"),
		),
	}
}

// HelpBindings lists the bindings shown on the help screen, in order
func (k KeyMap) HelpBindings() []key.Binding {
	rv := components.RecordViewKeys
	return []key.Binding{
		rv.Up, rv.Down, rv.HalfUp, rv.HalfDown, rv.Home, rv.End,
		k.Filter, rv.Enter, rv.Escape, k.Dismiss, k.Help, k.Quit,
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
