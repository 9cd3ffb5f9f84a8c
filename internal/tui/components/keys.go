package components

import "github.com/charmbracelet/bubbles/key"

// RecordViewKeyMap defines key bindings for record navigation and filtering
type RecordViewKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Home      key.Binding
	End       key.Binding
	HalfUp    key.Binding
	HalfDown  key.Binding
	Escape    key.Binding
	Enter     key.Binding
	Backspace key.Binding
	Filter    key.Binding
}

// DefaultRecordViewKeyMap returns the default record view key bindings
func DefaultRecordViewKeyMap() RecordViewKeyMap {
	return RecordViewKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("C-u", "half page up"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("C-d", "half page down"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept filter"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
	}
}

// RecordViewKeys is the package-level record view key map
var RecordViewKeys = DefaultRecordViewKeyMap()
