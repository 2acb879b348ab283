package tui

import "github.com/charmbracelet/bubbles/key"

// bindings is a flat help.KeyMap.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

type keyMap struct {
	Start      key.Binding
	NextMode   key.Binding
	PrevMode   key.Binding
	Difficulty key.Binding
	Stop       key.Binding
	Suspend    key.Binding
	Menu       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Start: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "start"),
	),
	NextMode: key.NewBinding(
		key.WithKeys("right", "l", "tab"),
		key.WithHelp("→", "next mode"),
	),
	PrevMode: key.NewBinding(
		key.WithKeys("left", "h", "shift+tab"),
		key.WithHelp("←", "prev mode"),
	),
	Difficulty: key.NewBinding(
		key.WithKeys("d", "1", "2", "3"),
		key.WithHelp("d/1-3", "difficulty"),
	),
	Stop: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "end session"),
	),
	Suspend: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "suspend"),
	),
	Menu: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "menu"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) menu() bindings {
	return bindings{k.Start, k.PrevMode, k.NextMode, k.Difficulty, k.Quit}
}

func (k keyMap) playing() bindings {
	return bindings{k.Stop, k.Suspend, k.Quit}
}

func (k keyMap) results() bindings {
	again := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play again"))
	return bindings{again, k.Menu, k.Quit}
}
