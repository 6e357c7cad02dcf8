package page

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Pause    key.Binding
	Reseed   key.Binding
	Theme    key.Binding
	Record   key.Binding
	Snapshot key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Skip     key.Binding
	Help     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
		Pause:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pause")),
		Reseed:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reseed")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Record:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "record gif")),
		Snapshot: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "svg snapshot")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "page down")),
		Skip:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "skip intro")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Pause, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Pause, k.Reseed, k.Theme, k.Skip},
		{k.Record, k.Snapshot, k.Help, k.Quit},
	}
}

// fieldKeys is the reduced map for the full-screen field view.
type fieldKeys struct{ keyMap }

func (k fieldKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Reseed, k.Theme, k.Record, k.Snapshot, k.Quit}
}

func (k fieldKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Pause, k.Reseed, k.Theme}, {k.Record, k.Snapshot, k.Help, k.Quit}}
}
