package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Reinit key.Binding
	Pause  key.Binding
	Before key.Binding
	End    key.Binding
	Theme  key.Binding
	Save   key.Binding
	Left   key.Binding
	Right  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reinit, k.Pause, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Reinit, k.Pause, k.Before, k.End},
		{k.Theme, k.Save, k.Left, k.Right},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Reinit: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "re-init")),
	Pause:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "toggle pause-on-mouse-out")),
	Before: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "before callback")),
	End:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end callback")),
	Theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save svg")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "scroll left")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "scroll right")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
