package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab  key.Binding
	PrevTab  key.Binding
	Up       key.Binding
	Down     key.Binding
	Play     key.Binding
	Stop     key.Binding
	Toggle   key.Binding
	Filter   key.Binding
	Faster   key.Binding
	Slower   key.Binding
	AddBass  key.Binding
	AddSnare key.Binding
	AddHiHat key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next tab")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab/←", "prev tab")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Play:     key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "play")),
		Stop:     key.NewBinding(key.WithKeys("s", "esc"), key.WithHelp("s", "stop")),
		Toggle:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "practiced")),
		Filter:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "only unpracticed")),
		Faster:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "tempo")),
		Slower:   key.NewBinding(key.WithKeys("-", "_")),
		AddBass:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bass")),
		AddSnare: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "snare")),
		AddHiHat: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "hi-hat")),
		Clear:    key.NewBinding(key.WithKeys("c", "backspace"), key.WithHelp("c", "clear")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is shown in the footer
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Stop, k.Toggle, k.Faster, k.NextTab, k.Help, k.Quit}
}

// FullHelp is shown when help is expanded
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Up, k.Down},
		{k.Play, k.Stop, k.Faster, k.Filter, k.Toggle},
		{k.AddBass, k.AddSnare, k.AddHiHat, k.Clear},
		{k.Help, k.Quit},
	}
}
