package tui

import "github.com/charmbracelet/bubbles/key"

// pageKeys are the bindings active while the lightbox is closed. Lightbox
// keys go through the viewer's key router instead.
type pageKeys struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Open    key.Binding
	Section key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultPageKeys() pageKeys {
	return pageKeys{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
		Section: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "section")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k pageKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Section, k.Refresh, k.Help, k.Quit}
}

func (k pageKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Open, k.Section, k.Refresh},
		{k.Help, k.Quit},
	}
}

// lightboxKeys only documents the router's bindings for the help line.
type lightboxKeys struct {
	Prev  key.Binding
	Next  key.Binding
	Close key.Binding
}

func defaultLightboxKeys() lightboxKeys {
	return lightboxKeys{
		Prev:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous")),
		Next:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
		Close: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

func (k lightboxKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Close}
}

func (k lightboxKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
