package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Back       key.Binding
	Forward    key.Binding
	PageBack   key.Binding
	PageFwd    key.Binding
	Live       key.Binding
	Clear      key.Binding
	Delay      key.Binding
	Timestamps key.Binding
	Stats      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Back: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "scroll"),
		),
		Forward: key.NewBinding(
			key.WithKeys("right", "l"),
		),
		PageBack: key.NewBinding(
			key.WithKeys("shift+left", "pgup", "H"),
			key.WithHelp("pgup/pgdn", "page"),
		),
		PageFwd: key.NewBinding(
			key.WithKeys("shift+right", "pgdown", "L"),
		),
		Live: key.NewBinding(
			key.WithKeys("end", "home", "0"),
			key.WithHelp("end", "live"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		Delay: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delay newest"),
		),
		Timestamps: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "timeline"),
		),
		Stats: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stats"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Live, k.Clear, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Back, k.PageBack, k.Live},
		{k.Clear, k.Delay, k.Timestamps, k.Stats},
		{k.Help, k.Quit},
	}
}
