package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the simulator.
type KeyMap struct {
	// Desktops
	Prev      key.Binding
	Next      key.Binding
	Jump      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding

	// Pinning
	PinWindow key.Binding
	PinApp    key.Binding

	// Settings
	ToggleSimple key.Binding
	ToggleNames  key.Binding
	CycleMonitor key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.PinWindow, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Jump},
		{k.MoveLeft, k.MoveRight},
		{k.PinWindow, k.PinApp},
		{k.ToggleSimple, k.ToggleNames, k.CycleMonitor},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous desktop"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next desktop"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to desktop"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "move desktop left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "move desktop right"),
		),
		PinWindow: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin/unpin window"),
		),
		PinApp: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "pin/unpin application"),
		),
		ToggleSimple: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle simple layout"),
		),
		ToggleNames: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "toggle desktop names"),
		),
		CycleMonitor: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "cycle monitor target"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}
