package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-ipod/internal/core"
)

// KeyMap defines the keyboard stand-ins for the click wheel.
type KeyMap struct {
	Forward   key.Binding
	Back      key.Binding
	TurnLeft  key.Binding
	TurnRight key.Binding
	Select    key.Binding
	Menu      key.Binding
	PlayPause key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TurnLeft, k.TurnRight, k.Select, k.Menu, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Back, k.TurnLeft, k.TurnRight},
		{k.Select, k.Menu, k.PlayPause, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Forward: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "forward"),
		),
		Back: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "back"),
		),
		TurnLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "turn ccw"),
		),
		TurnRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "turn cw"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Menu: key.NewBinding(
			key.WithKeys("esc", "m", "b"),
			key.WithHelp("esc/m", "menu"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play/pause"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyAction is what a key press means to the shell.
type KeyAction struct {
	Button core.Button // Button press, or ButtonNone
	Turn   int         // -1 counter-clockwise, +1 clockwise, 0 none
	Help   bool
	Quit   bool
}

// MapKey translates a key message to a wheel action.
func (k KeyMap) MapKey(msg tea.KeyMsg) KeyAction {
	switch {
	case key.Matches(msg, k.Quit):
		return KeyAction{Quit: true}
	case key.Matches(msg, k.Forward):
		return KeyAction{Button: core.ButtonForward}
	case key.Matches(msg, k.Back):
		return KeyAction{Button: core.ButtonBack}
	case key.Matches(msg, k.TurnLeft):
		return KeyAction{Turn: -1}
	case key.Matches(msg, k.TurnRight):
		return KeyAction{Turn: 1}
	case key.Matches(msg, k.Select):
		return KeyAction{Button: core.ButtonSelect}
	case key.Matches(msg, k.Menu):
		return KeyAction{Button: core.ButtonMenu}
	case key.Matches(msg, k.PlayPause):
		return KeyAction{Button: core.ButtonPlayPause}
	case key.Matches(msg, k.Help):
		return KeyAction{Help: true}
	}
	return KeyAction{}
}
