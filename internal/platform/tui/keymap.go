package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// KeyMap defines the key bindings for a game session.
type KeyMap struct {
	Jump       key.Binding
	Quit       key.Binding
	Help       key.Binding
	Screenshot key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Quit, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Jump, k.Screenshot}, {k.Quit, k.Help}}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/up", "flap"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// KeyMapper translates Bubble Tea messages to game events.
// Terminals report key presses only, so a press yields both a key-down and a
// key-up event: the down flaps during a round, the up leaves a wait screen.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey returns the events for one key press.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) []core.Event {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return []core.Event{core.Quit()}
	case key.Matches(msg, km.keys.Help), key.Matches(msg, km.keys.Screenshot):
		return nil
	case key.Matches(msg, km.keys.Jump):
		k := core.KeySpace
		if msg.Type == tea.KeyUp {
			k = core.KeyArrowUp
		}
		return []core.Event{core.KeyDown(k), core.KeyUp(k)}
	}
	return []core.Event{core.KeyDown(core.KeyOther), core.KeyUp(core.KeyOther)}
}

// MapMouse returns the events for a mouse button message. Motion is ignored.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) []core.Event {
	switch msg.Action {
	case tea.MouseActionPress:
		return []core.Event{core.MouseDown()}
	case tea.MouseActionRelease:
		return []core.Event{core.MouseUp()}
	}
	return nil
}
