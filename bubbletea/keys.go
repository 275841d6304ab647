package bubbletea

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// KeyMap holds the chat view key bindings.
type KeyMap struct {
	Send         key.Binding
	Newline      key.Binding
	Stop         key.Binding
	Back         key.Binding
	Quit         key.Binding
	Resolve      key.Binding
	JumpToBottom key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
}

// DefaultKeyMap returns the default chat bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter"),
			key.WithHelp("alt+enter", "newline"),
		),
		Stop: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "stop reply"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "sessions"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Resolve: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "toggle resolved"),
		),
		JumpToBottom: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "jump to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
	}
}

// viewportKeyMap binds only the scroll keys so typing never moves the
// transcript.
func (k KeyMap) viewportKeyMap() viewport.KeyMap {
	km := viewport.DefaultKeyMap()
	km.PageUp = k.PageUp
	km.PageDown = k.PageDown
	km.HalfPageUp = k.HalfPageUp
	km.HalfPageDown = k.HalfPageDown
	km.Up = key.NewBinding(key.WithDisabled())
	km.Down = key.NewBinding(key.WithDisabled())
	return km
}

// SessionKeyMap holds the session list key bindings.
type SessionKeyMap struct {
	New     key.Binding
	Open    key.Binding
	Refresh key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

// DefaultSessionKeyMap returns the default session list bindings.
func DefaultSessionKeyMap() SessionKeyMap {
	return SessionKeyMap{
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new session"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
