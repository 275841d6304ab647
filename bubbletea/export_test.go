package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/devtalk/devtalk"
)

// TypingTickMsg exports typingTickMsg for testing.
type TypingTickMsg = typingTickMsg

// StreamEvent builds the message delivering e from the stream seq of c.
func StreamEvent(c *Controller, seq uint64, e devtalk.Event) tea.Msg {
	return streamEventMsg{ctrl: c.id, seq: seq, event: e}
}

// Tick builds the message of the tick currently armed on c.
func Tick(c *Controller) tea.Msg {
	return typingTickMsg{id: c.scheduler.id, gen: c.scheduler.gen}
}

// TickArmed reports whether c has a typing tick pending.
func TickArmed(c *Controller) bool {
	return c.scheduler.Armed()
}

// Reconciled builds the result of the transcript fetch of stream seq of c.
func Reconciled(c *Controller, seq uint64, messages []devtalk.Message, err error) tea.Msg {
	return reconcileMsg{ctrl: c.id, seq: seq, messages: messages, err: err}
}

// Loaded builds the result of the initial chat load.
func Loaded(session devtalk.Session, messages []devtalk.Message, err error) tea.Msg {
	return chatLoadedMsg{session: session, messages: messages, err: err}
}

// BlockSeparator exports blockSeparator for testing.
func BlockSeparator(prev, curr MessageBlock) string {
	return blockSeparator(prev, curr)
}

// RenderContent exports renderContent for testing.
func RenderContent(m Chat) string {
	return m.renderContent()
}

// StatusLine exports statusLine for testing.
func StatusLine(m Chat) string {
	return m.statusLine()
}

// ChatController returns the stream controller of m.
func ChatController(m Chat) *Controller {
	return m.ctrl
}

// OpenedSession reports the session an openSessionMsg asks for.
func OpenedSession(msg tea.Msg) (devtalk.Session, bool) {
	open, ok := msg.(openSessionMsg)
	return open.session, ok
}

// IsBack reports whether msg asks to return to the session list.
func IsBack(msg tea.Msg) bool {
	_, ok := msg.(backMsg)
	return ok
}

// OpenSession builds the message asking the app to open session.
func OpenSession(session devtalk.Session) tea.Msg {
	return openSessionMsg{session: session}
}

// Back builds the message asking the app to return to the session list.
func Back() tea.Msg {
	return backMsg{}
}
