package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
)

var _ tea.Model = App{}

// App routes between the session list and the chat view.
type App struct {
	opts   Options
	list   SessionList
	chat   Chat
	inChat bool
	size   tea.WindowSizeMsg
}

// NewApp creates the root model. A non-empty sessionID opens that session
// directly; otherwise the app starts at the session list.
func NewApp(opts Options, sessionID string) App {
	opts = opts.withDefaults()
	a := App{opts: opts, list: NewSessionList(opts)}
	if sessionID != "" {
		a.chat = NewChat(sessionID, opts)
		a.inChat = true
	}
	return a
}

// InChat reports whether the chat view is showing.
func (a App) InChat() bool { return a.inChat }

// Chat returns the chat view. It is only meaningful while InChat is true.
func (a App) Chat() Chat { return a.chat }

// Sessions returns the session list.
func (a App) Sessions() SessionList { return a.list }

// Close cancels a live reply stream of the chat view.
func (a App) Close() error {
	if a.inChat {
		return a.chat.Close()
	}
	return nil
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.inChat {
		return a.chat.Init()
	}
	return a.list.Init()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.size = msg
		var listCmd, chatCmd tea.Cmd
		a, listCmd = a.updateList(msg)
		if a.inChat {
			a, chatCmd = a.updateChat(msg)
		}
		return a, tea.Batch(listCmd, chatCmd)

	case openSessionMsg:
		if a.inChat {
			_ = a.chat.Close()
		}
		a.chat = NewChat(msg.session.ID, a.opts)
		a.inChat = true
		initCmd := a.chat.Init()
		if a.size.Width > 0 {
			var cmd tea.Cmd
			a, cmd = a.updateChat(a.size)
			return a, tea.Batch(initCmd, cmd)
		}
		return a, initCmd

	case backMsg:
		if !a.inChat {
			return a, nil
		}
		_ = a.chat.Close()
		a.inChat = false
		return a, a.list.Init()

	case sessionsLoadedMsg, sessionCreatedMsg:
		return a.updateList(msg)
	}

	if a.inChat {
		return a.updateChat(msg)
	}
	return a.updateList(msg)
}

// View implements tea.Model.
func (a App) View() string {
	if a.inChat {
		return a.chat.View()
	}
	return a.list.View()
}

func (a App) updateList(msg tea.Msg) (App, tea.Cmd) {
	m, cmd := a.list.Update(msg)
	a.list = m.(SessionList)
	return a, cmd
}

func (a App) updateChat(msg tea.Msg) (App, tea.Cmd) {
	m, cmd := a.chat.Update(msg)
	a.chat = m.(Chat)
	return a, cmd
}
