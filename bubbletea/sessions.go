package bubbletea

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/devtalk/devtalk"
	"github.com/mattn/go-runewidth"
)

// maxTitleWidth is the display width at which session titles are cut.
const maxTitleWidth = 60

var _ tea.Model = SessionList{}

// sessionsLoadedMsg carries the session list.
type sessionsLoadedMsg struct {
	sessions []devtalk.Session
	err      error
}

// sessionCreatedMsg reports the outcome of creating a session.
type sessionCreatedMsg struct {
	session devtalk.Session
	err     error
}

// openSessionMsg asks the app to open a session in the chat view.
type openSessionMsg struct {
	session devtalk.Session
}

var _ list.DefaultItem = sessionItem{}

type sessionItem struct {
	session devtalk.Session
}

func (i sessionItem) Title() string {
	title := i.session.Title
	if title == "" {
		title = "Untitled"
	}
	return runewidth.Truncate(title, maxTitleWidth, "…")
}

func (i sessionItem) Description() string {
	desc := string(i.session.Status)
	if !i.session.LastUpdatedAt.IsZero() {
		desc += " · updated " + i.session.LastUpdatedAt.Format("2006-01-02 15:04")
	}
	return desc + " · #" + i.session.ID
}

func (i sessionItem) FilterValue() string { return i.session.Title }

// SessionList is the Bubble Tea model of the session picker.
type SessionList struct {
	// List is the session list component. Exported for test access.
	List list.Model
	// TitleInput is the new session title prompt. Exported for test access.
	TitleInput textinput.Model

	opts     Options
	styles   Styles
	keys     SessionKeyMap
	logger   *slog.Logger
	creating bool
	err      error
}

// NewSessionList creates the session picker.
func NewSessionList(opts Options) SessionList {
	opts = opts.withDefaults()
	keys := DefaultSessionKeyMap()
	styles := NewStyles(opts.Theme)

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "DevTalk sessions"
	l.Styles.Title = styles.Header
	l.SetStatusBarItemName("session", "sessions")
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.New, keys.Refresh}
	}

	ti := textinput.New()
	ti.Placeholder = "Session title"
	ti.Prompt = "New session: "
	ti.CharLimit = 200

	return SessionList{
		List:       l,
		TitleInput: ti,
		opts:       opts,
		styles:     styles,
		keys:       keys,
		logger:     opts.Logger,
	}
}

// Creating reports whether the title prompt is open.
func (s SessionList) Creating() bool { return s.creating }

// Err returns the last service error, if any.
func (s SessionList) Err() error { return s.err }

// Init implements tea.Model.
func (s SessionList) Init() tea.Cmd {
	return s.load()
}

// Update implements tea.Model.
func (s SessionList) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.List.SetSize(msg.Width, max(msg.Height-statusHeight, 1))
		s.TitleInput.Width = max(msg.Width-len(s.TitleInput.Prompt)-1, 1)
		return s, nil

	case sessionsLoadedMsg:
		if msg.err != nil {
			s.logger.Warn("listing sessions", "error", msg.err)
			s.err = msg.err
			return s, nil
		}
		s.err = nil
		items := make([]list.Item, 0, len(msg.sessions))
		for _, session := range msg.sessions {
			items = append(items, sessionItem{session: session})
		}
		return s, s.List.SetItems(items)

	case sessionCreatedMsg:
		if msg.err != nil {
			s.logger.Warn("creating session", "error", msg.err)
			s.err = msg.err
			return s, nil
		}
		s.err = nil
		session := msg.session
		return s, func() tea.Msg { return openSessionMsg{session: session} }

	case tea.KeyMsg:
		if s.creating {
			return s.handleTitleKey(msg)
		}
		if s.List.SettingFilter() {
			break
		}
		switch {
		case key.Matches(msg, s.keys.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.keys.New):
			s.creating = true
			return s, s.TitleInput.Focus()
		case key.Matches(msg, s.keys.Refresh):
			return s, s.load()
		case key.Matches(msg, s.keys.Open):
			item, ok := s.List.SelectedItem().(sessionItem)
			if !ok {
				return s, nil
			}
			return s, func() tea.Msg { return openSessionMsg{session: item.session} }
		}
	}

	var cmd tea.Cmd
	s.List, cmd = s.List.Update(msg)
	return s, cmd
}

// View implements tea.Model.
func (s SessionList) View() string {
	var footer string
	switch {
	case s.creating:
		footer = s.TitleInput.View()
	case s.err != nil:
		footer = s.styles.Error.Render("Error: " + s.err.Error())
	}
	return s.List.View() + "\n" + footer
}

func (s SessionList) handleTitleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Cancel):
		s.creating = false
		s.TitleInput.Reset()
		s.TitleInput.Blur()
		return s, nil
	case key.Matches(msg, s.keys.Open):
		title := strings.TrimSpace(s.TitleInput.Value())
		if title == "" {
			return s, nil
		}
		s.creating = false
		s.TitleInput.Reset()
		s.TitleInput.Blur()
		return s, s.create(title)
	}
	var cmd tea.Cmd
	s.TitleInput, cmd = s.TitleInput.Update(msg)
	return s, cmd
}

func (s SessionList) load() tea.Cmd {
	sessions, timeout := s.opts.Sessions, s.opts.Config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		all, err := sessions.ListSessions(ctx)
		return sessionsLoadedMsg{sessions: all, err: err}
	}
}

func (s SessionList) create(title string) tea.Cmd {
	sessions, timeout := s.opts.Sessions, s.opts.Config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		session, err := sessions.CreateSession(ctx, title)
		return sessionCreatedMsg{session: session, err: err}
	}
}
