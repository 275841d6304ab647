package bubbletea

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/devtalk/devtalk"
	"github.com/devtalk/devtalk/goldmark"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	headerHeight = 1
	statusHeight = 1
	inputHeight  = 3
)

var _ tea.Model = Chat{}

// chatLoadedMsg carries the initial session and transcript.
type chatLoadedMsg struct {
	session  devtalk.Session
	messages []devtalk.Message
	err      error
}

// messageSentMsg reports the outcome of persisting a user message.
type messageSentMsg struct {
	content string
	message devtalk.Message
	err     error
}

// resolvedMsg reports the outcome of a resolve toggle.
type resolvedMsg struct {
	resolution devtalk.Resolution
	err        error
}

// backMsg asks the app to return to the session list.
type backMsg struct{}

// Chat is the Bubble Tea model of a single session: the transcript, the
// reply being revealed and the message input.
type Chat struct {
	// Input is the message editor. Exported for test access.
	Input textarea.Model
	// Viewport is the scrollable transcript. Exported for test access.
	Viewport viewport.Model

	sessionID string
	session   devtalk.Session
	messages  []devtalk.Message
	blocks    []MessageBlock
	live      *AIMessageBlock
	notice    MessageBlock

	opts     Options
	ctrl     *Controller
	renderer *goldmark.Renderer
	styles   Styles
	keys     KeyMap
	spinner  spinner.Model
	scroll   devtalk.ScrollState
	logger   *slog.Logger

	loading bool
	sending bool
	ready   bool
}

// NewChat creates the chat model of sessionID.
func NewChat(sessionID string, opts Options) Chat {
	opts = opts.withDefaults()
	keys := DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline = keys.Newline
	ta.Focus()

	styles := NewStyles(opts.Theme)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.AI

	return Chat{
		Input:     ta,
		sessionID: sessionID,
		session:   devtalk.Session{ID: sessionID},
		opts:      opts,
		ctrl:      NewController(opts.Generator, opts.Transcript, opts.Config, opts.Logger),
		renderer:  goldmark.New(opts.Theme),
		styles:    styles,
		keys:      keys,
		spinner:   sp,
		scroll:    devtalk.NewScrollState(opts.Config.ScrollThreshold),
		logger:    opts.Logger.With("session", sessionID),
		loading:   true,
	}
}

// Session returns the displayed session.
func (m Chat) Session() devtalk.Session { return m.session }

// Messages returns the displayed transcript, excluding the reply being
// revealed.
func (m Chat) Messages() []devtalk.Message { return m.messages }

// Stream returns the state of the current reply stream.
func (m Chat) Stream() devtalk.StreamState { return m.ctrl.State() }

// Pinned reports whether the transcript follows new content.
func (m Chat) Pinned() bool { return m.scroll.Pinned }

// Close cancels a live reply stream.
func (m Chat) Close() error {
	m.ctrl.Close()
	return nil
}

// Init implements tea.Model.
func (m Chat) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.load())
}

// Update implements tea.Model.
func (m Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, view, ok := m.ctrl.Update(msg); ok {
		m = m.applyEffects(view)
		m = m.syncLive()
		m = m.refresh()
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m.userScrolled(), cmd

	case chatLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.logger.Warn("loading session", "error", msg.err)
			m.notice = NewErrorBlock("Could not load session", msg.err, m.styles)
			return m.refresh(), nil
		}
		m.session = msg.session
		m = m.setMessages(msg.messages)
		m.scroll = m.scroll.Reset()
		return m.refresh(), nil

	case messageSentMsg:
		return m.handleSent(msg)

	case resolvedMsg:
		if msg.err != nil {
			m.logger.Warn("updating session status", "error", msg.err)
			m.notice = NewErrorBlock("Could not update session", msg.err, m.styles)
			return m.refresh(), nil
		}
		m.session.Status = msg.resolution.Status
		if !msg.resolution.LastUpdatedAt.IsZero() {
			m.session.LastUpdatedAt = msg.resolution.LastUpdatedAt
		}
		if msg.resolution.SystemMessage.Content != "" {
			m = m.setMessages(append(m.messages, msg.resolution.SystemMessage))
		}
		return m.refresh(), nil

	case spinner.TickMsg:
		if m.ctrl.State().Phase != devtalk.PhaseAwaitingFirstByte {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Chat) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Chat) handleWindowSize(msg tea.WindowSizeMsg) Chat {
	vpHeight := max(msg.Height-headerHeight-statusHeight-inputHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.Viewport.KeyMap = m.keys.viewportKeyMap()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Input.SetWidth(msg.Width)
	return m.refresh()
}

func (m Chat) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Stop) && m.ctrl.State().Phase.Live():
		cmd, view := m.ctrl.Cancel()
		m = m.applyEffects(view)
		m = m.syncLive()
		return m.refresh(), cmd

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return backMsg{} }

	case key.Matches(msg, m.keys.Resolve):
		return m, m.toggleResolved()

	case key.Matches(msg, m.keys.JumpToBottom):
		return m.jumpToBottom(), nil

	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown, m.keys.HalfPageUp, m.keys.HalfPageDown):
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m.userScrolled(), cmd

	case key.Matches(msg, m.keys.Send):
		return m.submit()
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Chat) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.Input.Value())
	if text == "" || m.loading || m.sending || m.ctrl.State().Phase.Live() {
		return m, nil
	}
	m.sending = true
	m.notice = nil
	m.Input.Reset()

	transcript, id, timeout := m.opts.Transcript, m.sessionID, m.opts.Config.RequestTimeout
	return m.refresh(), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		msg, err := transcript.CreateMessage(ctx, id, text)
		return messageSentMsg{content: text, message: msg, err: err}
	}
}

func (m Chat) handleSent(msg messageSentMsg) (tea.Model, tea.Cmd) {
	m.sending = false
	if msg.err != nil {
		m.logger.Warn("sending message", "error", msg.err)
		m.notice = NewErrorBlock("Message not sent", msg.err, m.styles)
		if m.Input.Value() == "" {
			m.Input.SetValue(msg.content)
		}
		return m.refresh(), nil
	}

	m = m.setMessages(append(m.messages, msg.message))
	cmd, view := m.ctrl.Open(m.sessionID, msg.message.ID)
	m = m.applyEffects(view)
	m = m.syncLive()
	m = m.refresh().jumpToBottom()
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m Chat) toggleResolved() tea.Cmd {
	if m.loading {
		return nil
	}
	sessions, id, want, timeout := m.opts.Sessions, m.sessionID, !m.session.Resolved(), m.opts.Config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := sessions.SetResolved(ctx, id, want)
		return resolvedMsg{resolution: res, err: err}
	}
}

// load fetches the session and its transcript concurrently.
func (m Chat) load() tea.Cmd {
	sessions, transcript, id, timeout := m.opts.Sessions, m.opts.Transcript, m.sessionID, m.opts.Config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var msg chatLoadedMsg
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			s, err := sessions.GetSession(ctx, id)
			if err != nil {
				return fmt.Errorf("get session: %w", err)
			}
			msg.session = s
			return nil
		})
		g.Go(func() error {
			messages, err := transcript.ListMessages(ctx, id)
			if err != nil {
				return fmt.Errorf("list messages: %w", err)
			}
			msg.messages = messages
			return nil
		})
		msg.err = g.Wait()
		return msg
	}
}

// applyEffects applies the display effects handed back by the controller.
func (m Chat) applyEffects(effects []devtalk.Effect) Chat {
	for _, e := range effects {
		switch e := e.(type) {
		case devtalk.EffectReplaceTranscript:
			merged, dropped := devtalk.Reconcile(m.messages, e.Messages)
			if dropped > 0 {
				m.logger.Debug("reconciliation replaced local messages", "count", dropped)
			}
			m = m.setMessages(merged)
		case devtalk.EffectSynthesizeReply:
			id := e.MessageID
			if id == "" {
				id = "local-" + uuid.NewString()
			}
			m = m.setMessages(append(m.messages, devtalk.Message{
				ID:        id,
				Role:      devtalk.RoleAI,
				Status:    devtalk.StatusSuccess,
				Content:   e.Content,
				CreatedAt: time.Now(),
				Local:     true,
			}))
		case devtalk.EffectNotifyFailure:
			m.notice = NewErrorBlock("AI reply failed", e.Err, m.styles)
		}
	}
	return m
}

// syncLive mirrors the stream buffer into the live reply block.
func (m Chat) syncLive() Chat {
	st := m.ctrl.State()
	switch st.Phase {
	case devtalk.PhaseStreaming, devtalk.PhaseDraining, devtalk.PhaseFinalizing:
		if m.live == nil {
			m.live = NewAIMessageBlock(m.renderer, m.styles)
		}
		m.live.Sync(st.Buffer)
		m.live.SetCursor(st.Phase != devtalk.PhaseFinalizing)
	default:
		m.live = nil
	}
	return m
}

func (m Chat) setMessages(messages []devtalk.Message) Chat {
	m.messages = messages
	m.blocks = make([]MessageBlock, 0, len(messages))
	for _, msg := range messages {
		m.blocks = append(m.blocks, blockFor(msg, m.renderer, m.styles))
	}
	return m
}

func (m Chat) renderContent() string {
	blocks := m.blocks
	if m.live != nil {
		blocks = append(blocks[:len(blocks):len(blocks)], m.live)
	}
	if m.notice != nil {
		blocks = append(blocks[:len(blocks):len(blocks)], m.notice)
	}
	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteString(blockSeparator(blocks[i-1], block))
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

func (m Chat) header() string {
	if m.loading {
		return m.styles.Header.Render("Loading...")
	}
	title := m.session.Title
	if title == "" {
		title = "Untitled"
	}
	status := m.styles.Accent.Render(string(devtalk.SessionActive))
	if m.session.Resolved() {
		status = m.styles.Success.Render(string(devtalk.SessionResolved))
	}
	return m.styles.Header.Render(title) + " " + m.styles.Muted.Render("#"+m.session.ID) + " " + status
}

func (m Chat) statusLine() string {
	var status string
	switch phase := m.ctrl.State().Phase; {
	case m.sending:
		status = m.styles.Muted.Render("Sending...")
	case phase == devtalk.PhaseAwaitingFirstByte:
		status = m.spinner.View() + " " + m.styles.Muted.Render("AI is generating a reply… esc to stop")
	case phase == devtalk.PhaseStreaming || phase == devtalk.PhaseDraining:
		status = m.styles.Muted.Render("Replying... esc to stop")
	case phase == devtalk.PhaseFinalizing:
		status = m.styles.Muted.Render("Saving reply...")
	default:
		status = m.styles.Muted.Render("enter send · alt+enter newline · ctrl+r resolve · esc sessions · ctrl+c quit")
	}
	if !m.scroll.Pinned {
		status = m.styles.Accent.Render("↓ ctrl+b jump to bottom") + "  " + status
	}
	return status
}
