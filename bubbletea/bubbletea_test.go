package bubbletea_test

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/devtalk/devtalk"
	bt "github.com/devtalk/devtalk/bubbletea"
	"github.com/devtalk/devtalk/mock"
	"github.com/stretchr/testify/require"
)

// testConfig paces reveals fast enough for tests.
func testConfig() devtalk.Config {
	cfg := devtalk.DefaultConfig()
	cfg.ChunkSize = 3
	cfg.TickInterval = time.Millisecond
	cfg.RequestTimeout = time.Second
	return cfg
}

// fakeStream records opened streams and keeps the latest handler so tests
// can drive it.
type fakeStream struct {
	mu       sync.Mutex
	handler  devtalk.StreamHandler
	requests []devtalk.GenerateRequest
	closed   int
}

func (s *fakeStream) generator() *mock.Generator {
	return &mock.Generator{
		OpenFn: func(req devtalk.GenerateRequest, h devtalk.StreamHandler) devtalk.StreamHandle {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.handler = h
			s.requests = append(s.requests, req)
			return &mock.StreamHandle{CloseFn: func() error {
				s.mu.Lock()
				defer s.mu.Unlock()
				s.closed++
				return nil
			}}
		},
	}
}

func (s *fakeStream) Handler() devtalk.StreamHandler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler
}

func (s *fakeStream) Requests() []devtalk.GenerateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]devtalk.GenerateRequest(nil), s.requests...)
}

func (s *fakeStream) Closed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// fixedTranscript serves messages from ListMessages.
func fixedTranscript(messages []devtalk.Message, err error) *mock.TranscriptService {
	return &mock.TranscriptService{
		ListMessagesFn: func(context.Context, string) ([]devtalk.Message, error) {
			return messages, err
		},
		CreateMessageFn: func(_ context.Context, _ string, content string) (devtalk.Message, error) {
			return devtalk.Message{ID: "u1", Role: devtalk.RoleUser, Status: devtalk.StatusSuccess, Content: content}, nil
		},
	}
}

// execCmd runs cmd and returns the messages it produces, expanding batches.
// Commands still blocked after a short wait, such as a stream listener with
// nothing to deliver, are abandoned.
func execCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(200 * time.Millisecond):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, execCmd(t, c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// step feeds a controller message and requires the controller to own it.
func step(t *testing.T, c *bt.Controller, msg tea.Msg) (tea.Cmd, []devtalk.Effect) {
	t.Helper()
	cmd, view, ok := c.Update(msg)
	require.True(t, ok)
	return cmd, view
}

// drain ticks c until its queue is empty and returns the last command and
// display effects.
func drain(t *testing.T, c *bt.Controller) (tea.Cmd, []devtalk.Effect) {
	t.Helper()
	var cmd tea.Cmd
	var view []devtalk.Effect
	for i := 0; bt.TickArmed(c); i++ {
		require.Less(t, i, 100, "scheduler never settled")
		cmd, view = step(t, c, bt.Tick(c))
	}
	return cmd, view
}

// initChat creates a chat of session s1 sized 80x24 and loaded with
// messages.
func initChat(t *testing.T, opts bt.Options, messages ...devtalk.Message) bt.Chat {
	t.Helper()
	m := bt.NewChat("s1", opts)
	m = updateChat(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return updateChat(t, m, bt.Loaded(devtalk.Session{ID: "s1", Title: "Flaky test", Status: devtalk.SessionActive}, messages, nil))
}

// updateChat sends a message and returns the updated Chat.
func updateChat(t *testing.T, m bt.Chat, msg tea.Msg) bt.Chat {
	t.Helper()
	m, _ = updateChatCmd(t, m, msg)
	return m
}

// updateChatCmd sends a message and returns the updated Chat and command.
func updateChatCmd(t *testing.T, m bt.Chat, msg tea.Msg) (bt.Chat, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(bt.Chat)
	require.True(t, ok)
	return model, cmd
}

func hasEffect[E devtalk.Effect](effects []devtalk.Effect) (E, bool) {
	for _, e := range effects {
		if v, ok := e.(E); ok {
			return v, true
		}
	}
	var zero E
	return zero, false
}
