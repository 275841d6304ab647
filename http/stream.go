package http

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/devtalk/devtalk"
	devtalkjson "github.com/devtalk/devtalk/json"
)

// maxEventSize bounds a single SSE line.
const maxEventSize = 1 << 20

// Open starts a generation stream replying to req.ReplyTo and returns
// immediately. Events are delivered to h from a background goroutine.
func (c *Client) Open(req devtalk.GenerateRequest, h devtalk.StreamHandler) devtalk.StreamHandle {
	ctx, cancel := context.WithCancel(context.Background())
	s := &stream{
		handler: h,
		cancel:  cancel,
		idle:    c.idleTimeout,
		logger:  c.logger.With("session", req.SessionID, "reply_to", req.ReplyTo),
	}
	go s.run(ctx, c, req)
	return s
}

// stream is the handle of one generation stream.
//
// Callbacks run with mu held, so Close waits for an in-flight callback and
// nothing is delivered once it returns. Network resources are released
// exactly once by release.
type stream struct {
	handler devtalk.StreamHandler
	logger  *slog.Logger
	cancel  context.CancelFunc
	idle    time.Duration

	mu      sync.Mutex
	started bool
	closed  bool

	once     sync.Once
	resMu    sync.Mutex
	released bool
	body     io.Closer
	watchdog *time.Timer
}

// Interface compliance check.
var _ devtalk.StreamHandle = (*stream)(nil)

// Close stops the stream. It is idempotent and safe to call at any time.
// Handlers must not call Close from inside a callback.
func (s *stream) Close() error {
	s.mu.Lock()
	wasClosed := s.closed
	s.closed = true
	s.mu.Unlock()
	if !wasClosed {
		s.logger.Debug("stream closed by caller")
	}
	s.release()
	return nil
}

func (s *stream) run(ctx context.Context, c *Client, req devtalk.GenerateRequest) {
	defer s.release()

	if err := req.Validate(); err != nil {
		s.fail(fmt.Errorf("http: %w", err))
		return
	}

	u := c.baseURL + sessionPath(req.SessionID) + "/ai/stream?replyTo=" + url.QueryEscape(req.ReplyTo)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		s.fail(fmt.Errorf("http: %w", err))
		return
	}
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-cache")

	s.armWatchdog()
	s.logger.Debug("stream opening")
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		s.fail(fmt.Errorf("http: open stream: %w", err))
		return
	}
	if !s.setBody(resp.Body) {
		return
	}
	if resp.StatusCode != http.StatusOK {
		s.fail(parseHTTPError(resp))
		return
	}
	s.read(resp.Body)
}

// read parses server-sent events from body until a terminal event, EOF or a
// read error.
func (s *stream) read(body io.Reader) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	var (
		name    string
		data    strings.Builder
		hasData bool
	)
	dispatch := func() bool {
		if name == "" && !hasData {
			return false
		}
		terminal := s.dispatch(name, data.String())
		name, hasData = "", false
		data.Reset()
		return terminal
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if dispatch() {
				return
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			name = value
		case "data":
			if hasData {
				data.WriteByte('\n')
			}
			data.WriteString(value)
			hasData = true
		}
		// id, retry and unknown fields are ignored.
	}

	if err := scanner.Err(); err != nil {
		s.fail(fmt.Errorf("http: read stream: %w", err))
		return
	}
	if dispatch() {
		return
	}
	s.fail(fmt.Errorf("http: %w", devtalk.ErrUnexpectedEOF))
}

// dispatch delivers one parsed event and reports whether it was terminal.
func (s *stream) dispatch(name, data string) bool {
	s.touch()
	switch name {
	case "start":
		s.onStart()
	case "delta":
		s.onDelta(data)
	case "done":
		done, err := devtalkjson.UnmarshalDone([]byte(data))
		if err != nil {
			s.logger.Debug("ignoring done payload", "error", err)
		}
		s.onDone(done)
		return true
	case "error":
		s.fail(&devtalk.StreamError{Reason: strings.TrimSpace(data)})
		return true
	default:
		s.logger.Debug("ignoring event", "event", name)
	}
	return false
}

func (s *stream) onStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.started {
		return
	}
	s.started = true
	s.handler.OnStart()
}

func (s *stream) onDelta(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.started {
		return
	}
	s.handler.OnDelta(text)
}

func (s *stream) onDone(done devtalk.Done) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	// A done without start still reports start first.
	if !s.started {
		s.started = true
		s.handler.OnStart()
	}
	s.closed = true
	s.logger.Debug("stream done", "message_id", done.MessageID, "finish_reason", done.FinishReason)
	s.handler.OnDone(done)
}

func (s *stream) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if errors.Is(err, context.Canceled) {
		s.logger.Debug("stream cancelled", "error", err)
	} else {
		s.logger.Warn("stream failed", "error", err)
	}
	s.handler.OnError(err)
}

func (s *stream) armWatchdog() {
	if s.idle <= 0 {
		return
	}
	s.resMu.Lock()
	defer s.resMu.Unlock()
	if s.released {
		return
	}
	s.watchdog = time.AfterFunc(s.idle, func() {
		s.fail(fmt.Errorf("http: no event for %s: %w", s.idle, devtalk.ErrStreamIdle))
		s.release()
	})
}

// touch restarts the idle watchdog.
func (s *stream) touch() {
	s.resMu.Lock()
	defer s.resMu.Unlock()
	if s.watchdog != nil && !s.released {
		s.watchdog.Reset(s.idle)
	}
}

// setBody hands the response body to the stream. It reports false, after
// closing b, when the stream was already released.
func (s *stream) setBody(b io.Closer) bool {
	s.resMu.Lock()
	defer s.resMu.Unlock()
	if s.released {
		b.Close()
		return false
	}
	s.body = b
	return true
}

func (s *stream) release() {
	s.once.Do(func() {
		s.cancel()
		s.resMu.Lock()
		defer s.resMu.Unlock()
		s.released = true
		if s.watchdog != nil {
			s.watchdog.Stop()
		}
		if s.body != nil {
			s.body.Close()
		}
	})
}
