// Package http implements the devtalk services against the DevTalk
// transcript service REST and server-sent events API.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/devtalk/devtalk"
	devtalkjson "github.com/devtalk/devtalk/json"
)

// maxResponseSize bounds request/response bodies read into memory.
const maxResponseSize = 8 << 20

// Interface compliance checks.
var (
	_ devtalk.TranscriptService = (*Client)(nil)
	_ devtalk.SessionService    = (*Client)(nil)
	_ devtalk.Generator         = (*Client)(nil)
)

// Client talks to the transcript service.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	logger         *slog.Logger
	idleTimeout    time.Duration
	requestTimeout time.Duration
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Its Timeout, if any, also bounds
// generation streams, so prefer WithRequestTimeout for request/response calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger. The default discards all records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithIdleTimeout sets how long a generation stream may stay silent before
// it fails with [devtalk.ErrStreamIdle]. Zero disables the watchdog.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *Client) { c.idleTimeout = d }
}

// WithRequestTimeout bounds each request/response call. Zero means no bound
// beyond the caller's context.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) { c.requestTimeout = d }
}

// New creates a [Client] for the API rooted at baseURL,
// e.g. "http://localhost:8080/api/devtalk".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     http.DefaultClient,
		logger:         slog.New(slog.DiscardHandler),
		idleTimeout:    devtalk.DefaultIdleTimeout,
		requestTimeout: devtalk.DefaultRequestTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ListSessions returns all sessions, most recently updated first.
func (c *Client) ListSessions(ctx context.Context) ([]devtalk.Session, error) {
	data, err := c.do(ctx, http.MethodGet, "/sessions", nil)
	if err != nil {
		return nil, err
	}
	sessions, err := devtalkjson.UnmarshalSessions(data)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	slices.SortStableFunc(sessions, func(a, b devtalk.Session) int {
		return b.LastUpdatedAt.Compare(a.LastUpdatedAt)
	})
	return sessions, nil
}

// GetSession returns a single session. A missing session yields an error
// wrapping [devtalk.ErrNotFound].
func (c *Client) GetSession(ctx context.Context, id string) (devtalk.Session, error) {
	data, err := c.do(ctx, http.MethodGet, sessionPath(id), nil)
	if err != nil {
		return devtalk.Session{}, err
	}
	s, err := devtalkjson.UnmarshalSession(data)
	if err != nil {
		return devtalk.Session{}, fmt.Errorf("http: %w", err)
	}
	return s, nil
}

// CreateSession creates a session with the given title.
func (c *Client) CreateSession(ctx context.Context, title string) (devtalk.Session, error) {
	if strings.TrimSpace(title) == "" {
		return devtalk.Session{}, fmt.Errorf("http: session title must not be empty: %w", devtalk.ErrValidation)
	}
	body, err := devtalkjson.MarshalCreateSession(title)
	if err != nil {
		return devtalk.Session{}, fmt.Errorf("http: %w", err)
	}
	data, err := c.do(ctx, http.MethodPost, "/sessions", body)
	if err != nil {
		return devtalk.Session{}, err
	}
	s, err := devtalkjson.UnmarshalSession(data)
	if err != nil {
		return devtalk.Session{}, fmt.Errorf("http: %w", err)
	}
	return s, nil
}

// SetResolved marks a session resolved or active again.
func (c *Client) SetResolved(ctx context.Context, id string, resolved bool) (devtalk.Resolution, error) {
	action := "/unresolved"
	if resolved {
		action = "/resolve"
	}
	data, err := c.do(ctx, http.MethodPost, sessionPath(id)+action, nil)
	if err != nil {
		return devtalk.Resolution{}, err
	}
	res, err := devtalkjson.UnmarshalResolution(data)
	if err != nil {
		return devtalk.Resolution{}, fmt.Errorf("http: %w", err)
	}
	return res, nil
}

// ListMessages returns the session transcript in server order.
func (c *Client) ListMessages(ctx context.Context, sessionID string) ([]devtalk.Message, error) {
	data, err := c.do(ctx, http.MethodGet, sessionPath(sessionID)+"/messages", nil)
	if err != nil {
		return nil, err
	}
	msgs, err := devtalkjson.UnmarshalMessages(data)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return msgs, nil
}

// CreateMessage persists a user message.
func (c *Client) CreateMessage(ctx context.Context, sessionID, content string) (devtalk.Message, error) {
	if strings.TrimSpace(content) == "" {
		return devtalk.Message{}, fmt.Errorf("http: message must not be empty: %w", devtalk.ErrValidation)
	}
	body, err := devtalkjson.MarshalSendMessage(content, devtalk.MarkerNone)
	if err != nil {
		return devtalk.Message{}, fmt.Errorf("http: %w", err)
	}
	data, err := c.do(ctx, http.MethodPost, sessionPath(sessionID)+"/messages", body)
	if err != nil {
		return devtalk.Message{}, err
	}
	msg, err := devtalkjson.UnmarshalMessage(data)
	if err != nil {
		return devtalk.Message{}, fmt.Errorf("http: %w", err)
	}
	return msg, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseHTTPError(resp)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("http: %s %s: read body: %w", method, path, err)
	}
	return data, nil
}

// apiError is the error body of the service's framework.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("http: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	detail := strings.TrimSpace(string(body))
	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil {
		if apiErr.Message != "" {
			detail = apiErr.Message
		} else if apiErr.Error != "" {
			detail = apiErr.Error
		}
	}
	if resp.StatusCode == http.StatusNotFound {
		if detail == "" {
			return fmt.Errorf("http: HTTP %d: %w", resp.StatusCode, devtalk.ErrNotFound)
		}
		return fmt.Errorf("http: HTTP %d: %s: %w", resp.StatusCode, detail, devtalk.ErrNotFound)
	}
	if detail == "" {
		return fmt.Errorf("http: HTTP %d", resp.StatusCode)
	}
	return fmt.Errorf("http: HTTP %d: %s", resp.StatusCode, detail)
}

func sessionPath(id string) string {
	return "/sessions/" + url.PathEscape(id)
}
