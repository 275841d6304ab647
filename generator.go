package devtalk

import "fmt"

// FinishReason tells why the generator stopped producing output.
type FinishReason string

const (
	FinishStop      FinishReason = "STOP"
	FinishMaxTokens FinishReason = "MAX_TOKENS"
	FinishSafety    FinishReason = "SAFETY"
	FinishOther     FinishReason = "OTHER"
	FinishUnknown   FinishReason = "UNKNOWN"
)

// Done is the payload of the terminal done event.
type Done struct {
	// MessageID is the id the server assigned to the persisted reply.
	// Empty when the server did not report one.
	MessageID    string
	FinishReason FinishReason
}

// GenerateRequest asks the generator to reply to a persisted user message.
type GenerateRequest struct {
	SessionID string
	ReplyTo   string
}

// Validate checks that the request names both a session and a message.
func (r GenerateRequest) Validate() error {
	if r.SessionID == "" {
		return fmt.Errorf("session id must not be empty: %w", ErrValidation)
	}
	if r.ReplyTo == "" {
		return fmt.Errorf("reply-to message id must not be empty: %w", ErrValidation)
	}
	return nil
}

// StreamHandler receives the events of a single generation stream.
//
// Exactly one OnStart precedes zero or more OnDelta calls in arrival order,
// followed by exactly one of OnDone or OnError. A failure before the stream
// starts produces OnError alone. Handlers are called from the stream's own
// goroutine and must not block.
type StreamHandler interface {
	OnStart()
	OnDelta(text string)
	OnDone(done Done)
	OnError(err error)
}

// StreamHandle owns the network resource of an open stream.
//
// Close is idempotent and safe to call at any point, including before the
// stream produced its first event. Once Close returns the handler receives no
// further callbacks.
type StreamHandle interface {
	Close() error
}

// Generator opens server-push generation streams.
type Generator interface {
	// Open starts streaming the reply for req and returns immediately.
	// All failures, including failing to connect, are reported through
	// h.OnError.
	Open(req GenerateRequest, h StreamHandler) StreamHandle
}

// EventFunc adapts a function to the StreamHandler interface by converting
// each callback into its Event value.
type EventFunc func(Event)

func (f EventFunc) OnStart()            { f(EventStart{}) }
func (f EventFunc) OnDelta(text string) { f(EventDelta{Text: text}) }
func (f EventFunc) OnDone(done Done)    { f(EventDone{Done: done}) }
func (f EventFunc) OnError(err error)   { f(EventError{Err: err}) }

// Interface compliance check.
var _ StreamHandler = EventFunc(nil)
