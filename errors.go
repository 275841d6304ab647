package devtalk

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a config value or request failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates the transcript service has no such session.
	ErrNotFound = errors.New("not found")

	// ErrStreamIdle indicates the stream produced no event within the
	// configured idle timeout.
	ErrStreamIdle = errors.New("stream idle timeout")

	// ErrUnexpectedEOF indicates the stream ended without a done event.
	ErrUnexpectedEOF = errors.New("unexpected end of stream")
)

// StreamError is an error reported by the generator through a named
// "error" event. Reason is the server's reason code, e.g. "llm_stream_failed".
type StreamError struct {
	Reason string
}

func (e *StreamError) Error() string {
	if e.Reason == "" {
		return "generator error"
	}
	return fmt.Sprintf("generator error: %s", e.Reason)
}
