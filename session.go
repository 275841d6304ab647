package devtalk

import "time"

// SessionStatus tracks whether the problem discussed in a session is solved.
type SessionStatus string

const (
	SessionActive   SessionStatus = "ACTIVE"
	SessionResolved SessionStatus = "RESOLVED"
)

// Session represents a conversation session on the transcript service.
type Session struct {
	ID            string
	Title         string
	Status        SessionStatus
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

// Resolved reports whether the session is marked resolved.
func (s Session) Resolved() bool { return s.Status == SessionResolved }

// Resolution is the result of toggling a session's resolved status. The
// service records the change as a system message in the transcript.
type Resolution struct {
	Status        SessionStatus
	LastUpdatedAt time.Time
	SystemMessage Message
}
