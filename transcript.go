package devtalk

import "context"

// TranscriptService reads and appends session messages.
type TranscriptService interface {
	// ListMessages returns the session transcript in server order.
	ListMessages(ctx context.Context, sessionID string) ([]Message, error)
	// CreateMessage persists a user message and returns it with the
	// server-assigned id, timestamp and status.
	CreateMessage(ctx context.Context, sessionID, content string) (Message, error)
}

// SessionService manages sessions.
type SessionService interface {
	ListSessions(ctx context.Context) ([]Session, error)
	GetSession(ctx context.Context, id string) (Session, error)
	CreateSession(ctx context.Context, title string) (Session, error)
	SetResolved(ctx context.Context, id string, resolved bool) (Resolution, error)
}
