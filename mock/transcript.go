// Package mock provides test doubles for devtalk interfaces using function fields.
package mock

import (
	"context"

	"github.com/devtalk/devtalk"
)

// Interface compliance checks.
var (
	_ devtalk.TranscriptService = (*TranscriptService)(nil)
	_ devtalk.SessionService    = (*SessionService)(nil)
)

// TranscriptService is a test double for devtalk.TranscriptService.
// Set the function fields for the methods you need.
type TranscriptService struct {
	ListMessagesFn  func(ctx context.Context, sessionID string) ([]devtalk.Message, error)
	CreateMessageFn func(ctx context.Context, sessionID, content string) (devtalk.Message, error)
}

// ListMessages delegates to ListMessagesFn.
func (s *TranscriptService) ListMessages(ctx context.Context, sessionID string) ([]devtalk.Message, error) {
	return s.ListMessagesFn(ctx, sessionID)
}

// CreateMessage delegates to CreateMessageFn.
func (s *TranscriptService) CreateMessage(ctx context.Context, sessionID, content string) (devtalk.Message, error) {
	return s.CreateMessageFn(ctx, sessionID, content)
}

// SessionService is a test double for devtalk.SessionService.
type SessionService struct {
	ListSessionsFn  func(ctx context.Context) ([]devtalk.Session, error)
	GetSessionFn    func(ctx context.Context, id string) (devtalk.Session, error)
	CreateSessionFn func(ctx context.Context, title string) (devtalk.Session, error)
	SetResolvedFn   func(ctx context.Context, id string, resolved bool) (devtalk.Resolution, error)
}

// ListSessions delegates to ListSessionsFn.
func (s *SessionService) ListSessions(ctx context.Context) ([]devtalk.Session, error) {
	return s.ListSessionsFn(ctx)
}

// GetSession delegates to GetSessionFn.
func (s *SessionService) GetSession(ctx context.Context, id string) (devtalk.Session, error) {
	return s.GetSessionFn(ctx, id)
}

// CreateSession delegates to CreateSessionFn.
func (s *SessionService) CreateSession(ctx context.Context, title string) (devtalk.Session, error) {
	return s.CreateSessionFn(ctx, title)
}

// SetResolved delegates to SetResolvedFn.
func (s *SessionService) SetResolved(ctx context.Context, id string, resolved bool) (devtalk.Resolution, error) {
	return s.SetResolvedFn(ctx, id, resolved)
}
