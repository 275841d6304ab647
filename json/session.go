package json

import (
	"encoding/json"
	"fmt"

	"github.com/devtalk/devtalk"
)

// sessionDTO is the JSON representation of a session and of a session
// summary in the list endpoint.
type sessionDTO struct {
	SessionID     string    `json:"sessionId"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	CreatedAt     timestamp `json:"createdAt"`
	LastUpdatedAt timestamp `json:"lastUpdatedAt"`
}

type createSessionDTO struct {
	Title string `json:"title"`
}

// resolveDTO is the session part of a resolve toggle response. The service
// spells the id field with a capital S.
type resolveDTO struct {
	SessionID     string    `json:"SessionId"`
	Status        string    `json:"status"`
	Resolved      bool      `json:"resolved"`
	LastUpdatedAt timestamp `json:"lastUpdatedAt"`
}

type resolveEnvelope struct {
	Resolve       *resolveDTO `json:"resolve"`
	SystemMessage *messageDTO `json:"systemMessage"`
}

// UnmarshalSessions decodes the session list.
func UnmarshalSessions(data []byte) ([]devtalk.Session, error) {
	var dtos []sessionDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("unmarshal sessions: %w", err)
	}
	sessions := make([]devtalk.Session, len(dtos))
	for i, dto := range dtos {
		sessions[i] = unmarshalSession(dto)
	}
	return sessions, nil
}

// UnmarshalSession decodes a single session.
func UnmarshalSession(data []byte) (devtalk.Session, error) {
	var dto sessionDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return devtalk.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	if dto.SessionID == "" {
		return devtalk.Session{}, fmt.Errorf("unmarshal session: missing sessionId")
	}
	return unmarshalSession(dto), nil
}

// MarshalCreateSession encodes the body of a create-session request.
func MarshalCreateSession(title string) ([]byte, error) {
	return json.Marshal(createSessionDTO{Title: title})
}

// UnmarshalResolution decodes the response of a resolve toggle.
func UnmarshalResolution(data []byte) (devtalk.Resolution, error) {
	var env resolveEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return devtalk.Resolution{}, fmt.Errorf("unmarshal resolution: %w", err)
	}
	if env.Resolve == nil {
		return devtalk.Resolution{}, fmt.Errorf("unmarshal resolution: missing resolve")
	}
	res := devtalk.Resolution{
		Status:        devtalk.SessionStatus(env.Resolve.Status),
		LastUpdatedAt: env.Resolve.LastUpdatedAt.Time,
	}
	if res.Status == "" {
		res.Status = devtalk.SessionActive
		if env.Resolve.Resolved {
			res.Status = devtalk.SessionResolved
		}
	}
	if env.SystemMessage != nil {
		msg, err := unmarshalMessage(*env.SystemMessage)
		if err != nil {
			return devtalk.Resolution{}, fmt.Errorf("system message: %w", err)
		}
		res.SystemMessage = msg
	}
	return res, nil
}

func unmarshalSession(dto sessionDTO) devtalk.Session {
	status := devtalk.SessionStatus(dto.Status)
	if status == "" {
		status = devtalk.SessionActive
	}
	return devtalk.Session{
		ID:            dto.SessionID,
		Title:         dto.Title,
		Status:        status,
		CreatedAt:     dto.CreatedAt.Time,
		LastUpdatedAt: dto.LastUpdatedAt.Time,
	}
}
