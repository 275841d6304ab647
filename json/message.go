package json

import (
	"encoding/json"
	"fmt"

	"github.com/devtalk/devtalk"
)

// messageDTO is the JSON representation of a transcript message.
type messageDTO struct {
	MessageID string    `json:"messageId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Markers   *string   `json:"markers"`
	Status    string    `json:"status"`
	CreatedAt timestamp `json:"createdAt"`
}

// sendMessageDTO is the request body for persisting a user message.
type sendMessageDTO struct {
	Content string  `json:"content"`
	Marker  *string `json:"marker"`
}

// UnmarshalMessages decodes a transcript, preserving server order.
func UnmarshalMessages(data []byte) ([]devtalk.Message, error) {
	var dtos []messageDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("unmarshal messages: %w", err)
	}
	msgs := make([]devtalk.Message, len(dtos))
	for i, dto := range dtos {
		msg, err := unmarshalMessage(dto)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		msgs[i] = msg
	}
	return msgs, nil
}

// UnmarshalMessage decodes a single message.
func UnmarshalMessage(data []byte) (devtalk.Message, error) {
	var dto messageDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return devtalk.Message{}, fmt.Errorf("unmarshal message: %w", err)
	}
	return unmarshalMessage(dto)
}

// MarshalSendMessage encodes the body of a create-message request.
func MarshalSendMessage(content string, marker devtalk.Marker) ([]byte, error) {
	dto := sendMessageDTO{Content: content}
	if marker != devtalk.MarkerNone {
		m := string(marker)
		dto.Marker = &m
	}
	return json.Marshal(dto)
}

func unmarshalMessage(dto messageDTO) (devtalk.Message, error) {
	role := devtalk.Role(dto.Role)
	switch role {
	case devtalk.RoleUser, devtalk.RoleAI, devtalk.RoleSystem:
	default:
		return devtalk.Message{}, fmt.Errorf("unknown role: %q", dto.Role)
	}
	status := devtalk.Status(dto.Status)
	if status == "" {
		status = devtalk.StatusSuccess
	}
	msg := devtalk.Message{
		ID:        dto.MessageID,
		Role:      role,
		Status:    status,
		Content:   dto.Content,
		CreatedAt: dto.CreatedAt.Time,
	}
	if dto.Markers != nil {
		msg.Marker = devtalk.Marker(*dto.Markers)
	}
	return msg, nil
}
