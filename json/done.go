package json

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/devtalk/devtalk"
)

type doneDTO struct {
	MessageID    string `json:"messageId"`
	FinishReason string `json:"finishReason"`
}

// UnmarshalDone decodes the payload of a done event. An empty payload is
// valid and yields a Done with an unknown finish reason.
func UnmarshalDone(data []byte) (devtalk.Done, error) {
	done := devtalk.Done{FinishReason: devtalk.FinishUnknown}
	if strings.TrimSpace(string(data)) == "" {
		return done, nil
	}
	var dto doneDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return done, fmt.Errorf("unmarshal done: %w", err)
	}
	done.MessageID = dto.MessageID
	if dto.FinishReason != "" {
		done.FinishReason = devtalk.FinishReason(dto.FinishReason)
	}
	return done, nil
}
