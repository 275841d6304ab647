package devtalk_test

import (
	"testing"

	"github.com/devtalk/devtalk"
	"github.com/stretchr/testify/assert"
)

func TestMessage_Failed(t *testing.T) {
	t.Parallel()

	assert.True(t, devtalk.Message{Role: devtalk.RoleAI, Status: devtalk.StatusFailed}.Failed())
	assert.False(t, devtalk.Message{Role: devtalk.RoleAI, Status: devtalk.StatusSuccess}.Failed())
	assert.False(t, devtalk.Message{Role: devtalk.RoleUser}.Failed())
}

func TestGenerateRequest_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, devtalk.GenerateRequest{SessionID: "s1", ReplyTo: "m1"}.Validate())
	assert.ErrorIs(t, devtalk.GenerateRequest{ReplyTo: "m1"}.Validate(), devtalk.ErrValidation)
	assert.ErrorIs(t, devtalk.GenerateRequest{SessionID: "s1"}.Validate(), devtalk.ErrValidation)
}

func TestStreamError(t *testing.T) {
	t.Parallel()

	assert.EqualError(t, &devtalk.StreamError{Reason: "llm_stream_failed"}, "generator error: llm_stream_failed")
	assert.EqualError(t, &devtalk.StreamError{}, "generator error")
}
