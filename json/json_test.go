package json_test

import (
	"testing"
	"time"

	"github.com/devtalk/devtalk"
	devtalkjson "github.com/devtalk/devtalk/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalMessages(t *testing.T) {
	t.Parallel()

	data := []byte(`[
		{"messageId":"m1","role":"USER","content":"why does it panic?","markers":"QUESTION","status":"SUCCESS","createdAt":"2026-02-18T12:00:00"},
		{"messageId":"m2","role":"AI","content":"nil map","markers":null,"status":"SUCCESS","createdAt":"2026-02-18T12:00:01.123456"},
		{"messageId":"m3","role":"AI","content":"","status":"FAILED","createdAt":"2026-02-18T12:00:02Z"},
		{"messageId":"m4","role":"SYSTEM","content":"resolved","createdAt":null}
	]`)

	msgs, err := devtalkjson.UnmarshalMessages(data)
	require.NoError(t, err)
	require.Len(t, msgs, 4)

	assert.Equal(t, devtalk.Message{
		ID:        "m1",
		Role:      devtalk.RoleUser,
		Status:    devtalk.StatusSuccess,
		Content:   "why does it panic?",
		Marker:    devtalk.MarkerQuestion,
		CreatedAt: time.Date(2026, 2, 18, 12, 0, 0, 0, time.Local),
	}, msgs[0])

	assert.Equal(t, devtalk.MarkerNone, msgs[1].Marker)
	assert.True(t, time.Date(2026, 2, 18, 12, 0, 1, 123456000, time.Local).Equal(msgs[1].CreatedAt))

	assert.True(t, msgs[2].Failed())
	assert.True(t, time.Date(2026, 2, 18, 12, 0, 2, 0, time.UTC).Equal(msgs[2].CreatedAt))

	assert.Equal(t, devtalk.RoleSystem, msgs[3].Role)
	assert.Equal(t, devtalk.StatusSuccess, msgs[3].Status)
	assert.True(t, msgs[3].CreatedAt.IsZero())
}

func TestUnmarshalMessages_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `nope`},
		{name: "not an array", data: `{"messageId":"m1"}`},
		{name: "unknown role", data: `[{"messageId":"m1","role":"BOT"}]`},
		{name: "bad timestamp", data: `[{"messageId":"m1","role":"USER","createdAt":"yesterday"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := devtalkjson.UnmarshalMessages([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestUnmarshalMessage(t *testing.T) {
	t.Parallel()

	msg, err := devtalkjson.UnmarshalMessage([]byte(`{"messageId":"m9","role":"USER","content":"hi","status":"SUCCESS"}`))
	require.NoError(t, err)
	assert.Equal(t, "m9", msg.ID)
	assert.Equal(t, "hi", msg.Content)
}

func TestMarshalSendMessage(t *testing.T) {
	t.Parallel()

	data, err := devtalkjson.MarshalSendMessage("hello", devtalk.MarkerNone)
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":"hello","marker":null}`, string(data))

	data, err = devtalkjson.MarshalSendMessage("tried X", devtalk.MarkerAttempt)
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":"tried X","marker":"ATTEMPT"}`, string(data))
}

func TestUnmarshalSessions(t *testing.T) {
	t.Parallel()

	data := []byte(`[
		{"sessionId":"s1","title":"Login bug","status":"ACTIVE","createdAt":"2026-02-18T09:00:00","lastUpdatedAt":"2026-02-18T10:00:00"},
		{"sessionId":"s2","title":"Flaky test","status":"RESOLVED","createdAt":"2026-02-17T09:00:00","lastUpdatedAt":"2026-02-17T09:30:00"}
	]`)

	sessions, err := devtalkjson.UnmarshalSessions(data)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, devtalk.Session{
		ID:            "s1",
		Title:         "Login bug",
		Status:        devtalk.SessionActive,
		CreatedAt:     time.Date(2026, 2, 18, 9, 0, 0, 0, time.Local),
		LastUpdatedAt: time.Date(2026, 2, 18, 10, 0, 0, 0, time.Local),
	}, sessions[0])
	assert.True(t, sessions[1].Resolved())
}

func TestUnmarshalSession(t *testing.T) {
	t.Parallel()

	s, err := devtalkjson.UnmarshalSession([]byte(`{"sessionId":"s1","title":"t"}`))
	require.NoError(t, err)
	assert.Equal(t, devtalk.SessionActive, s.Status)

	_, err = devtalkjson.UnmarshalSession([]byte(`{"title":"t"}`))
	assert.Error(t, err)
}

func TestMarshalCreateSession(t *testing.T) {
	t.Parallel()

	data, err := devtalkjson.MarshalCreateSession("Deadlock in worker pool")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Deadlock in worker pool"}`, string(data))
}

func TestUnmarshalResolution(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"resolve":{"SessionId":"s1","status":"RESOLVED","resolved":true,"lastUpdatedAt":"2026-02-18T10:00:00"},
		"systemMessage":{"messageId":"m5","role":"SYSTEM","content":"Session marked as resolved","status":"SUCCESS","createdAt":"2026-02-18T10:00:00"}
	}`)

	res, err := devtalkjson.UnmarshalResolution(data)
	require.NoError(t, err)
	assert.Equal(t, devtalk.SessionResolved, res.Status)
	assert.Equal(t, time.Date(2026, 2, 18, 10, 0, 0, 0, time.Local), res.LastUpdatedAt)
	assert.Equal(t, "m5", res.SystemMessage.ID)
	assert.Equal(t, devtalk.RoleSystem, res.SystemMessage.Role)
}

func TestUnmarshalResolution_StatusFromFlag(t *testing.T) {
	t.Parallel()

	res, err := devtalkjson.UnmarshalResolution([]byte(`{"resolve":{"resolved":false}}`))
	require.NoError(t, err)
	assert.Equal(t, devtalk.SessionActive, res.Status)
	assert.Empty(t, res.SystemMessage.ID)

	res, err = devtalkjson.UnmarshalResolution([]byte(`{"resolve":{"resolved":true}}`))
	require.NoError(t, err)
	assert.Equal(t, devtalk.SessionResolved, res.Status)

	_, err = devtalkjson.UnmarshalResolution([]byte(`{}`))
	assert.Error(t, err)
}

func TestUnmarshalDone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    devtalk.Done
		wantErr bool
	}{
		{
			name: "full payload",
			data: `{"messageId":"a1","finishReason":"MAX_TOKENS"}`,
			want: devtalk.Done{MessageID: "a1", FinishReason: devtalk.FinishMaxTokens},
		},
		{
			name: "missing reason",
			data: `{"messageId":"a1"}`,
			want: devtalk.Done{MessageID: "a1", FinishReason: devtalk.FinishUnknown},
		},
		{
			name: "empty payload",
			data: "",
			want: devtalk.Done{FinishReason: devtalk.FinishUnknown},
		},
		{
			name:    "not json",
			data:    "ok",
			want:    devtalk.Done{FinishReason: devtalk.FinishUnknown},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := devtalkjson.UnmarshalDone([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
