package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/devtalk/devtalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCmd runs the command tree with an isolated config and log file.
func runCmd(t *testing.T, env environment, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCmdApp(t, env, args...)
	return out, err
}

func runCmdApp(t *testing.T, env environment, args ...string) (string, *app, error) {
	t.Helper()
	dir := t.TempDir()
	var out bytes.Buffer
	root, a := newRootCmd(env, &out)
	root.SetArgs(append(args,
		"--config", writeConfig(t, ""),
		"--log-file", filepath.Join(dir, "devtalk.log"),
	))
	err := execute(context.Background(), root, a)
	return out.String(), a, err
}

func TestSessionsCommand(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/devtalk/sessions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"sessionId":"s1","title":"Flaky test","status":"ACTIVE","createdAt":"2026-03-01T09:00:00","lastUpdatedAt":"2026-03-01T09:30:00"},
			{"sessionId":"s2","title":"","status":"RESOLVED","createdAt":"2026-03-02T10:00:00","lastUpdatedAt":"2026-03-02T11:15:00"}
		]`))
	}))
	t.Cleanup(srv.Close)

	out, err := runCmd(t, environment{BaseURL: srv.URL + "/api/devtalk"}, "sessions")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[0], "TITLE")
	// Most recently updated first.
	assert.Contains(t, lines[1], "s2")
	assert.Contains(t, lines[1], "RESOLVED")
	assert.Contains(t, lines[1], "2026-03-02 11:15")
	assert.Contains(t, lines[1], "Untitled")
	assert.Contains(t, lines[2], "Flaky test")
}

func TestSessionsCommand_ServiceError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, a, err := runCmdApp(t, environment{BaseURL: srv.URL}, "sessions")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list sessions")
	assert.NotNil(t, a.logger, "log file was opened")
	assert.Nil(t, a.closer, "log file left open after a failed command")
}

func TestSessionsCommand_BaseURLFlagWins(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	// The environment points nowhere; the flag must be used.
	out, err := runCmd(t, environment{BaseURL: "http://127.0.0.1:1"}, "sessions", "--base-url", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "No sessions.\n", out)
}

func TestArgs(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"chat"},
		{"chat", "a", "b"},
		{"new"},
		{"sessions", "extra"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			t.Parallel()
			_, err := runCmd(t, environment{}, args...)
			require.Error(t, err)
		})
	}
}

func TestWriteSessions(t *testing.T) {
	t.Parallel()

	updated := time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)
	var buf bytes.Buffer
	err := writeSessions(&buf, []devtalk.Session{{
		ID:            "s1",
		Title:         "会議の議事録を自動で要約するツールが時々落ちる原因を調べたいのでログの読み方を教えてください",
		Status:        devtalk.SessionActive,
		LastUpdatedAt: updated,
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "2026-03-01 09:30")
	assert.True(t, strings.HasSuffix(lines[1], "…"))
}
