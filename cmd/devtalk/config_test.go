package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devtalk/devtalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := resolveConfig(options{configPath: writeConfig(t, "")}, environment{})
		require.NoError(t, err)
		assert.Equal(t, devtalk.DefaultConfig(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "base_url = \"http://file.test/api\"\ntick_interval = \"40ms\"\n")
		cfg, err := resolveConfig(options{configPath: path}, environment{})
		require.NoError(t, err)
		assert.Equal(t, "http://file.test/api", cfg.BaseURL)
		assert.Equal(t, 40*time.Millisecond, cfg.TickInterval)
		assert.Equal(t, devtalk.DefaultChunkSize, cfg.ChunkSize)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "base_url = \"http://file.test/api\"\n")
		cfg, err := resolveConfig(options{configPath: path}, environment{BaseURL: "http://env.test/api"})
		require.NoError(t, err)
		assert.Equal(t, "http://env.test/api", cfg.BaseURL)
	})

	t.Run("flag overrides env", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "base_url = \"http://file.test/api\"\n")
		opts := options{configPath: path, baseURL: "http://flag.test/api", baseURLSet: true}
		cfg, err := resolveConfig(opts, environment{BaseURL: "http://env.test/api"})
		require.NoError(t, err)
		assert.Equal(t, "http://flag.test/api", cfg.BaseURL)
	})

	t.Run("unset debug flag keeps file value", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "debug = true\nlog_file = \"/tmp/from-file.log\"\n")
		cfg, err := resolveConfig(options{configPath: path}, environment{})
		require.NoError(t, err)
		assert.True(t, cfg.Debug)
		assert.Equal(t, "/tmp/from-file.log", cfg.LogFile)
	})

	t.Run("log file flag overrides file", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "log_file = \"/tmp/from-file.log\"\n")
		cfg, err := resolveConfig(options{configPath: path, logFile: "/tmp/flag.log"}, environment{})
		require.NoError(t, err)
		assert.Equal(t, "/tmp/flag.log", cfg.LogFile)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "absent.toml")
		_, err := resolveConfig(options{configPath: path}, environment{})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid result", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "chunk_size = 0\n")
		_, err := resolveConfig(options{configPath: path}, environment{})
		assert.ErrorIs(t, err, devtalk.ErrValidation)
	})

	t.Run("relative base url", func(t *testing.T) {
		t.Parallel()
		opts := options{configPath: writeConfig(t, ""), baseURL: "api/devtalk", baseURLSet: true}
		_, err := resolveConfig(opts, environment{})
		assert.ErrorIs(t, err, devtalk.ErrValidation)
	})
}

func TestOpenLog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "devtalk.log")
	logger, closer, err := openLog(path, true)
	require.NoError(t, err)
	logger.Debug("hello", "k", "v")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=DEBUG")
	assert.Contains(t, string(data), "msg=hello")
}

func TestOpenLog_InfoLevelByDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "devtalk.log")
	logger, closer, err := openLog(path, false)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
