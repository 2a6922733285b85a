//go:build unit

package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"lodge-booking/internal/pkg/config"
	"lodge-booking/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	cfg := config.LogConfig{Level: "info", Format: "auto", TimeZone: "UTC", TimeFormat: "2006-01-02"}

	t.Run("release mode logs JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger.NewWithWriter(&buf, cfg, "release").Info("hello", slog.String("room", "r1"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "r1", entry["room"])
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, entry["time"])
	})

	t.Run("debug mode logs text without colour off a terminal", func(t *testing.T) {
		var buf bytes.Buffer
		logger.NewWithWriter(&buf, cfg, "debug").Info("hello", slog.String("room", "r1"))

		assert.Contains(t, buf.String(), "hello")
		assert.Contains(t, buf.String(), "room=r1")
		assert.NotContains(t, buf.String(), "\x1b[")
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		quiet := cfg
		quiet.Level = "error"
		logger.NewWithWriter(&buf, quiet, "release").Warn("dropped")
		assert.Empty(t, buf.String())
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("nonsense"))
}
