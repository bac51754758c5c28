package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/marquee/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestNewLoggerWritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "WARN")

	logger.Info("dropped")
	logger.Warn("kept", "query", "matrix")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "matrix", entry["query"])
}

func TestSetupLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "marquee.log")
	logger, err := SetupLogger(&config.LoggingConfig{File: path, Level: "INFO", MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestSetupLoggerRejectsEmptyPath(t *testing.T) {
	_, err := SetupLogger(&config.LoggingConfig{})
	assert.Error(t, err)
}

func TestRotatingWriterSettings(t *testing.T) {
	w := newRotatingWriter(&config.LoggingConfig{File: "/tmp/m.log", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28})
	assert.Equal(t, "/tmp/m.log", w.Filename)
	assert.Equal(t, 10, w.MaxSize)
	assert.Equal(t, 3, w.MaxBackups)
	assert.Equal(t, 28, w.MaxAge)
}
