package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("MARQUEE_API_KEY", "")
	t.Setenv("OMDB_API_KEY", "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, defaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, "system", cfg.UI.Theme)
	assert.Equal(t, 28, cfg.Logging.MaxAgeDays)
	assert.ErrorIs(t, cfg.RequireAPIKey(), domain.ErrMissingAPIKey)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := "api:\n  key: from-file\n  timeout: 3s\nsearch:\n  debounce: 250ms\nui:\n  theme: dark\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("OMDB_API_KEY", "")
	t.Setenv("MARQUEE_API_KEY", "")
	t.Setenv("MARQUEE_UI_THEME", "light")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.API.Key)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.NoError(t, cfg.RequireAPIKey())
}

func TestLoadProviderEnvKey(t *testing.T) {
	t.Setenv("MARQUEE_API_KEY", "")
	t.Setenv("OMDB_API_KEY", "abc123")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.API.Key)
}

func TestSaveToRoundTrip(t *testing.T) {
	t.Setenv("MARQUEE_API_KEY", "")
	t.Setenv("OMDB_API_KEY", "")

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.API.Key = "saved"
	cfg.UI.Theme = "dark"
	cfg.Search.TypingDelay = 300 * time.Millisecond
	cfg.Logging.MaxAgeDays = 7

	require.NoError(t, SaveTo(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "saved", loaded.API.Key)
	assert.Equal(t, "dark", loaded.UI.Theme)
	assert.Equal(t, 300*time.Millisecond, loaded.Search.TypingDelay)
	assert.Equal(t, 7, loaded.Logging.MaxAgeDays)
}

func TestClearCacheRemovesStorageDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marquee.db"), []byte("x"), 0644))

	cfg := DefaultConfig()
	cfg.Storage.Dir = dir
	require.NoError(t, cfg.ClearCache())

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	// Already gone and memory-only are both no-ops
	require.NoError(t, cfg.ClearCache())
	cfg.Storage.Dir = ""
	require.NoError(t, cfg.ClearCache())
}
