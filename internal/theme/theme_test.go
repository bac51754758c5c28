package theme

import (
	"errors"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

func (brokenStore) Get(string) ([]byte, bool, error) { return nil, false, errors.New("boom") }
func (brokenStore) Set(string, []byte) error         { return errors.New("boom") }
func (brokenStore) Remove(string) error              { return errors.New("boom") }
func (brokenStore) Close() error                     { return nil }

func TestParse(t *testing.T) {
	assert.Equal(t, Light, Parse("light"))
	assert.Equal(t, Dark, Parse(" DARK "))
	assert.Equal(t, System, Parse("system"))
	assert.Equal(t, System, Parse("sepia"))
	assert.Equal(t, System, Parse(""))
}

func TestSetPersistsAsJSONString(t *testing.T) {
	s := store.NewMemory()
	m := NewManager(s, "system", log.NullLogger())
	m.Set(Dark)

	data, ok, err := s.Get(domain.KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"dark"`, string(data))

	assert.Equal(t, Dark, NewManager(s, "light", log.NullLogger()).Load())
}

func TestLoadFallbacks(t *testing.T) {
	s := store.NewMemory()
	assert.Equal(t, Light, NewManager(s, "light", log.NullLogger()).Load(), "nothing stored")

	require.NoError(t, s.Set(domain.KeyTheme, []byte("dark")))
	assert.Equal(t, Dark, NewManager(s, "light", log.NullLogger()).Load(), "bare word")

	require.NoError(t, s.Set(domain.KeyTheme, []byte(`"neon"`)))
	assert.Equal(t, System, NewManager(s, "light", log.NullLogger()).Load(), "unknown value")

	assert.Equal(t, Light, NewManager(brokenStore{}, "light", log.NullLogger()).Load(), "unreadable store")
}

func TestCycleAndIsDark(t *testing.T) {
	m := NewManager(store.NewMemory(), "light", log.NullLogger())
	assert.False(t, m.IsDark(true))

	assert.Equal(t, Dark, m.Cycle())
	assert.True(t, m.IsDark(false))

	assert.Equal(t, System, m.Cycle())
	assert.True(t, m.IsDark(true))
	assert.False(t, m.IsDark(false))

	assert.Equal(t, Light, m.Cycle())
}

func TestSetSurvivesWriteFailure(t *testing.T) {
	m := NewManager(brokenStore{}, "system", log.NullLogger())
	m.Set(Dark)
	assert.Equal(t, Dark, m.Preference())
}
