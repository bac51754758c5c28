package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("favorites", []byte(`{"tt1":{}}`)))
	require.NoError(t, s.Set("theme_preference", []byte(`"dark"`)))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get("favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"tt1":{}}`, string(v))

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"favorites", "theme_preference"}, keys)
}

func TestStoreRemove(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("recent_searches", []byte(`["matrix"]`)))
	require.NoError(t, s.Remove("recent_searches"))
	require.NoError(t, s.Remove("never-set"))

	_, ok, err := s.Get("recent_searches")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewMemory()
	value := []byte("abc")
	require.NoError(t, s.Set("k", value))
	value[0] = 'x'

	got, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _, _ := s.Get("k")
	assert.Equal(t, "abc", string(again))
}

func TestOpenEmptyDirIsMemoryOnly(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	require.NoError(t, s.Set("k", []byte("v")))

	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(v))
	assert.NoError(t, s.Close())
}
