package favorites

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

var errBroken = errors.New("disk unavailable")

func (brokenStore) Get(string) ([]byte, bool, error) { return nil, false, errBroken }
func (brokenStore) Set(string, []byte) error         { return errBroken }
func (brokenStore) Remove(string) error              { return errBroken }
func (brokenStore) Close() error                     { return nil }

var (
	matrix = domain.MovieSummary{ID: "tt0133093", Title: "The Matrix", Year: "1999", Type: domain.MediaTypeMovie}
	alien  = domain.MovieSummary{ID: "tt0078748", Title: "Alien", Year: "1979", Type: domain.MediaTypeMovie}
	heat   = domain.MovieSummary{ID: "tt0113277", Title: "Heat", Year: "1995", Type: domain.MediaTypeMovie}
)

func TestToggleRoundTrip(t *testing.T) {
	m := NewManager(store.NewMemory(), log.NullLogger())
	m.Load()

	assert.False(t, m.IsFavorite(matrix.ID))
	assert.True(t, m.Toggle(matrix))
	assert.True(t, m.IsFavorite(matrix.ID))
	assert.False(t, m.Toggle(matrix))
	assert.False(t, m.IsFavorite(matrix.ID))
}

func TestTogglePersists(t *testing.T) {
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	m := NewManager(s, log.NullLogger())
	m.Load()
	m.Toggle(matrix)
	m.Toggle(alien)
	m.Toggle(heat)
	m.Toggle(alien)

	reloaded := NewManager(s, log.NullLogger())
	reloaded.Load()
	assert.True(t, reloaded.IsFavorite(matrix.ID))
	assert.True(t, reloaded.IsFavorite(heat.ID))
	assert.False(t, reloaded.IsFavorite(alien.ID))
	assert.Equal(t, 2, reloaded.Count())
}

func TestListOrderedByTitle(t *testing.T) {
	m := NewManager(store.NewMemory(), log.NullLogger())
	m.Toggle(matrix)
	m.Toggle(heat)
	m.Toggle(alien)

	got := m.List()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Alien", "Heat", "The Matrix"}, []string{got[0].Title, got[1].Title, got[2].Title})
}

func TestFilter(t *testing.T) {
	m := NewManager(store.NewMemory(), log.NullLogger())
	m.Toggle(matrix)
	m.Toggle(heat)
	m.Toggle(alien)

	assert.Len(t, m.Filter(""), 3)

	got := m.Filter("mtx")
	require.Len(t, got, 1)
	assert.Equal(t, matrix.ID, got[0].ID)

	assert.Empty(t, m.Filter("zzz"))
}

func TestLoadFailureMeansEmpty(t *testing.T) {
	m := NewManager(brokenStore{}, log.NullLogger())
	m.Load()
	assert.Zero(t, m.Count())

	assert.NotPanics(t, func() { m.Toggle(matrix) })
	assert.True(t, m.IsFavorite(matrix.ID), "session state survives a failed write")
}

func TestLoadCorruptData(t *testing.T) {
	s := store.NewMemory()
	require.NoError(t, s.Set(domain.KeyFavorites, []byte(`[1,2,3]`)))

	m := NewManager(s, log.NullLogger())
	m.Load()
	assert.Zero(t, m.Count())
}

func TestConcurrentTogglesAreNotLost(t *testing.T) {
	s := store.NewMemory()
	m := NewManager(s, log.NullLogger())
	m.Load()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Toggle(domain.MovieSummary{ID: fmt.Sprintf("tt%d", i), Title: fmt.Sprintf("Title %d", i)})
		}(i)
	}
	wg.Wait()

	reloaded := NewManager(s, log.NullLogger())
	reloaded.Load()
	assert.Equal(t, 50, reloaded.Count())
}
