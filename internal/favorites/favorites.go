// Package favorites keeps the persisted set of favorited titles.
package favorites

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Manager owns the favorites namespace: a mapping id -> summary.
type Manager struct {
	store  domain.KVStore
	logger *slog.Logger

	mu    sync.RWMutex
	items map[string]domain.MovieSummary
}

// NewManager creates a manager; call Load once at startup
func NewManager(store domain.KVStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:  store,
		logger: logger,
		items:  make(map[string]domain.MovieSummary),
	}
}

// Load reads the persisted mapping. Read failures mean no favorites.
func (m *Manager) Load() {
	items := make(map[string]domain.MovieSummary)

	data, ok, err := m.store.Get(domain.KeyFavorites)
	switch {
	case err != nil:
		m.logger.Warn("failed to load favorites", "error", err)
	case ok:
		if err := json.Unmarshal(data, &items); err != nil {
			m.logger.Warn("corrupt favorites", "error", err)
			items = make(map[string]domain.MovieSummary)
		}
	}

	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	m.logger.Debug("favorites loaded", "count", len(items))
}

// Toggle adds movie if absent, otherwise removes it. It returns the new state.
func (m *Manager) Toggle(movie domain.MovieSummary) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.items[movie.ID]
	if exists {
		delete(m.items, movie.ID)
	} else {
		m.items[movie.ID] = normalize(movie)
	}
	m.persistLocked()
	return !exists
}

// IsFavorite reports whether id is favorited
func (m *Manager) IsFavorite(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[id]
	return ok
}

// Count returns the number of favorites
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// List returns favorites ordered by title
func (m *Manager) List() []domain.MovieSummary {
	m.mu.RLock()
	out := make([]domain.MovieSummary, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	m.mu.RUnlock()

	col := collate.New(language.English, collate.IgnoreCase)
	sort.Slice(out, func(i, j int) bool {
		if c := col.CompareString(out[i].Title, out[j].Title); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// titleIndex implements fuzzy.Source over lowercased titles
type titleIndex []domain.MovieSummary

func (t titleIndex) String(i int) string { return strings.ToLower(t[i].Title) }
func (t titleIndex) Len() int            { return len(t) }

// Filter fuzzy-matches query against titles, best match first.
// An empty query returns List().
func (m *Manager) Filter(query string) []domain.MovieSummary {
	all := m.List()
	query = strings.TrimSpace(query)
	if query == "" {
		return all
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), titleIndex(all))
	out := make([]domain.MovieSummary, len(matches))
	for i, match := range matches {
		out[i] = all[match.Index]
	}
	return out
}

// persistLocked writes the whole mapping. Failures are logged and dropped; the
// in-memory set stays authoritative for the session.
func (m *Manager) persistLocked() {
	data, err := json.Marshal(m.items)
	if err != nil {
		m.logger.Warn("failed to encode favorites", "error", err)
		return
	}
	if err := m.store.Set(domain.KeyFavorites, data); err != nil {
		m.logger.Warn("failed to save favorites", "error", err)
	}
}

// normalize keeps only the summary fields of movie
func normalize(movie domain.MovieSummary) domain.MovieSummary {
	return domain.MovieSummary{
		ID:     movie.ID,
		Title:  movie.Title,
		Year:   movie.Year,
		Type:   movie.Type,
		Poster: movie.Poster,
	}
}
