// Package recent keeps the persisted most-recent-first list of search queries.
package recent

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/domain"
)

// MaxEntries bounds the list
const MaxEntries = 10

// Manager owns the recent-searches namespace. The in-memory list only changes after a
// successful write, so it always matches what is persisted.
type Manager struct {
	store  domain.KVStore
	logger *slog.Logger

	mu    sync.Mutex
	items []string
}

// NewManager creates a manager; call Load to read the persisted list
func NewManager(store domain.KVStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, logger: logger}
}

// Load reads the persisted list. Unreadable data leaves the list empty.
func (m *Manager) Load() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil
	data, ok, err := m.store.Get(domain.KeyRecentSearches)
	if err != nil {
		m.logger.Warn("failed to load recent searches", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		m.logger.Warn("corrupt recent searches", "error", err)
		return nil
	}
	if len(items) > MaxEntries {
		items = items[:MaxEntries]
	}
	m.items = items
	return clone(items)
}

// Add moves query to the front. Queries shorter than the search floor are ignored and
// an existing entry that differs only in case is replaced.
func (m *Manager) Add(query string) {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < domain.MinQueryLength {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := make([]string, 0, MaxEntries)
	next = append(next, trimmed)
	for _, q := range m.items {
		if strings.EqualFold(q, trimmed) {
			continue
		}
		next = append(next, q)
	}
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	m.commitLocked(next)
}

// Remove deletes the exact query
func (m *Manager) Remove(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := make([]string, 0, len(m.items))
	for _, q := range m.items {
		if q != query {
			next = append(next, q)
		}
	}
	if len(next) == len(m.items) {
		return
	}
	m.commitLocked(next)
}

// Clear empties the list
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commitLocked([]string{})
}

// List returns the queries, most recent first
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.items)
}

// Suggest ranks stored queries that fuzzy-match text, best first.
// An empty text returns the whole list.
func (m *Manager) Suggest(text string) []string {
	items := m.List()
	text = strings.TrimSpace(text)
	if text == "" {
		return items
	}

	ranks := fuzzy.RankFindFold(text, items)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}

// commitLocked persists next and, on success, makes it the in-memory list.
// A failed write is logged and dropped.
func (m *Manager) commitLocked(next []string) {
	data, err := json.Marshal(next)
	if err != nil {
		m.logger.Warn("failed to encode recent searches", "error", err)
		return
	}
	if err := m.store.Set(domain.KeyRecentSearches, data); err != nil {
		m.logger.Warn("failed to save recent searches", "error", err)
		return
	}
	m.items = next
}

func clone(items []string) []string {
	if items == nil {
		return nil
	}
	return append([]string(nil), items...)
}
