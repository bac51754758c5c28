// Package theme persists the light/dark/system preference.
package theme

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// Preference is the user's theme choice
type Preference string

const (
	Light  Preference = "light"
	Dark   Preference = "dark"
	System Preference = "system"
)

// Parse returns the preference named by s, or System
func Parse(s string) Preference {
	switch p := Preference(strings.ToLower(strings.TrimSpace(s))); p {
	case Light, Dark:
		return p
	default:
		return System
	}
}

// Next cycles light -> dark -> system -> light
func (p Preference) Next() Preference {
	switch p {
	case Light:
		return Dark
	case Dark:
		return System
	default:
		return Light
	}
}

// Manager owns the theme namespace
type Manager struct {
	store    domain.KVStore
	logger   *slog.Logger
	fallback Preference

	mu   sync.RWMutex
	pref Preference
}

// NewManager creates a manager; fallback is used until Load finds a stored value
func NewManager(store domain.KVStore, fallback string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	fb := Parse(fallback)
	return &Manager{store: store, logger: logger, fallback: fb, pref: fb}
}

// Load reads the stored preference. Missing, unreadable or unknown values give the fallback.
func (m *Manager) Load() Preference {
	pref := m.fallback

	data, ok, err := m.store.Get(domain.KeyTheme)
	switch {
	case err != nil:
		m.logger.Warn("failed to load theme preference", "error", err)
	case ok:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			// Older builds stored the bare word
			s = string(data)
		}
		pref = Parse(s)
	}

	m.mu.Lock()
	m.pref = pref
	m.mu.Unlock()
	return pref
}

// Preference returns the current choice
func (m *Manager) Preference() Preference {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pref
}

// Set changes and persists the preference. Write failures keep the new value for the session.
func (m *Manager) Set(p Preference) {
	p = Parse(string(p))

	m.mu.Lock()
	m.pref = p
	m.mu.Unlock()

	data, err := json.Marshal(string(p))
	if err != nil {
		m.logger.Warn("failed to encode theme preference", "error", err)
		return
	}
	if err := m.store.Set(domain.KeyTheme, data); err != nil {
		m.logger.Warn("failed to save theme preference", "error", err)
	}
}

// Cycle advances to the next preference and returns it
func (m *Manager) Cycle() Preference {
	next := m.Preference().Next()
	m.Set(next)
	return next
}

// IsDark resolves the preference; systemDark answers for System
func (m *Manager) IsDark(systemDark bool) bool {
	switch m.Preference() {
	case Dark:
		return true
	case Light:
		return false
	default:
		return systemDark
	}
}
