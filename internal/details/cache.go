// Package details caches full title records and loads them cache-first with an
// offline fallback.
package details

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// DefaultTTL is how long a cached record is served
const DefaultTTL = 7 * 24 * time.Hour

// Entry is one cached record. The wire shape keeps the epoch-millisecond timestamp.
type Entry struct {
	Details   domain.MovieDetails `json:"details"`
	FetchedAt int64               `json:"timestamp"`
}

func (e Entry) fetchedAt() time.Time {
	return time.UnixMilli(e.FetchedAt)
}

// Cache is a time-boxed details cache persisted as one blob.
// Every operation reads the store, so two caches over the same store stay consistent.
type Cache struct {
	store  domain.KVStore
	logger *slog.Logger
	ttl    time.Duration
	now    func() time.Time

	mu sync.Mutex
}

// CacheOption configures a Cache
type CacheOption func(*Cache)

// WithTTL overrides DefaultTTL
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// NewCache creates a cache over store
func NewCache(store domain.KVStore, logger *slog.Logger, opts ...CacheOption) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cache{store: store, logger: logger, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the record for id if it is at most ttl old. An expired entry is evicted.
// Storage failures read as a miss.
func (c *Cache) Get(id string) (*domain.MovieDetails, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.readLocked()
	entry, ok := entries[id]
	if !ok {
		return nil, false
	}

	if c.now().Sub(entry.fetchedAt()) > c.ttl {
		delete(entries, id)
		c.writeLocked(entries)
		c.logger.Debug("details cache entry expired", "id", id)
		return nil, false
	}

	d := entry.Details
	return &d, true
}

// Put stores d under id with the current time
func (c *Cache) Put(id string, d domain.MovieDetails) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.readLocked()
	entries[id] = Entry{Details: d, FetchedAt: c.now().UnixMilli()}
	c.writeLocked(entries)
}

// Clear drops every cached record
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Remove(domain.KeyDetailsCache); err != nil {
		c.logger.Warn("failed to clear details cache", "error", err)
	}
}

func (c *Cache) readLocked() map[string]Entry {
	entries := make(map[string]Entry)
	data, ok, err := c.store.Get(domain.KeyDetailsCache)
	if err != nil {
		c.logger.Warn("failed to read details cache", "error", err)
		return entries
	}
	if !ok {
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("corrupt details cache", "error", err)
		return make(map[string]Entry)
	}
	return entries
}

func (c *Cache) writeLocked(entries map[string]Entry) {
	data, err := json.Marshal(entries)
	if err != nil {
		c.logger.Warn("failed to encode details cache", "error", err)
		return
	}
	if err := c.store.Set(domain.KeyDetailsCache, data); err != nil {
		c.logger.Warn("failed to write details cache", "error", err)
	}
}
