package domain

// Persisted namespaces in the key-value store
const (
	KeyFavorites      = "favorites"
	KeyRecentSearches = "recent_searches"
	KeyTheme          = "theme_preference"
	KeyDetailsCache   = "movie_details_cache"
)

// KVStore is a persistent string-keyed blob store that survives restarts.
// Managers treat every error from it as non-fatal.
type KVStore interface {
	// Get returns the value for key; ok is false if the key is absent
	Get(key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value
	Set(key string, value []byte) error

	// Remove deletes key; removing an absent key is not an error
	Remove(key string) error

	Close() error
}
