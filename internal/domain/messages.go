package domain

// User-visible messages. Nothing but these strings (and the stale flag) reaches the UI.
const (
	MsgRateLimited    = "API request limit reached. Please try again later."
	MsgFailedToLoad   = "Failed to load movies"
	MsgFailedToSearch = "Failed to search"
	MsgNoResults      = "No results found"
	MsgNoFavorites    = "No favorite movies yet"
	MsgOffline        = "You are offline. Showing cached data."
)
