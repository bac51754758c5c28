package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrRateLimited indicates the API key is exhausted or rejected (HTTP 401/403 or a limit message)
	ErrRateLimited = errors.New("api request limit reached")

	// ErrMissingAPIKey indicates no API key was configured
	ErrMissingAPIKey = errors.New("api key is not configured (set api.key, MARQUEE_API_KEY or OMDB_API_KEY)")

	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrServerOffline indicates the provider is unreachable
	ErrServerOffline = errors.New("metadata service is unreachable")

	// ErrInvalidResponse indicates the provider returned a body that could not be decoded
	ErrInvalidResponse = errors.New("invalid response from metadata service")
)
