package domain

import (
	"context"
	"strings"
)

const (
	// MinQueryLength is the shortest trimmed query that reaches the network
	MinQueryLength = 3

	// PageSize is fixed by the provider
	PageSize = 10

	// FirstPage is the 1-based index of the first results page
	FirstPage = 1
)

// SearchFilters describes one search request. Two filter sets with the same Key
// are the same search.
type SearchFilters struct {
	Query string
	Type  MediaType
	Year  string // raw user input; see NormalizedYear
}

// TrimmedQuery returns the query without surrounding whitespace
func (f SearchFilters) TrimmedQuery() string {
	return strings.TrimSpace(f.Query)
}

// Searchable reports whether the trimmed query meets MinQueryLength
func (f SearchFilters) Searchable() bool {
	return len([]rune(f.TrimmedQuery())) >= MinQueryLength
}

// NormalizedYear returns the year if it is exactly four digits, else ""
func (f SearchFilters) NormalizedYear() string {
	return NormalizeYear(f.Year)
}

// Key is the composite supersession key: trimmed query, type and normalized year
func (f SearchFilters) Key() string {
	return f.TrimmedQuery() + "|" + string(f.Type) + "|" + f.NormalizedYear()
}

// Normalized returns a copy with the query trimmed and the year normalized
func (f SearchFilters) Normalized() SearchFilters {
	return SearchFilters{
		Query: f.TrimmedQuery(),
		Type:  f.Type,
		Year:  f.NormalizedYear(),
	}
}

// NormalizeYear trims year and returns it only if it is four ASCII digits
func NormalizeYear(year string) string {
	trimmed := strings.TrimSpace(year)
	if len(trimmed) != 4 {
		return ""
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return trimmed
}

// SearchPage is one page of search results. Provider-level failures are reported in
// ErrorMessage, not as a Go error.
type SearchPage struct {
	Items        []MovieSummary
	TotalResults int
	TotalPages   int
	ErrorMessage string
}

// Failed reports whether the provider signalled a logical failure
func (p SearchPage) Failed() bool {
	return p.ErrorMessage != ""
}

// TotalPagesFor returns ceil(totalResults / PageSize)
func TotalPagesFor(totalResults int) int {
	if totalResults <= 0 {
		return 0
	}
	return (totalResults + PageSize - 1) / PageSize
}

// SearchClient performs paged keyword search against the provider
type SearchClient interface {
	Search(ctx context.Context, filters SearchFilters, page int) (SearchPage, error)
}

// DetailsClient fetches a single record. A nil result with a nil error means not found.
type DetailsClient interface {
	Details(ctx context.Context, id string) (*MovieDetails, error)
}
