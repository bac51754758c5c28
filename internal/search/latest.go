package search

import (
	"context"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	// DefaultLatestCount is how many titles the empty-query feed shows
	DefaultLatestCount = 10

	latestQuery = "movie"
)

// Latest returns the first n titles of the broad "movie" search shown when no query
// is typed. On failure it returns the message to display instead; a cancelled ctx
// returns neither.
func Latest(ctx context.Context, client domain.SearchClient, n int) ([]domain.MovieSummary, string) {
	if n <= 0 {
		n = DefaultLatestCount
	}

	filters := domain.SearchFilters{Query: latestQuery, Type: domain.MediaTypeMovie}
	page, err := client.Search(ctx, filters, domain.FirstPage)
	if ctx.Err() != nil {
		return nil, ""
	}
	if err != nil {
		return nil, domain.MsgFailedToLoad
	}
	if page.Failed() {
		return nil, page.ErrorMessage
	}

	items := page.Items
	if len(items) > n {
		items = items[:n]
	}
	return items, ""
}
