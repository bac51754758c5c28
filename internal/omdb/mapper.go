package omdb

import (
	"strconv"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// MapSearchItems converts provider entries to domain summaries
func MapSearchItems(items []SearchItem) []domain.MovieSummary {
	out := make([]domain.MovieSummary, 0, len(items))
	for _, it := range items {
		out = append(out, domain.MovieSummary{
			ID:     it.IMDbID,
			Title:  it.Title,
			Year:   it.Year,
			Type:   domain.MediaType(strings.ToLower(it.Type)),
			Poster: normalizePoster(it.Poster),
		})
	}
	return out
}

// MapDetails converts a details body to domain details.
// Returns nil when the record lacks an id, title, year or type.
func MapDetails(r DetailsResponse) *domain.MovieDetails {
	if r.IMDbID == "" || r.Title == "" || r.Year == "" || r.Type == "" {
		return nil
	}

	var ratings []domain.Rating
	if len(r.Ratings) > 0 {
		ratings = make([]domain.Rating, len(r.Ratings))
		for i, rt := range r.Ratings {
			ratings[i] = domain.Rating{Source: rt.Source, Value: rt.Value}
		}
	}

	return &domain.MovieDetails{
		MovieSummary: domain.MovieSummary{
			ID:     r.IMDbID,
			Title:  r.Title,
			Year:   r.Year,
			Type:   domain.MediaType(strings.ToLower(r.Type)),
			Poster: normalizePoster(r.Poster),
		},
		Genre:    r.Genre,
		Plot:     r.Plot,
		Director: r.Director,
		Actors:   r.Actors,
		Ratings:  ratings,
		Runtime:  r.Runtime,
		Released: r.Released,
	}
}

// parseTotalResults reads the string count; anything unparseable is 0
func parseTotalResults(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func normalizePoster(p string) string {
	if p == notAvailable {
		return ""
	}
	return p
}

// isLimitMessage matches the provider's quota wording
func isLimitMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "limit") || strings.Contains(lower, "exceeded")
}
