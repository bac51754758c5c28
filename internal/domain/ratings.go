package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// IMDbSource is the rating source name the provider uses for IMDb
	IMDbSource = "Internet Movie Database"

	// DefaultActorLimit caps the actor list on the details view
	DefaultActorLimit = 6
)

var ratingNumber = regexp.MustCompile(`(\d+\.?\d*)`)

// IMDbRating extracts the numeric IMDb rating ("8.5/10" -> 8.5).
// The value is derived on demand and never stored.
func (d MovieDetails) IMDbRating() (float64, bool) {
	for _, r := range d.Ratings {
		if r.Source != IMDbSource {
			continue
		}
		match := ratingNumber.FindString(r.Value)
		if match == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// ActorList returns at most limit actors; limit <= 0 uses DefaultActorLimit
func (d MovieDetails) ActorList(limit int) []string {
	if limit <= 0 {
		limit = DefaultActorLimit
	}
	actors := ParseCommaSeparated(d.Actors)
	if len(actors) > limit {
		actors = actors[:limit]
	}
	return actors
}

// GenreList splits the comma separated genre field
func (d MovieDetails) GenreList() []string {
	return ParseCommaSeparated(d.Genre)
}

// ParseCommaSeparated splits value on commas, trims each part and drops empties.
// The provider's "N/A" placeholder yields a single "N/A" entry, same as any other text.
func ParseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FormatRatingWithReviews renders "8.5 (85K reviews)"
func FormatRatingWithReviews(rating float64) string {
	reviews := int(math.Floor(rating * 10000))
	return strconv.FormatFloat(rating, 'f', 1, 64) + " (" + FormatReviewCount(reviews) + " reviews)"
}

// FormatReviewCount abbreviates count with K and M suffixes
func FormatReviewCount(count int) string {
	switch {
	case count >= 1000000:
		return abbreviate(float64(count)/1000000) + "M"
	case count >= 1000:
		return abbreviate(float64(count)/1000) + "K"
	default:
		return strconv.Itoa(count)
	}
}

func abbreviate(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
