package domain

import "strings"

// MediaType distinguishes the kinds of record the provider returns
type MediaType string

const (
	MediaTypeAny     MediaType = ""
	MediaTypeMovie   MediaType = "movie"
	MediaTypeSeries  MediaType = "series"
	MediaTypeEpisode MediaType = "episode"
)

// MediaTypes lists the concrete types in filter-cycle order
func MediaTypes() []MediaType {
	return []MediaType{MediaTypeMovie, MediaTypeSeries, MediaTypeEpisode}
}

// ParseMediaType returns the MediaType for s, or MediaTypeAny if s is not a known type
func ParseMediaType(s string) MediaType {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case MediaTypeMovie:
		return MediaTypeMovie
	case MediaTypeSeries:
		return MediaTypeSeries
	case MediaTypeEpisode:
		return MediaTypeEpisode
	default:
		return MediaTypeAny
	}
}

// String returns the display label for the type
func (t MediaType) String() string {
	switch t {
	case MediaTypeMovie:
		return "Movie"
	case MediaTypeSeries:
		return "Series"
	case MediaTypeEpisode:
		return "Episode"
	case MediaTypeAny:
		return "All"
	default:
		return string(t)
	}
}

// MovieSummary is a single search hit. Identity is ID.
type MovieSummary struct {
	ID     string    `json:"imdbID"`
	Title  string    `json:"title"`
	Year   string    `json:"year,omitempty"` // free-form: "1999", "2010–2015", "2019–"
	Type   MediaType `json:"type,omitempty"`
	Poster string    `json:"poster,omitempty"` // empty when the provider has no poster
}

// HasPoster reports whether a poster URL is available
func (m MovieSummary) HasPoster() bool {
	return m.Poster != ""
}

// Rating is a provider-tagged raw rating string such as "8.5/10" or "87%"
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// MovieDetails is the full record for a single title
type MovieDetails struct {
	MovieSummary
	Genre    string   `json:"genre,omitempty"`
	Plot     string   `json:"plot,omitempty"`
	Director string   `json:"director,omitempty"`
	Actors   string   `json:"actors,omitempty"` // comma separated
	Ratings  []Rating `json:"ratings,omitempty"`
	Runtime  string   `json:"runtime,omitempty"`
	Released string   `json:"released,omitempty"`
}

// Summary returns the summary part of the record
func (d MovieDetails) Summary() MovieSummary {
	return d.MovieSummary
}
