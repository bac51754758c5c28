package sorting

import (
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movies() []domain.MovieSummary {
	return []domain.MovieSummary{
		{ID: "1", Title: "Matrix Reloaded", Year: "2003"},
		{ID: "2", Title: "alien", Year: "1979"},
		{ID: "3", Title: "Zodiac", Year: "2007"},
		{ID: "4", Title: "Breaking Bad", Year: "2008–2013"},
	}
}

func ids(items []domain.MovieSummary) []string {
	out := make([]string, len(items))
	for i, m := range items {
		out[i] = m.ID
	}
	return out
}

func TestMoviesRelevanceKeepsOrder(t *testing.T) {
	in := movies()
	out := Movies(in, domain.SortRelevance)
	assert.Equal(t, ids(in), ids(out))
	assert.Equal(t, movies(), in)
}

func TestMoviesDoesNotMutateInput(t *testing.T) {
	for _, mode := range []domain.SortMode{domain.SortYearDesc, domain.SortYearAsc, domain.SortTitleAsc, domain.SortTitleDesc} {
		in := movies()
		_ = Movies(in, mode)
		assert.Equal(t, movies(), in, mode)
	}
}

func TestMoviesOrders(t *testing.T) {
	tests := []struct {
		mode domain.SortMode
		want []string
	}{
		{domain.SortYearDesc, []string{"4", "3", "1", "2"}},
		{domain.SortYearAsc, []string{"2", "1", "3", "4"}},
		{domain.SortTitleAsc, []string{"2", "4", "1", "3"}},
		{domain.SortTitleDesc, []string{"3", "1", "4", "2"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Movies(movies(), tt.mode)))
		})
	}
}

func TestMoviesNonNumericYears(t *testing.T) {
	in := []domain.MovieSummary{
		{ID: "a", Year: "N/A"},
		{ID: "b", Year: "2001"},
		{ID: "c", Year: ""},
		{ID: "d", Year: "1990"},
		{ID: "e", Year: "2010–2015"},
	}
	tests := []struct {
		mode domain.SortMode
		want []string
	}{
		{domain.SortYearAsc, []string{"d", "b", "e", "a", "c"}},
		{domain.SortYearDesc, []string{"e", "b", "d", "a", "c"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			var out []domain.MovieSummary
			require.NotPanics(t, func() { out = Movies(in, tt.mode) })
			assert.Equal(t, tt.want, ids(out))
		})
	}

	out := Movies([]domain.MovieSummary{{ID: "x", Year: "2001"}, {ID: "y", Year: "N/A"}, {ID: "z", Year: "1990"}}, domain.SortYearAsc)
	assert.Equal(t, []string{"z", "x", "y"}, ids(out))
}

func TestLeadingYear(t *testing.T) {
	y, ok := leadingYear("2019–")
	assert.True(t, ok)
	assert.Equal(t, 2019, y)

	_, ok = leadingYear("unknown")
	assert.False(t, ok)
}

func TestToggleScenario(t *testing.T) {
	tg := NewToggle()
	assert.Equal(t, domain.SortRelevance, tg.Mode())

	assert.Equal(t, domain.SortYearDesc, tg.ToggleYear())
	assert.Equal(t, domain.SortYearAsc, tg.ToggleYear())
	year, title := tg.Directions()
	assert.Equal(t, domain.SortYearAsc, year)
	assert.Equal(t, domain.SortTitleAsc, title)

	assert.Equal(t, domain.SortTitleAsc, tg.ToggleTitle())
	year, _ = tg.Directions()
	assert.Equal(t, domain.SortYearAsc, year, "title toggle leaves the year axis alone")

	assert.Equal(t, domain.SortYearAsc, tg.ToggleYear(), "year axis resumes its remembered direction")
}

func TestToggleRelevanceKeepsDirections(t *testing.T) {
	tg := NewToggle()
	tg.ToggleTitle()
	tg.ToggleTitle()
	tg.SelectRelevance()
	assert.Equal(t, domain.SortRelevance, tg.Mode())
	assert.Equal(t, domain.SortTitleDesc, tg.ToggleTitle())

	tg.Set(domain.SortYearAsc)
	year, _ := tg.Directions()
	assert.Equal(t, domain.SortYearAsc, year)
}
