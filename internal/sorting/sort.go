// Package sorting orders search results and tracks the sort toggle state.
package sorting

import (
	"sort"
	"strconv"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Movies returns items ordered by mode. Relevance returns items as given;
// every other mode sorts a copy and leaves items untouched.
func Movies(items []domain.MovieSummary, mode domain.SortMode) []domain.MovieSummary {
	if mode == domain.SortRelevance || len(items) < 2 {
		return items
	}

	sorted := make([]domain.MovieSummary, len(items))
	copy(sorted, items)

	switch mode {
	case domain.SortYearDesc, domain.SortYearAsc:
		desc := mode == domain.SortYearDesc
		sort.SliceStable(sorted, func(i, j int) bool {
			return yearLess(sorted[i].Year, sorted[j].Year, desc)
		})
	case domain.SortTitleAsc, domain.SortTitleDesc:
		// collate.Collator is not safe for concurrent use
		col := collate.New(language.English, collate.IgnoreCase)
		desc := mode == domain.SortTitleDesc
		sort.SliceStable(sorted, func(i, j int) bool {
			c := col.CompareString(sorted[i].Title, sorted[j].Title)
			if desc {
				return c > 0
			}
			return c < 0
		})
	default:
		return items
	}
	return sorted
}

// yearLess orders by the leading year of two free-form year strings ("2010–2015" is 2010).
// Values without a leading number sort after every numeric year in both directions
// and keep their relative order.
func yearLess(a, b string, desc bool) bool {
	ya, okA := leadingYear(a)
	yb, okB := leadingYear(b)
	if okA != okB {
		return okA
	}
	if !okA {
		return false
	}
	if desc {
		return ya > yb
	}
	return ya < yb
}

func leadingYear(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
