package domain

// SortMode selects how search results are ordered
type SortMode string

const (
	SortRelevance SortMode = "relevance" // provider order
	SortYearDesc  SortMode = "year_desc"
	SortYearAsc   SortMode = "year_asc"
	SortTitleAsc  SortMode = "title_asc"
	SortTitleDesc SortMode = "title_desc"
)

// ParseSortMode returns the mode named by s, or SortRelevance
func ParseSortMode(s string) SortMode {
	switch m := SortMode(s); m {
	case SortYearDesc, SortYearAsc, SortTitleAsc, SortTitleDesc:
		return m
	default:
		return SortRelevance
	}
}

// IsYear reports whether the mode sorts on the year axis
func (m SortMode) IsYear() bool {
	return m == SortYearDesc || m == SortYearAsc
}

// IsTitle reports whether the mode sorts on the title axis
func (m SortMode) IsTitle() bool {
	return m == SortTitleAsc || m == SortTitleDesc
}

// String returns a short display label
func (m SortMode) String() string {
	switch m {
	case SortYearDesc:
		return "Year ↓"
	case SortYearAsc:
		return "Year ↑"
	case SortTitleAsc:
		return "Title A-Z"
	case SortTitleDesc:
		return "Title Z-A"
	default:
		return "Relevance"
	}
}
