package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/details"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
)

// Message types for the TUI

// QueryDebouncedMsg carries filters that survived the debounce window
type QueryDebouncedMsg struct {
	Filters domain.SearchFilters
}

// TypingMsg reports a typing-indicator transition
type TypingMsg struct {
	Typing bool
}

// SearchDoneMsg signals that a first-page search settled
type SearchDoneMsg struct {
	Outcome search.Outcome
}

// LoadMoreDoneMsg signals that a load-more attempt finished
type LoadMoreDoneMsg struct {
	Loaded bool
}

// LatestLoadedMsg carries the empty-query feed
type LatestLoadedMsg struct {
	Items []domain.MovieSummary
	Err   string
}

// DetailsCachedMsg carries a cached record shown while the refresh runs
type DetailsCachedMsg struct {
	ID      string
	Details *domain.MovieDetails
	next    tea.Cmd
}

// DetailsLoadedMsg carries the settled details result
type DetailsLoadedMsg struct {
	ID     string
	Result details.Result
}
