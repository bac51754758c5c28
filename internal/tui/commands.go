package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/details"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
)

// Command factories for async operations

const detailsTimeout = 30 * time.Second

// WaitForQueryCmd blocks until the debouncer emits
func WaitForQueryCmd(ch <-chan domain.SearchFilters) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-ch
		if !ok {
			return nil
		}
		return QueryDebouncedMsg{Filters: f}
	}
}

// WaitForTypingCmd blocks until the typing indicator changes state
func WaitForTypingCmd(ch <-chan bool) tea.Cmd {
	return func() tea.Msg {
		typing, ok := <-ch
		if !ok {
			return nil
		}
		return TypingMsg{Typing: typing}
	}
}

// SearchCmd runs a first-page search. ctx is cancelled when the program exits.
func SearchCmd(ctx context.Context, o *search.Orchestrator, filters domain.SearchFilters) tea.Cmd {
	return func() tea.Msg {
		return SearchDoneMsg{Outcome: o.Search(ctx, filters)}
	}
}

// LoadMoreCmd fetches the next results page
func LoadMoreCmd(ctx context.Context, o *search.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		return LoadMoreDoneMsg{Loaded: o.LoadMore(ctx)}
	}
}

// LatestCmd loads the feed shown for an empty query
func LatestCmd(ctx context.Context, client domain.SearchClient) tea.Cmd {
	return func() tea.Msg {
		items, msg := search.Latest(ctx, client, search.DefaultLatestCount)
		return LatestLoadedMsg{Items: items, Err: msg}
	}
}

// LoadDetailsCmd runs the cache-then-network loader. A cached record arrives first as
// DetailsCachedMsg, whose follow-up command yields the final DetailsLoadedMsg.
func LoadDetailsCmd(ctx context.Context, l *details.Loader, id string) tea.Cmd {
	return func() tea.Msg {
		out := make(chan tea.Msg, 2)
		go func() {
			defer close(out)
			ctx, cancel := context.WithTimeout(ctx, detailsTimeout)
			defer cancel()

			res := l.Load(ctx, id, func(d *domain.MovieDetails) {
				out <- DetailsCachedMsg{ID: id, Details: d}
			})
			out <- DetailsLoadedMsg{ID: id, Result: res}
		}()
		return nextDetailsMsg(out)()
	}
}

func nextDetailsMsg(out <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-out
		if !ok {
			return nil
		}
		if cached, isCached := msg.(DetailsCachedMsg); isCached {
			cached.next = nextDetailsMsg(out)
			return cached
		}
		return msg
	}
}
