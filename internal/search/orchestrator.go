// Package search drives paged keyword search: first-page fetches with supersession,
// incremental load-more with de-duplication, and the latest-titles feed.
package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// Outcome reports what a call to Search did
type Outcome int

const (
	// OutcomeCleared means the query was below the length floor and state was reset
	OutcomeCleared Outcome = iota
	// OutcomeSkipped means the filters matched the most recently started search
	OutcomeSkipped
	// OutcomeLoaded means the first page replaced the results
	OutcomeLoaded
	// OutcomeFailed means LastError was set and results were cleared
	OutcomeFailed
	// OutcomeCancelled means a newer search or Close superseded this one; nothing was committed
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCleared:
		return "cleared"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeLoaded:
		return "loaded"
	case OutcomeFailed:
		return "failed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// State is a snapshot of the orchestrator
type State struct {
	Filters            domain.SearchFilters // normalized filters of the active search
	Results            []domain.MovieSummary
	Page               int
	TotalPages         int
	TotalResults       int
	IsLoadingFirstPage bool
	IsFetchingMore     bool
	LastError          string
}

// HasMore reports whether another page exists
func (s State) HasMore() bool {
	return s.Page < s.TotalPages
}

// Orchestrator owns the search result list. It is safe for concurrent use.
//
// Every first-page search gets a generation number; a response is committed only if
// its generation is still current, so a superseded request is dropped even when the
// transport does not honour cancellation.
type Orchestrator struct {
	client  domain.SearchClient
	logger  *slog.Logger
	onError func(msg string)

	mu           sync.Mutex
	state        State
	lastKey      string
	hasKey       bool
	generation   uint64
	cancelSearch context.CancelFunc
	cancelMore   context.CancelFunc
	closed       bool

	// loadMoreLock refuses a second concurrent LoadMore rather than queueing it
	loadMoreLock sync.Mutex
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithErrorHandler registers a callback for first-page failures
func WithErrorHandler(fn func(msg string)) Option {
	return func(o *Orchestrator) {
		o.onError = fn
	}
}

// NewOrchestrator creates an orchestrator over client
func NewOrchestrator(client domain.SearchClient, logger *slog.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{client: client, logger: logger}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Search reacts to a change of filters and blocks until the first page is settled.
//
// Queries shorter than domain.MinQueryLength clear the state without touching the
// network. Filters whose key equals the most recently started search are a no-op.
// Anything else cancels the in-flight request and fetches page 1.
func (o *Orchestrator) Search(ctx context.Context, filters domain.SearchFilters) Outcome {
	filters = filters.Normalized()

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return OutcomeCancelled
	}

	if !filters.Searchable() {
		o.supersedeLocked()
		o.state = State{Filters: filters}
		o.lastKey, o.hasKey = "", false
		o.mu.Unlock()
		return OutcomeCleared
	}

	key := filters.Key()
	if o.hasKey && key == o.lastKey {
		o.mu.Unlock()
		return OutcomeSkipped
	}

	o.supersedeLocked()
	gen := o.generation
	searchCtx, cancel := context.WithCancel(ctx)
	o.cancelSearch = cancel
	o.lastKey, o.hasKey = key, true
	prev := o.state
	o.state.Filters = filters
	o.state.IsLoadingFirstPage = true
	o.state.IsFetchingMore = false
	o.state.LastError = ""
	o.mu.Unlock()

	o.logger.Debug("search started", "query", filters.Query, "type", string(filters.Type), "year", filters.Year)
	page, err := o.client.Search(searchCtx, filters, domain.FirstPage)

	o.mu.Lock()
	if gen != o.generation {
		o.mu.Unlock()
		cancel()
		o.logger.Debug("search superseded", "query", filters.Query)
		return OutcomeCancelled
	}
	o.cancelSearch = nil
	cancel()

	if searchCtx.Err() != nil {
		// The caller's context went away. Results still belong to prev, so its filters
		// come back with them, and the same key may run again later.
		o.state = prev
		o.state.IsLoadingFirstPage = false
		o.state.IsFetchingMore = false
		o.lastKey, o.hasKey = "", false
		o.mu.Unlock()
		return OutcomeCancelled
	}

	o.state.IsLoadingFirstPage = false
	var msg string
	switch {
	case err != nil:
		msg = domain.MsgFailedToSearch
		if errors.Is(err, domain.ErrRateLimited) {
			msg = domain.MsgRateLimited
		}
		o.logger.Error("search failed", "query", filters.Query, "error", err)
	case page.Failed():
		msg = page.ErrorMessage
		o.logger.Debug("search returned provider error", "query", filters.Query, "message", msg)
	}

	if msg != "" {
		o.state.Results = nil
		o.state.Page = 0
		o.state.TotalPages = 0
		o.state.TotalResults = 0
		o.state.LastError = msg
		onError := o.onError
		o.mu.Unlock()
		if onError != nil {
			onError(msg)
		}
		return OutcomeFailed
	}

	o.state.Results = page.Items
	o.state.Page = domain.FirstPage
	o.state.TotalPages = page.TotalPages
	o.state.TotalResults = page.TotalResults
	o.mu.Unlock()

	o.logger.Debug("search complete", "query", filters.Query, "results", len(page.Items), "pages", page.TotalPages)
	return OutcomeLoaded
}

// LoadMore fetches the next page and appends the items whose id is not already listed.
// It returns true if a page was merged. It refuses to start while the first page is
// loading, while another LoadMore runs, or when no further page exists. Failures are
// logged and swallowed; LastError is never touched.
func (o *Orchestrator) LoadMore(ctx context.Context) bool {
	if !o.loadMoreLock.TryLock() {
		return false
	}
	defer o.loadMoreLock.Unlock()

	o.mu.Lock()
	s := o.state
	if o.closed || !s.Filters.Searchable() || s.IsLoadingFirstPage || s.IsFetchingMore ||
		s.Page < domain.FirstPage || s.Page >= s.TotalPages {
		o.mu.Unlock()
		return false
	}
	gen := o.generation
	next := s.Page + 1
	filters := s.Filters
	moreCtx, cancel := context.WithCancel(ctx)
	o.cancelMore = cancel
	o.state.IsFetchingMore = true
	o.mu.Unlock()
	defer cancel()

	page, err := o.client.Search(moreCtx, filters, next)

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		return false
	}
	o.cancelMore = nil
	o.state.IsFetchingMore = false

	if err != nil || page.Failed() || moreCtx.Err() != nil {
		o.logger.Debug("load more failed", "query", filters.Query, "page", next, "error", err, "message", page.ErrorMessage)
		return false
	}

	o.state.Results = mergeUnique(o.state.Results, page.Items)
	o.state.Page = next
	if page.TotalPages > 0 {
		o.state.TotalPages = page.TotalPages
		o.state.TotalResults = page.TotalResults
	}
	o.logger.Debug("load more complete", "query", filters.Query, "page", next, "results", len(o.state.Results))
	return true
}

// State returns a snapshot; the Results slice is a copy
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.state
	if s.Results != nil {
		s.Results = append([]domain.MovieSummary(nil), s.Results...)
	}
	return s
}

// Close cancels any in-flight request. Later calls do nothing.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.supersedeLocked()
	o.closed = true
	o.state.IsLoadingFirstPage = false
}

// supersedeLocked invalidates every outstanding request. Callers hold o.mu.
func (o *Orchestrator) supersedeLocked() {
	o.generation++
	if o.cancelSearch != nil {
		o.cancelSearch()
		o.cancelSearch = nil
	}
	if o.cancelMore != nil {
		o.cancelMore()
		o.cancelMore = nil
	}
	o.state.IsFetchingMore = false
}

// mergeUnique appends the items of next whose id is not in current, keeping arrival order
func mergeUnique(current, next []domain.MovieSummary) []domain.MovieSummary {
	seen := make(map[string]struct{}, len(current)+len(next))
	merged := make([]domain.MovieSummary, 0, len(current)+len(next))
	for _, m := range current {
		seen[m.ID] = struct{}{}
		merged = append(merged, m)
	}
	for _, m := range next {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		merged = append(merged, m)
	}
	return merged
}
