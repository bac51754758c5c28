package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/details"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/input"
	"github.com/mmcdole/marquee/internal/recent"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/sorting"
	"github.com/mmcdole/marquee/internal/theme"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// View is the screen currently shown
type View int

const (
	ViewSearch View = iota
	ViewFavorites
	ViewDetails
)

// Focus is the widget receiving keys on the search view
type Focus int

const (
	FocusList Focus = iota
	FocusQuery
	FocusYear
)

// ChromeHeight is the lines taken by header, inputs, status and footer
const ChromeHeight = 6

type rowKind int

const (
	rowMovie rowKind = iota
	rowRecent
)

// row is one selectable line of a list view
type row struct {
	kind  rowKind
	query string
	movie domain.MovieSummary
}

// Services are the long-lived objects the model drives
type Services struct {
	Search    *search.Orchestrator
	Client    domain.SearchClient
	Details   *details.Loader
	Favorites *favorites.Manager
	Recent    *recent.Manager
	Theme     *theme.Manager
	Logger    *slog.Logger
}

// Options tune timing and appearance
type Options struct {
	Debounce    time.Duration
	TypingDelay time.Duration
	SystemDark  bool
	Sort        domain.SortMode
	After       input.AfterFunc // nil uses the runtime timer
}

// Model is the main Bubble Tea model for the application
type Model struct {
	svc    Services
	keys   KeyMap
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// Input plumbing
	debouncer *input.Debouncer[domain.SearchFilters]
	typing    *input.TypingIndicator
	queries   chan domain.SearchFilters
	typingCh  chan bool
	toggle    *sorting.Toggle

	// UI Components
	Query   textinput.Model
	Year    textinput.Model
	Filter  textinput.Model // favorites filter
	Spinner spinner.Model

	// UI state
	Screen     View
	prevView   View
	Focus      Focus
	filtering  bool
	MediaType  domain.MediaType
	Cursor     int
	offset     int
	IsTyping   bool
	systemDark bool

	// Search data
	State         search.State
	pendingSearch int
	Latest        []domain.MovieSummary
	LatestErr     string
	LatestLoading bool

	// Details data
	DetailsID      string
	Details        *domain.MovieDetails
	DetailsStale   bool
	DetailsErr     string
	DetailsLoading bool

	// Dimensions
	Width  int
	Height int
}

// NewModel creates a new application model
func NewModel(svc Services, opts Options) Model {
	logger := svc.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	q := textinput.New()
	q.Placeholder = "Search movies, series, episodes"
	q.Prompt = "Search: "
	q.CharLimit = 100
	q.Focus()

	y := textinput.New()
	y.Placeholder = "YYYY"
	y.Prompt = "Year: "
	y.CharLimit = 4
	y.Width = 6

	f := textinput.New()
	f.Placeholder = "filter favorites"
	f.Prompt = "/"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	queries := make(chan domain.SearchFilters, 8)
	typingCh := make(chan bool, 8)

	toggle := sorting.NewToggle()
	if opts.Sort != "" {
		toggle.Set(opts.Sort)
	}

	m := Model{
		svc:        svc,
		keys:       DefaultKeyMap(),
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		queries:    queries,
		typingCh:   typingCh,
		toggle:     toggle,
		Query:      q,
		Year:       y,
		Filter:     f,
		Spinner:    sp,
		Screen:     ViewSearch,
		Focus:      FocusQuery,
		systemDark: opts.SystemDark,

		LatestLoading: true,
	}

	m.debouncer = input.NewDebouncer(opts.Debounce, func(filters domain.SearchFilters) {
		select {
		case queries <- filters:
		default:
			logger.Warn("dropping debounced query", "query", filters.Query)
		}
	}, opts.After)

	m.typing = input.NewTypingIndicator(opts.TypingDelay, func(typing bool) {
		select {
		case typingCh <- typing:
		default:
		}
	}, opts.After)

	styles.Apply(svc.Theme.IsDark(opts.SystemDark))
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	// The first value passes the debouncer immediately
	m.debouncer.Push(m.currentFilters())

	return tea.Batch(
		textinput.Blink,
		m.Spinner.Tick,
		WaitForQueryCmd(m.queries),
		WaitForTypingCmd(m.typingCh),
		LatestCmd(m.ctx, m.svc.Client),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Query.Width = max(10, msg.Width/2)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case QueryDebouncedMsg:
		m.pendingSearch++
		return m, tea.Batch(
			SearchCmd(m.ctx, m.svc.Search, msg.Filters),
			WaitForQueryCmd(m.queries),
		)

	case TypingMsg:
		m.IsTyping = msg.Typing
		return m, WaitForTypingCmd(m.typingCh)

	case SearchDoneMsg:
		if m.pendingSearch > 0 {
			m.pendingSearch--
		}
		m.State = m.svc.Search.State()
		switch msg.Outcome {
		case search.OutcomeLoaded, search.OutcomeCleared, search.OutcomeFailed:
			m.Cursor, m.offset = 0, 0
		}
		return m, nil

	case LoadMoreDoneMsg:
		m.State = m.svc.Search.State()
		return m, nil

	case LatestLoadedMsg:
		m.LatestLoading = false
		m.Latest = msg.Items
		m.LatestErr = msg.Err
		return m, nil

	case DetailsCachedMsg:
		if msg.ID == m.DetailsID {
			m.Details = msg.Details
		}
		return m, msg.next

	case DetailsLoadedMsg:
		if msg.ID != m.DetailsID {
			return m, nil
		}
		m.DetailsLoading = false
		if msg.Result.Details != nil {
			m.Details = msg.Result.Details
		}
		m.DetailsStale = msg.Result.Stale
		m.DetailsErr = msg.Result.ErrorMessage
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	switch m.Screen {
	case ViewDetails:
		return m.handleDetailsKey(msg)
	case ViewFavorites:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleListKey(msg)
	}

	if key.Matches(msg, m.keys.CycleType) {
		m.MediaType = nextMediaType(m.MediaType)
		m.filtersChanged()
		return m, nil
	}

	if m.Focus != FocusList {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

// handleInputKey routes keys while the query or year input has focus
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextPane):
		if m.Focus == FocusQuery {
			m.setFocus(FocusYear)
		} else {
			m.setFocus(FocusQuery)
		}
		return m, nil

	case msg.Type == tea.KeyEsc, msg.Type == tea.KeyDown:
		m.setFocus(FocusList)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.svc.Recent.Add(m.Query.Value())
		m.setFocus(FocusList)
		return m, nil
	}

	before := m.currentFilters()
	var cmd tea.Cmd
	if m.Focus == FocusQuery {
		m.Query, cmd = m.Query.Update(msg)
	} else {
		m.Year, cmd = m.Year.Update(msg)
	}
	if m.currentFilters() != before {
		m.filtersChanged()
	}
	return m, cmd
}

// handleFilterKey routes keys while the favorites filter has focus
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter, tea.KeyDown:
		m.filtering = false
		m.Filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.Filter, cmd = m.Filter.Update(msg)
	m.Cursor, m.offset = 0, 0
	return m, cmd
}

// handleListKey handles navigation and actions on the search and favorites lists
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		} else if m.Screen == ViewSearch {
			m.setFocus(FocusQuery)
		}
		m.clampOffset()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.Cursor < len(rows)-1 {
			m.Cursor++
		}
		m.clampOffset()
		cmd := m.maybeLoadMore(rows)
		return m, cmd

	case key.Matches(msg, m.keys.Home):
		m.Cursor, m.offset = 0, 0
		return m, nil

	case key.Matches(msg, m.keys.End):
		m.Cursor = max(0, len(rows)-1)
		m.clampOffset()
		cmd := m.maybeLoadMore(rows)
		return m, cmd

	case key.Matches(msg, m.keys.Focus):
		if m.Screen == ViewFavorites {
			m.filtering = true
			return m, m.Filter.Focus()
		}
		m.setFocus(FocusQuery)
		return m, nil

	case key.Matches(msg, m.keys.NextPane):
		if m.Screen == ViewSearch {
			m.setFocus(FocusYear)
		}
		return m, nil

	case key.Matches(msg, m.keys.SortYear):
		m.toggle.ToggleYear()
		return m, nil

	case key.Matches(msg, m.keys.SortTitle):
		m.toggle.ToggleTitle()
		return m, nil

	case key.Matches(msg, m.keys.SortRelevance):
		m.toggle.SelectRelevance()
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.svc.Theme.Cycle()
		styles.Apply(m.svc.Theme.IsDark(m.systemDark))
		m.Spinner.Style = styles.SpinnerStyle
		return m, nil

	case key.Matches(msg, m.keys.Favorites):
		if m.Screen == ViewFavorites {
			m.Screen = ViewSearch
		} else {
			m.Screen = ViewFavorites
			m.Filter.SetValue("")
		}
		m.Cursor, m.offset = 0, 0
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.Screen == ViewFavorites {
			m.Screen = ViewSearch
			m.Cursor, m.offset = 0, 0
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearRecent):
		if m.Screen == ViewSearch {
			m.svc.Recent.Clear()
			m.clampCursor()
		}
		return m, nil
	}

	if m.Cursor >= len(rows) {
		return m, nil
	}
	selected := rows[m.Cursor]

	switch {
	case key.Matches(msg, m.keys.Enter):
		if selected.kind == rowRecent {
			m.Query.SetValue(selected.query)
			m.Query.CursorEnd()
			m.svc.Recent.Add(selected.query)
			m.filtersChanged()
			return m, nil
		}
		return m.openDetails(selected.movie)

	case key.Matches(msg, m.keys.Favorite):
		if selected.kind == rowMovie {
			m.svc.Favorites.Toggle(selected.movie)
			if m.Screen == ViewFavorites {
				m.clampCursor()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.RemoveRecent):
		if selected.kind == rowRecent {
			m.svc.Recent.Remove(selected.query)
			m.clampCursor()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Back):
		m.Screen = m.prevView
		m.DetailsID = ""
		return m, nil
	case key.Matches(msg, m.keys.Favorite):
		if m.Details != nil {
			m.svc.Favorites.Toggle(m.Details.Summary())
		}
		return m, nil
	}
	return m, nil
}

func (m Model) openDetails(movie domain.MovieSummary) (tea.Model, tea.Cmd) {
	m.prevView = m.Screen
	m.Screen = ViewDetails
	m.DetailsID = movie.ID
	m.Details = nil
	m.DetailsStale = false
	m.DetailsErr = ""
	m.DetailsLoading = true
	return m, LoadDetailsCmd(m.ctx, m.svc.Details, movie.ID)
}

// updateInputs forwards non-key messages (cursor blink) to the focused input
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.Screen == ViewFavorites && m.filtering:
		m.Filter, cmd = m.Filter.Update(msg)
	case m.Focus == FocusQuery:
		m.Query, cmd = m.Query.Update(msg)
	case m.Focus == FocusYear:
		m.Year, cmd = m.Year.Update(msg)
	}
	return m, cmd
}

// filtersChanged feeds the typing indicator and the debouncer
func (m Model) filtersChanged() {
	m.typing.Signal()
	m.debouncer.Push(m.currentFilters())
}

func (m Model) currentFilters() domain.SearchFilters {
	return domain.SearchFilters{
		Query: m.Query.Value(),
		Type:  m.MediaType,
		Year:  m.Year.Value(),
	}
}

func (m *Model) setFocus(f Focus) {
	m.Focus = f
	m.Query.Blur()
	m.Year.Blur()
	switch f {
	case FocusQuery:
		m.Query.Focus()
	case FocusYear:
		m.Year.Focus()
	}
}

// rows returns the selectable lines of the current list view
func (m Model) rows() []row {
	if m.Screen == ViewFavorites {
		favs := m.svc.Favorites.Filter(m.Filter.Value())
		rows := make([]row, len(favs))
		for i, f := range favs {
			rows[i] = row{kind: rowMovie, movie: f}
		}
		return rows
	}

	if m.State.Filters.Searchable() {
		sorted := sorting.Movies(m.State.Results, m.toggle.Mode())
		rows := make([]row, len(sorted))
		for i, mv := range sorted {
			rows[i] = row{kind: rowMovie, movie: mv}
		}
		return rows
	}

	var rows []row
	for _, q := range m.svc.Recent.Suggest(m.Query.Value()) {
		rows = append(rows, row{kind: rowRecent, query: q})
	}
	for _, mv := range m.Latest {
		rows = append(rows, row{kind: rowMovie, movie: mv})
	}
	return rows
}

// maybeLoadMore requests the next page once the cursor sits on the last result.
// IsFetchingMore is set locally until LoadMoreDoneMsg brings the orchestrator's state.
func (m *Model) maybeLoadMore(rows []row) tea.Cmd {
	if m.Screen != ViewSearch || len(rows) == 0 || m.Cursor < len(rows)-1 {
		return nil
	}
	if !m.State.HasMore() || m.State.IsFetchingMore {
		return nil
	}
	m.State.IsFetchingMore = true
	return LoadMoreCmd(m.ctx, m.svc.Search)
}

func (m *Model) listHeight() int {
	return max(1, m.Height-ChromeHeight)
}

func (m *Model) clampOffset() {
	h := m.listHeight()
	if m.Cursor < m.offset {
		m.offset = m.Cursor
	}
	if m.Cursor >= m.offset+h {
		m.offset = m.Cursor - h + 1
	}
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.Cursor >= n {
		m.Cursor = max(0, n-1)
	}
	m.clampOffset()
}

// quit stops timers and cancels in-flight requests
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.debouncer.Stop()
	m.typing.Stop()
	m.svc.Search.Close()
	m.cancel()
	return m, tea.Quit
}

// Searching reports whether a first-page search is outstanding
func (m Model) Searching() bool {
	return m.pendingSearch > 0
}

// SortMode returns the active sort mode
func (m Model) SortMode() domain.SortMode {
	return m.toggle.Mode()
}

// nextMediaType steps all -> movie -> series -> episode -> all
func nextMediaType(t domain.MediaType) domain.MediaType {
	types := domain.MediaTypes()
	if t == domain.MediaTypeAny {
		return types[0]
	}
	for i, mt := range types {
		if mt == t && i+1 < len(types) {
			return types[i+1]
		}
	}
	return domain.MediaTypeAny
}
