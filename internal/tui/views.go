package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// View renders the current screen
func (m Model) View() string {
	if m.Width == 0 {
		return "Loading..."
	}

	switch m.Screen {
	case ViewDetails:
		return m.renderDetails()
	case ViewFavorites:
		return m.renderFavorites()
	default:
		return m.renderSearch()
	}
}

func (m Model) renderHeader(title string) string {
	parts := []string{styles.TitleStyle.Render(title)}
	if m.Screen == ViewSearch {
		parts = append(parts, styles.HighlightStyle.Render(m.MediaType.String()))
	}
	parts = append(parts,
		styles.SubtitleStyle.Render("sort: "+m.SortMode().String()),
		styles.DimStyle.Render("theme: "+string(m.svc.Theme.Preference())),
	)
	if m.IsTyping {
		parts = append(parts, styles.DimStyle.Render("typing…"))
	} else if m.Searching() {
		parts = append(parts, m.Spinner.View()+styles.DimStyle.Render(" searching"))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.renderHeader("marquee"))
	b.WriteString("\n")

	queryPrompt, yearPrompt := styles.PromptStyle, styles.PromptStyle
	switch m.Focus {
	case FocusQuery:
		queryPrompt = styles.FocusedPrompt
	case FocusYear:
		yearPrompt = styles.FocusedPrompt
	}
	m.Query.PromptStyle = queryPrompt
	m.Year.PromptStyle = yearPrompt
	b.WriteString(m.Query.View() + "  " + m.Year.View())
	b.WriteString("\n\n")

	rows := m.rows()
	switch {
	case m.State.LastError != "" && m.State.Filters.Searchable():
		b.WriteString(styles.ErrorStyle.Render(m.State.LastError))
		b.WriteString("\n")
	case len(rows) == 0 && m.State.Filters.Searchable() && !m.Searching() && !m.State.IsLoadingFirstPage:
		b.WriteString(styles.DimStyle.Render(domain.MsgNoResults))
		b.WriteString("\n")
	case !m.State.Filters.Searchable() && m.LatestLoading:
		b.WriteString(styles.DimStyle.Render(m.Spinner.View() + " Loading latest titles..."))
		b.WriteString("\n")
	case !m.State.Filters.Searchable() && m.LatestErr != "":
		b.WriteString(styles.ErrorStyle.Render(m.LatestErr))
		b.WriteString("\n")
	}

	b.WriteString(m.renderRows(rows))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	if m.Focus == FocusList {
		b.WriteString(renderHelp(m.keys.ListHelp()))
	} else {
		b.WriteString(renderHelp(m.keys.InputHelp()))
	}
	return b.String()
}

func (m Model) renderFavorites() string {
	var b strings.Builder
	b.WriteString(m.renderHeader(fmt.Sprintf("Favorites (%d)", m.svc.Favorites.Count())))
	b.WriteString("\n")
	if m.filtering || m.Filter.Value() != "" {
		b.WriteString(m.Filter.View())
	}
	b.WriteString("\n\n")

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString(styles.DimStyle.Render(domain.MsgNoFavorites))
		b.WriteString("\n")
	}
	b.WriteString(m.renderRows(rows))
	b.WriteString("\n\n")
	b.WriteString(renderHelp(m.keys.ListHelp()))
	return b.String()
}

// renderRows draws the visible window of rows, inserting section labels on the empty-query view
func (m Model) renderRows(rows []row) string {
	height := max(1, m.Height-ChromeHeight)
	end := min(len(rows), m.offset+height)

	var lines []string
	prevKind := rowKind(-1)
	for i := m.offset; i < end; i++ {
		r := rows[i]
		if m.Screen == ViewSearch && !m.State.Filters.Searchable() && r.kind != prevKind {
			section := "Latest"
			if r.kind == rowRecent {
				section = "Recent searches"
			}
			lines = append(lines, styles.SectionStyle.Render(section))
		}
		prevKind = r.kind
		lines = append(lines, m.renderRow(r, i == m.Cursor && m.Focus == FocusList))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(r row, selected bool) string {
	width := max(20, m.Width-4)

	var text string
	if r.kind == rowRecent {
		text = "↺ " + r.query
	} else {
		mark := "  "
		if m.svc.Favorites.IsFavorite(r.movie.ID) {
			mark = styles.FavoriteChar + " "
		}
		meta := r.movie.Year
		if r.movie.Type != domain.MediaTypeMovie && r.movie.Type != domain.MediaTypeAny {
			meta += " · " + r.movie.Type.String()
		}
		title := styles.Truncate(r.movie.Title, width-lipgloss.Width(meta)-6)
		text = mark + title + "  " + meta
	}

	if selected {
		return styles.SelectedItemStyle.Width(width).Render(text)
	}
	return styles.NormalItemStyle.Render(text)
}

func (m Model) renderStatus() string {
	s := m.State
	if !s.Filters.Searchable() || len(s.Results) == 0 {
		return ""
	}
	status := fmt.Sprintf("%d of %d results · page %d/%d", len(s.Results), s.TotalResults, s.Page, s.TotalPages)
	if s.IsFetchingMore {
		status += " · " + m.Spinner.View() + " loading more"
	}
	return styles.DimStyle.Render(status)
}

func (m Model) renderDetails() string {
	var b strings.Builder

	if m.DetailsStale {
		b.WriteString(styles.BannerStyle.Render(domain.MsgOffline))
		b.WriteString("\n")
	}

	d := m.Details
	switch {
	case d == nil && m.DetailsLoading:
		b.WriteString(m.Spinner.View() + " Loading details...")
		b.WriteString("\n\n")
		b.WriteString(renderHelp(m.keys.DetailsHelp()))
		return b.String()
	case d == nil:
		msg := m.DetailsErr
		if msg == "" {
			msg = domain.MsgFailedToLoad
		}
		b.WriteString(styles.ErrorStyle.Render(msg))
		b.WriteString("\n\n")
		b.WriteString(renderHelp(m.keys.DetailsHelp()))
		return b.String()
	}

	width := max(30, m.Width-8)
	var body []string

	title := d.Title
	if m.svc.Favorites.IsFavorite(d.ID) {
		title = styles.FavoriteChar + " " + title
	}
	body = append(body, styles.TitleStyle.Render(title))

	meta := []string{d.Year, d.Type.String()}
	if d.Runtime != "" {
		meta = append(meta, d.Runtime)
	}
	if d.Released != "" {
		meta = append(meta, "released "+d.Released)
	}
	body = append(body, styles.SubtitleStyle.Render(strings.Join(meta, " · ")))

	if rating, ok := d.IMDbRating(); ok {
		body = append(body, styles.AccentStyle.Render("IMDb "+domain.FormatRatingWithReviews(rating)))
	}
	for _, r := range d.Ratings {
		if r.Source != domain.IMDbSource {
			body = append(body, styles.DimStyle.Render(r.Source+": "+r.Value))
		}
	}

	if genres := d.GenreList(); len(genres) > 0 {
		body = append(body, "", label("Genre")+strings.Join(genres, ", "))
	}
	if d.Director != "" {
		body = append(body, label("Director")+d.Director)
	}
	if actors := d.ActorList(domain.DefaultActorLimit); len(actors) > 0 {
		body = append(body, label("Cast")+strings.Join(actors, ", "))
	}
	if d.Plot != "" {
		body = append(body, "", lipgloss.NewStyle().Width(width-4).Render(d.Plot))
	}
	if m.DetailsLoading {
		body = append(body, "", styles.DimStyle.Render(m.Spinner.View()+" refreshing"))
	}

	b.WriteString(styles.DetailsPanel.Width(width).Render(strings.Join(body, "\n")))
	b.WriteString("\n")
	b.WriteString(renderHelp(m.keys.DetailsHelp()))
	return b.String()
}

func label(s string) string {
	return styles.SubtitleStyle.Render(s + ": ")
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
