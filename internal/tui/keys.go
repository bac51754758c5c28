package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	Enter    key.Binding
	Back     key.Binding
	NextPane key.Binding
	Focus    key.Binding

	// Search filters
	CycleType key.Binding

	// Sorting
	SortYear      key.Binding
	SortTitle     key.Binding
	SortRelevance key.Binding

	// Actions
	Favorite     key.Binding
	Favorites    key.Binding
	Theme        key.Binding
	RemoveRecent key.Binding
	ClearRecent  key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "h", "left"),
			key.WithHelp("esc", "back"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "query/year"),
		),
		Focus: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),

		CycleType: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "type"),
		),

		SortYear: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "sort year"),
		),
		SortTitle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "sort title"),
		),
		SortRelevance: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "relevance"),
		),

		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "favorites"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),
		RemoveRecent: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "forget search"),
		),
		ClearRecent: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear searches"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ListHelp returns the bindings shown in the footer of list views
func (k KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Enter, k.SortYear, k.SortTitle, k.SortRelevance, k.Favorite, k.Favorites, k.Theme, k.Quit}
}

// InputHelp returns the bindings shown while typing
func (k KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.CycleType, k.Enter, k.Back}
}

// DetailsHelp returns the bindings shown in the details view
func (k KeyMap) DetailsHelp() []key.Binding {
	return []key.Binding{k.Favorite, k.Back, k.Quit}
}
