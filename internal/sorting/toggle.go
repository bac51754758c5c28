package sorting

import (
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// Toggle is the sort-mode state machine. Each axis remembers its last direction,
// so re-entering an axis resumes it instead of resetting.
type Toggle struct {
	mu        sync.Mutex
	mode      domain.SortMode
	lastYear  domain.SortMode
	lastTitle domain.SortMode
}

// NewToggle starts at relevance with year_desc and title_asc remembered
func NewToggle() *Toggle {
	return &Toggle{
		mode:      domain.SortRelevance,
		lastYear:  domain.SortYearDesc,
		lastTitle: domain.SortTitleAsc,
	}
}

// ToggleYear flips the year direction if a year mode is active, otherwise resumes it
func (t *Toggle) ToggleYear() domain.SortMode {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.mode.IsYear() {
		if t.mode == domain.SortYearDesc {
			t.mode = domain.SortYearAsc
		} else {
			t.mode = domain.SortYearDesc
		}
		t.lastYear = t.mode
	} else {
		t.mode = t.lastYear
	}
	return t.mode
}

// ToggleTitle is ToggleYear for the title axis
func (t *Toggle) ToggleTitle() domain.SortMode {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.mode.IsTitle() {
		if t.mode == domain.SortTitleAsc {
			t.mode = domain.SortTitleDesc
		} else {
			t.mode = domain.SortTitleAsc
		}
		t.lastTitle = t.mode
	} else {
		t.mode = t.lastTitle
	}
	return t.mode
}

// SelectRelevance switches to provider order. Remembered directions are kept.
func (t *Toggle) SelectRelevance() {
	t.mu.Lock()
	t.mode = domain.SortRelevance
	t.mu.Unlock()
}

// Set jumps straight to mode; a directional mode also becomes its axis' remembered direction
func (t *Toggle) Set(mode domain.SortMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mode = mode
	switch {
	case mode.IsYear():
		t.lastYear = mode
	case mode.IsTitle():
		t.lastTitle = mode
	}
}

// Mode returns the active sort mode
func (t *Toggle) Mode() domain.SortMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Directions returns the remembered year and title directions
func (t *Toggle) Directions() (year, title domain.SortMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastYear, t.lastTitle
}
