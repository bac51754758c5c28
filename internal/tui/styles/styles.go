package styles

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a theme is built from
type Palette struct {
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Subtle     lipgloss.Color
	Dim        lipgloss.Color
	SelectedBg lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
}

// Dark and Light palettes
var (
	DarkPalette = Palette{
		Accent:     lipgloss.Color("#F5C518"),
		Text:       lipgloss.Color("#F9FAFB"),
		Subtle:     lipgloss.Color("#9CA3AF"),
		Dim:        lipgloss.Color("#6B7280"),
		SelectedBg: lipgloss.Color("#374151"),
		Error:      lipgloss.Color("#EF4444"),
		Success:    lipgloss.Color("#10B981"),
		Warning:    lipgloss.Color("#F59E0B"),
	}

	LightPalette = Palette{
		Accent:     lipgloss.Color("#B45309"),
		Text:       lipgloss.Color("#111827"),
		Subtle:     lipgloss.Color("#4B5563"),
		Dim:        lipgloss.Color("#9CA3AF"),
		SelectedBg: lipgloss.Color("#E5E7EB"),
		Error:      lipgloss.Color("#B91C1C"),
		Success:    lipgloss.Color("#047857"),
		Warning:    lipgloss.Color("#B45309"),
	}
)

// Text styles
var (
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	WarningStyle   lipgloss.Style
	HighlightStyle lipgloss.Style
)

// List item styles
var (
	SelectedItemStyle lipgloss.Style
	NormalItemStyle   lipgloss.Style
	SectionStyle      lipgloss.Style
)

// Input, help and panel styles
var (
	PromptStyle   lipgloss.Style
	FocusedPrompt lipgloss.Style
	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style
	DetailsPanel  lipgloss.Style
	BannerStyle   lipgloss.Style
	SpinnerStyle  lipgloss.Style
)

// FavoriteChar marks favorited rows
const FavoriteChar = "★"

// SpinnerFrames animate plain-terminal progress outside the TUI
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func init() {
	Apply(true)
}

// Apply rebuilds every style from the dark or light palette
func Apply(dark bool) {
	p := LightPalette
	if dark {
		p = DarkPalette
	}

	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(p.Subtle)

	DimStyle = lipgloss.NewStyle().
		Foreground(p.Dim)

	AccentStyle = lipgloss.NewStyle().
		Foreground(p.Accent)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Success)

	WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning)

	HighlightStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Accent).
		Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.SelectedBg).
		Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
		Foreground(p.Subtle).
		Padding(0, 1)

	SectionStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true).
		MarginTop(1)

	PromptStyle = lipgloss.NewStyle().
		Foreground(p.Dim)

	FocusedPrompt = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(p.Accent)

	HelpDescStyle = lipgloss.NewStyle().
		Foreground(p.Dim)

	DetailsPanel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(1, 2)

	BannerStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Warning).
		Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().
		Foreground(p.Accent)
}

// Truncate shortens s to width display cells, adding an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:width])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
