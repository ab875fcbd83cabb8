package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorPrimary   = "#7D56F4"
	colorSuccess   = "#04B575"
	colorError     = "#FF0000"
	colorInfo      = "#626262"
	colorHighlight = "#FAFAFA"
	colorBorder    = "#874BFD"

	colorDarkBackground = "#1E1E2E"
	colorDarkText       = "#CDD6F4"
	colorDarkInfo       = "#9399B2"
	colorLightText      = "#1E1E2E"
)

// Styles for the TUI application
type Styles struct {
	App       lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	Option    lipgloss.Style
	Selected  lipgloss.Style
	Focused   lipgloss.Style
	Input     lipgloss.Style
	Muted     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	Badge     lipgloss.Style
	Link      lipgloss.Style
	Spinner   lipgloss.Style
}

// NewStyles builds the light or dark theme
func NewStyles(dark bool) Styles {
	text, info := colorLightText, colorInfo
	if dark {
		text, info = colorDarkText, colorDarkInfo
	}

	s := Styles{
		App: lipgloss.NewStyle().
			Foreground(lipgloss.Color(text)).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)).
			MarginTop(1).
			MarginBottom(1),

		Label: lipgloss.NewStyle().
			Bold(true).
			Width(8),

		Option: lipgloss.NewStyle().
			Foreground(lipgloss.Color(info)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorHighlight)).
			Background(lipgloss.Color(colorPrimary)).
			Padding(0, 1),

		Focused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)),

		Input: lipgloss.NewStyle().
			Foreground(lipgloss.Color(text)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(info)),

		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1).
			MarginBottom(1),

		CardTitle: lipgloss.NewStyle().
			Bold(true),

		Badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorHighlight)).
			Background(lipgloss.Color(colorSuccess)).
			Padding(0, 1),

		Link: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Underline(true),

		Spinner: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)),
	}

	if dark {
		s.App = s.App.Background(lipgloss.Color(colorDarkBackground))
	}
	return s
}
