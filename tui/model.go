package tui

import (
	"slices"

	"adam/catalog"
	"adam/filter"
	"adam/prefs"
	"adam/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Focus identifies the control receiving keyboard input
type Focus int

const (
	FocusLanguage Focus = iota
	FocusLevel
	FocusTopic
	FocusLow
	FocusHigh
	focusCount
)

// Input slots in Model.inputs
const (
	inputTopic = iota
	inputLow
	inputHigh
)

// Options configure a Model
type Options struct {
	Engine    *filter.Engine
	Logger    *zap.Logger
	Prefs     prefs.Preferences
	PrefsPath string
}

// Model is the browser state. Catalog data and criteria live in the
// session manager; the model only holds widget state.
type Model struct {
	loader  catalog.Loader
	session *session.Manager
	logger  *zap.Logger

	languages     []string
	languageIndex int
	languagesErr  error

	focus   Focus
	inputs  [3]textinput.Model
	spinner spinner.Model

	// boundErr is set while a bound input does not parse
	boundErr  string
	dark      bool
	prefsPath string
	prefsErr  error
	styles    Styles
	width     int
}

// NewModel creates a browser over loader
func NewModel(loader catalog.Loader, opts Options) Model {
	m := Model{
		loader:    loader,
		session:   session.NewManager(opts.Engine, opts.Logger),
		logger:    opts.Logger,
		dark:      opts.Prefs.DarkMode,
		prefsPath: opts.PrefsPath,
		focus:     FocusLanguage,
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	m.styles = NewStyles(m.dark)

	placeholders := [3]string{TextTopicPlaceholder, TextLowPlaceholder, TextHighPlaceholder}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.Width = 20
		if i != inputTopic {
			ti.CharLimit = 16
			ti.Width = 8
		}
		m.inputs[i] = ti
	}
	m.applyInputStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = m.styles.Spinner
	m.spinner = sp

	return m
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		listLanguages(m.loader),
		textinput.Blink,
		m.spinner.Tick,
	)
}

// Session exposes the underlying session manager
func (m Model) Session() *session.Manager {
	return m.session
}

// Focused returns the control receiving input
func (m Model) Focused() Focus {
	return m.focus
}

// DarkMode reports whether the dark theme is active
func (m Model) DarkMode() bool {
	return m.dark
}

// SelectedLanguage returns the highlighted language, or "" before the
// language list arrives
func (m Model) SelectedLanguage() string {
	if len(m.languages) == 0 {
		return ""
	}
	return m.languages[m.languageIndex]
}

// levelOptions returns "All" followed by the levels of the loaded set
func (m Model) levelOptions(v session.View) []string {
	return append([]string{TextAllLevels}, v.Levels...)
}

// levelIndex locates the active level in levelOptions
func (m Model) levelIndex(v session.View) int {
	if v.Criteria.Level == "" {
		return 0
	}
	if i := slices.Index(v.Levels, v.Criteria.Level); i >= 0 {
		return i + 1
	}
	return 0
}

// isTextFocus reports whether a text input has focus
func (m Model) isTextFocus() bool {
	return m.focus >= FocusTopic
}

func (m *Model) applyInputStyles() {
	for i := range m.inputs {
		m.inputs[i].TextStyle = m.styles.Input
		m.inputs[i].PlaceholderStyle = m.styles.Muted
	}
}
