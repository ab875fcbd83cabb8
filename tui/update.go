package tui

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"adam/prefs"
	"adam/session"
	"adam/types"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case LanguagesMsg:
		return m.handleLanguages(msg)
	case LoadedMsg:
		return m.handleLoaded(msg)
	case PrefsSavedMsg:
		m.prefsErr = msg.Err
		if msg.Err != nil {
			m.logger.Warn("Failed to save preferences", zap.Error(msg.Err))
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other widget messages
	if m.isTextFocus() {
		return m.updateInput(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+t":
		return m.toggleDarkMode()
	case "tab":
		return m.moveFocus(1)
	case "shift+tab":
		return m.moveFocus(-1)
	case "pgdown":
		return m.advance(1)
	case "pgup":
		return m.advance(-1)
	}

	if m.isTextFocus() {
		return m.updateInput(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "]":
		return m.advance(1)
	case "[":
		return m.advance(-1)
	case "left", "h":
		return m.cycle(-1)
	case "right", "l":
		return m.cycle(1)
	case "enter":
		if m.focus == FocusLanguage {
			return m.startLoad()
		}
	}
	return m, nil
}

// handleLanguages stores the language list
func (m Model) handleLanguages(msg LanguagesMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.languagesErr = msg.Err
		m.logger.Error("Failed to list languages", zap.Error(msg.Err))
		return m, nil
	}
	m.languages = msg.Languages
	m.languagesErr = nil
	if m.languageIndex >= len(m.languages) {
		m.languageIndex = 0
	}
	return m, nil
}

// handleLoaded hands a load result to the session, which drops stale ones
func (m Model) handleLoaded(msg LoadedMsg) (tea.Model, tea.Cmd) {
	var err error
	if msg.Err != nil {
		err = m.session.FailLoad(msg.Token, msg.Err)
	} else {
		err = m.session.CompleteLoad(msg.Token, types.FromRecords(msg.Records))
	}

	switch {
	case errors.Is(err, session.ErrStaleLoad):
		m.logger.Debug("Discarded stale load", zap.String("language", msg.Language))
		return m, nil
	case msg.Err != nil:
		m.logger.Error("Failed to load articles", zap.String("language", msg.Language), zap.Error(msg.Err))
		return m, nil
	}

	// Inputs may have been edited while the load was pending
	m.applyCriteria()
	return m, nil
}

// startLoad begins loading the highlighted language
func (m Model) startLoad() (tea.Model, tea.Cmd) {
	language := m.SelectedLanguage()
	if language == "" {
		return m, nil
	}
	token := m.session.BeginLoad(language)
	return m, tea.Batch(loadArticles(m.loader, token, language), m.spinner.Tick)
}

// cycle moves the language or level selection
func (m Model) cycle(delta int) (tea.Model, tea.Cmd) {
	switch m.focus {
	case FocusLanguage:
		if n := len(m.languages); n > 0 {
			m.languageIndex = (m.languageIndex + delta + n) % n
		}
	case FocusLevel:
		v := m.session.View()
		if v.Loading {
			return m, nil
		}
		options := m.levelOptions(v)
		next := (m.levelIndex(v) + delta + len(options)) % len(options)
		level := ""
		if next > 0 {
			level = options[next]
		}
		m.setLevel(level)
	}
	return m, nil
}

// advance changes page; moves past either end are no-ops
func (m Model) advance(delta int) (tea.Model, tea.Cmd) {
	if _, err := m.session.Advance(delta); err != nil && !errors.Is(err, session.ErrLoading) {
		m.logger.Warn("Failed to change page", zap.Error(err))
	}
	return m, nil
}

// moveFocus cycles focus through the controls
func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	n := int(focusCount)
	m.focus = Focus((int(m.focus) + delta + n) % n)

	var cmd tea.Cmd
	for i := range m.inputs {
		if Focus(i)+FocusTopic == m.focus {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, cmd
}

// updateInput forwards msg to the focused input and recomputes on change
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	i := int(m.focus - FocusTopic)
	before := m.inputs[i].Value()

	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)
	if m.inputs[i].Value() != before {
		m.applyCriteria()
	}
	return m, cmd
}

// toggleDarkMode flips the theme and persists it
func (m Model) toggleDarkMode() (tea.Model, tea.Cmd) {
	m.dark = !m.dark
	m.styles = NewStyles(m.dark)
	m.spinner.Style = m.styles.Spinner
	m.applyInputStyles()
	return m, savePrefs(m.prefsPath, prefs.Preferences{DarkMode: m.dark})
}

// applyCriteria pushes the topic and bound inputs into the session,
// keeping the session's current level
func (m *Model) applyCriteria() {
	v := m.session.View()
	if v.Loading {
		return
	}

	criteria := v.Criteria
	criteria.Topic = m.inputs[inputTopic].Value()

	var errs []string
	var err error
	if criteria.LowBound, err = parseBound(m.inputs[inputLow].Value()); err != nil {
		errs = append(errs, TextInvalidLow)
	}
	if criteria.HighBound, err = parseBound(m.inputs[inputHigh].Value()); err != nil {
		errs = append(errs, TextInvalidHigh)
	}
	m.boundErr = strings.Join(errs, " ")

	if err := m.session.SetCriteria(criteria); err != nil && !errors.Is(err, session.ErrLoading) {
		m.logger.Warn("Failed to apply criteria", zap.Error(err))
	}
}

func (m *Model) setLevel(level string) {
	if err := m.session.SetLevel(level); err != nil && !errors.Is(err, session.ErrLoading) {
		m.logger.Warn("Failed to set level", zap.Error(err))
	}
}

// parseBound reads a bound input. Blank clears the bound; text that is
// not a finite number also clears it and reports an error.
func parseBound(text string) (*float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, strconv.ErrRange
	}
	return &f, nil
}
