package tui

import (
	"fmt"
	"strings"

	"adam/ilrrange"
	"adam/session"
	"adam/types"
)

// View implements tea.Model interface
func (m Model) View() string {
	v := m.session.View()
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(TextTitle))
	b.WriteString("\n")

	b.WriteString(m.languageRow())
	b.WriteString("\n")
	b.WriteString(m.levelRow(v))
	b.WriteString("\n")
	b.WriteString(m.inputRow())
	b.WriteString("\n\n")

	b.WriteString(m.statusText(v))
	b.WriteString("\n\n")

	if !v.Loading {
		for _, a := range v.Articles {
			b.WriteString(m.formatArticle(a))
			b.WriteString("\n")
		}
	}

	// Pagination footer
	if !v.Loading && v.TotalMatches > 0 {
		b.WriteString(m.styles.Muted.Render(pageLabel(v)))
		b.WriteString("\n")
	}

	help := TextHelpSelect
	if m.isTextFocus() {
		help = TextHelpInput
	}
	b.WriteString(m.styles.Muted.Render(help))

	return m.styles.App.Render(b.String())
}

func pageLabel(v session.View) string {
	return fmt.Sprintf("Page %d of %d", v.CurrentPage, v.TotalPages)
}

// label renders a row label, marking the focused row
func (m Model) label(text string, f Focus) string {
	if m.focus == f {
		return m.styles.Focused.Render("› ") + m.styles.Label.Render(text)
	}
	return "  " + m.styles.Label.Render(text)
}

func (m Model) languageRow() string {
	row := m.label("Language", FocusLanguage)
	switch {
	case m.languagesErr != nil:
		return row + m.styles.Error.Render(fmt.Sprintf("❌ %v", m.languagesErr))
	case len(m.languages) == 0:
		return row + m.styles.Muted.Render(TextNoLanguages)
	}

	options := make([]string, len(m.languages))
	for i, lang := range m.languages {
		if i == m.languageIndex {
			options[i] = m.styles.Selected.Render(lang)
		} else {
			options[i] = m.styles.Option.Render(lang)
		}
	}
	return row + strings.Join(options, " ")
}

func (m Model) levelRow(v session.View) string {
	options := m.levelOptions(v)
	active := m.levelIndex(v)

	rendered := make([]string, len(options))
	for i, level := range options {
		if i == active {
			rendered[i] = m.styles.Selected.Render(level)
		} else {
			rendered[i] = m.styles.Option.Render(level)
		}
	}
	return m.label("Level", FocusLevel) + strings.Join(rendered, " ")
}

func (m Model) inputRow() string {
	row := m.label("Topic", FocusTopic) + m.inputs[inputTopic].View() + "\n" +
		m.label("Low", FocusLow) + m.inputs[inputLow].View() + "\n" +
		m.label("High", FocusHigh) + m.inputs[inputHigh].View()
	if m.boundErr != "" {
		row += "\n  " + m.styles.Error.Render(m.boundErr)
	}
	return row
}

// statusText returns the status line for the current session state
func (m Model) statusText(v session.View) string {
	switch v.State {
	case session.StateIdle:
		return m.styles.Muted.Render(TextSelectLanguage)
	case session.StateLoading:
		return m.spinner.View() + m.styles.Status.Render(fmt.Sprintf(" Loading %s articles...", v.Language))
	case session.StateError:
		errMsg := "Unknown error"
		if v.Err != nil {
			errMsg = v.Err.Error()
		}
		return m.styles.Error.Render(fmt.Sprintf("❌ Error: %s", errMsg))
	}

	if v.TotalMatches == 0 {
		return m.styles.Muted.Render(TextNoMatches)
	}
	status := m.styles.Status.Render(fmt.Sprintf("%s: %d matching articles", v.Language, v.TotalMatches))
	if v.RangeFailures > 0 {
		status += m.styles.Muted.Render(fmt.Sprintf(" (%d with unreadable ILR range excluded)", v.RangeFailures))
	}
	if m.prefsErr != nil {
		status += "\n" + m.styles.Error.Render(fmt.Sprintf("Preferences not saved: %v", m.prefsErr))
	}
	return status
}

// formatArticle renders one article card
func (m Model) formatArticle(a *types.Article) string {
	var b strings.Builder

	badge := ilrrange.NotAvailable
	if a.ILRQuantized != nil {
		badge = "ILR " + *a.ILRQuantized
	}
	b.WriteString(m.styles.Badge.Render(badge))
	b.WriteString(" ")
	b.WriteString(m.styles.CardTitle.Render(types.Value(a.Title)))
	b.WriteString("\n\n")

	b.WriteString(orDefault(a.Summary, TextNoSummary))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Muted.Render("ILR Range: " + ilrrange.Display(a.ILRRange)))
	b.WriteString("\n\n")

	b.WriteString(orDefault(a.TranslatedSummary, TextNoTranslation))

	if a.Link != nil {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Link.Render(*a.Link))
	}

	card := m.styles.Card
	if m.width > 4 {
		card = card.Width(m.width - 4)
	}
	return card.Render(b.String())
}

func orDefault(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
