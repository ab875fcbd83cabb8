package tui

import (
	"context"

	"adam/catalog"
	"adam/config"
	"adam/prefs"
	"adam/session"

	tea "github.com/charmbracelet/bubbletea"
)

// listLanguages creates a command to fetch the language list
func listLanguages(loader catalog.Loader) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.FetchTimeout)
		defer cancel()

		langs, err := loader.ListLanguages(ctx)
		return LanguagesMsg{Languages: langs, Err: err}
	}
}

// loadArticles creates a command to fetch the records of a language
func loadArticles(loader catalog.Loader, token session.Token, language string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.FetchTimeout)
		defer cancel()

		records, err := loader.LoadArticles(ctx, language)
		return LoadedMsg{Token: token, Language: language, Records: records, Err: err}
	}
}

// savePrefs creates a command to persist preferences
func savePrefs(path string, p prefs.Preferences) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return PrefsSavedMsg{Err: prefs.Save(path, p)}
	}
}
