package tui

import (
	"adam/session"
	"adam/types"
)

// LanguagesMsg carries the language list
type LanguagesMsg struct {
	Languages []string
	Err       error
}

// LoadedMsg is sent when a catalog load finishes. Token ties it to the
// request that started it.
type LoadedMsg struct {
	Token    session.Token
	Language string
	Records  []types.Record
	Err      error
}

// PrefsSavedMsg reports the outcome of persisting preferences
type PrefsSavedMsg struct {
	Err error
}
