package tui

// UI Text Constants
const (
	TextTitle            = "ADAM Article Browser"
	TextSelectLanguage   = "Select a Language"
	TextNoLanguages      = "No languages available"
	TextAllLevels        = "All"
	TextNoSummary        = "No summary available"
	TextNoTranslation    = "No translated summary available"
	TextNoMatches        = "No articles match the current filters"
	TextTopicPlaceholder = "topic"
	TextLowPlaceholder   = "low"
	TextHighPlaceholder  = "high"
	TextInvalidLow       = "Low bound is not a number."
	TextInvalidHigh      = "High bound is not a number."

	// Footer
	TextHelpSelect = "←/→ select | enter load | tab next field | [/] or pgup/pgdn page | ctrl+t theme | q quit"
	TextHelpInput  = "type to filter | tab next field | pgup/pgdn page | ctrl+t theme | esc quit"
)
