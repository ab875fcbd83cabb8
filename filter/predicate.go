// Package filter selects the articles that match the active browse criteria.
package filter

import (
	"strings"

	"adam/ilrrange"
	"adam/types"
)

// Criteria is the active set of filters. The zero value matches everything.
type Criteria struct {
	// Topic is a case-insensitive substring of title, summary or
	// translated summary. Empty matches all.
	Topic string `json:"topic"`
	// Level is compared exactly against the article's quantized ILR level.
	// Empty means no level filter.
	Level string `json:"level"`
	// LowBound and HighBound constrain the article's ILR range. Either may
	// be unset.
	LowBound  *float64 `json:"low_bound,omitempty"`
	HighBound *float64 `json:"high_bound,omitempty"`
}

// HasBounds reports whether a range filter is active
func (c Criteria) HasBounds() bool {
	return c.LowBound != nil || c.HighBound != nil
}

// ParseFunc parses a raw ILR range
type ParseFunc func(raw string) (ilrrange.Range, error)

// Matches reports whether an article satisfies every predicate in c
func Matches(a *types.Article, c Criteria) bool {
	return MatchesWith(a, c, ilrrange.Parse)
}

// MatchesWith is Matches with a caller-supplied range parser
func MatchesWith(a *types.Article, c Criteria, parse ParseFunc) bool {
	return matchesTopic(a, c.Topic) && matchesLevel(a, c.Level) && matchesRange(a, c, parse)
}

func matchesTopic(a *types.Article, topic string) bool {
	if topic == "" {
		return true
	}
	needle := strings.ToLower(topic)
	for _, field := range []*string{a.Title, a.Summary, a.TranslatedSummary} {
		if strings.Contains(strings.ToLower(types.Value(field)), needle) {
			return true
		}
	}
	return false
}

func matchesLevel(a *types.Article, level string) bool {
	if level == "" {
		return true
	}
	return a.ILRQuantized != nil && *a.ILRQuantized == level
}

// matchesRange excludes an article with an unparseable range under an
// active range filter, but keeps an article that has no range at all.
func matchesRange(a *types.Article, c Criteria, parse ParseFunc) bool {
	if !c.HasBounds() || a.ILRRange == nil {
		return true
	}
	r, err := parse(*a.ILRRange)
	if err != nil {
		return false
	}
	if c.LowBound != nil && r.Low < *c.LowBound {
		return false
	}
	if c.HighBound != nil && r.High > *c.HighBound {
		return false
	}
	return true
}
