package types

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Record field names consumed from catalog sources. For tabular sources
// these are the header row names.
const (
	FieldID                = "id"
	FieldTitle             = "title"
	FieldSummary           = "summary"
	FieldTranslatedSummary = "translated_summary"
	FieldILRQuantized      = "ilr_quantized"
	FieldILRRange          = "ilr_range"
	FieldLink              = "link"
)

// Record is a single raw catalog row keyed by field name
type Record map[string]string

// Article is a single language-learning article. Optional fields are nil
// when absent, which is distinct from present-but-empty.
type Article struct {
	ID                *string `json:"id,omitempty"`
	Title             *string `json:"title,omitempty"`
	Summary           *string `json:"summary,omitempty"`
	TranslatedSummary *string `json:"translated_summary,omitempty"`
	ILRQuantized      *string `json:"ilr_quantized,omitempty"`
	ILRRange          *string `json:"ilr_range,omitempty"`
	Link              *string `json:"link,omitempty"`
}

// FromRecord builds an Article from a raw record.
// Empty id, level and range cells count as absent; text fields keep
// empty strings as present.
func FromRecord(r Record) *Article {
	return &Article{
		ID:                nonEmpty(r, FieldID),
		Title:             present(r, FieldTitle),
		Summary:           present(r, FieldSummary),
		TranslatedSummary: present(r, FieldTranslatedSummary),
		ILRQuantized:      nonEmpty(r, FieldILRQuantized),
		ILRRange:          nonEmpty(r, FieldILRRange),
		Link:              nonEmpty(r, FieldLink),
	}
}

// FromRecords converts records in order
func FromRecords(records []Record) []*Article {
	articles := make([]*Article, 0, len(records))
	for _, r := range records {
		articles = append(articles, FromRecord(r))
	}
	return articles
}

// Key returns the identity used when iterating a page of articles.
// It is the article ID when present, otherwise a synthetic key derived
// from the article's position and title. Keys are not meant for
// equality or deduplication.
func (a *Article) Key(index int) string {
	if a.ID != nil {
		return *a.ID
	}
	return "article-" + strconv.Itoa(index) + "-" + GenerateID(Value(a.Title))
}

// Value dereferences an optional field, treating absent as empty
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// String returns a pointer to s, for building articles in code
func String(s string) *string {
	return &s
}

// GenerateID creates a short stable hash of s
func GenerateID(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])[:16]
}

func present(r Record, field string) *string {
	v, ok := r[field]
	if !ok {
		return nil
	}
	return &v
}

func nonEmpty(r Record, field string) *string {
	v, ok := r[field]
	if !ok || v == "" {
		return nil
	}
	return &v
}
