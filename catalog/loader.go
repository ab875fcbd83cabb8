// Package catalog supplies raw article records per language from a
// manifest of record files kept in a local directory, over HTTP, or in S3.
package catalog

import (
	"context"
	"errors"
	"io"

	"adam/types"
)

var (
	// ErrLanguageNotFound means the manifest has no files for a language
	ErrLanguageNotFound = errors.New("language not found")
	// ErrObjectNotFound means a store has no object with the requested name
	ErrObjectNotFound = errors.New("object not found")
)

// Loader supplies the catalog to the browse engine
type Loader interface {
	// ListLanguages returns the available language identifiers, sorted
	ListLanguages(ctx context.Context) ([]string, error)
	// LoadArticles returns every record for language in source order
	LoadArticles(ctx context.Context, language string) ([]types.Record, error)
}

// Store opens named catalog objects. Callers must close the reader.
type Store interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
