package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"adam/config"
	"adam/logging"
	"adam/metrics"
	"adam/types"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Manifest maps a language to its record files, in load order
type Manifest map[string][]string

// ManifestLoader reads the manifest and record files from a Store
type ManifestLoader struct {
	store        Store
	manifestName string
	source       string
	concurrency  int
	logger       *zap.Logger
}

// ManifestOption configures a ManifestLoader
type ManifestOption func(*ManifestLoader)

// WithManifestName overrides config.ManifestName
func WithManifestName(name string) ManifestOption {
	return func(l *ManifestLoader) {
		if name != "" {
			l.manifestName = name
		}
	}
}

// WithSource labels load metrics, e.g. "dir", "http" or "s3"
func WithSource(source string) ManifestOption {
	return func(l *ManifestLoader) { l.source = source }
}

// WithConcurrency bounds parallel record file fetches
func WithConcurrency(n int) ManifestOption {
	return func(l *ManifestLoader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithLoaderLogger sets the logger
func WithLoaderLogger(logger *zap.Logger) ManifestOption {
	return func(l *ManifestLoader) { l.logger = logging.OrNop(logger) }
}

// NewManifestLoader creates a loader over store
func NewManifestLoader(store Store, opts ...ManifestOption) *ManifestLoader {
	l := &ManifestLoader{
		store:        store,
		manifestName: config.ManifestName,
		source:       "store",
		concurrency:  config.MaxConcurrentFetches,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Manifest fetches and decodes the manifest
func (l *ManifestLoader) Manifest(ctx context.Context) (Manifest, error) {
	rc, err := l.store.Open(ctx, l.manifestName)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", l.manifestName, err)
	}
	defer rc.Close()

	var m Manifest
	if err := json.NewDecoder(rc).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", l.manifestName, err)
	}
	return m, nil
}

// ListLanguages returns the manifest's languages, sorted
func (l *ManifestLoader) ListLanguages(ctx context.Context) ([]string, error) {
	m, err := l.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	langs := make([]string, 0, len(m))
	for lang := range m {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs, nil
}

// LoadArticles fetches every file listed for language concurrently and
// concatenates their records in manifest order
func (l *ManifestLoader) LoadArticles(ctx context.Context, language string) ([]types.Record, error) {
	start := time.Now()
	records, err := l.loadArticles(ctx, language)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordLoad(l.source, status, time.Since(start).Seconds())
	return records, err
}

func (l *ManifestLoader) loadArticles(ctx context.Context, language string) ([]types.Record, error) {
	m, err := l.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	files := m[language]
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found for %s: %w", language, ErrLanguageNotFound)
	}

	parts := make([][]types.Record, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for i, name := range files {
		g.Go(func() error {
			recs, err := l.loadFile(gctx, name)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", name, err)
			}
			parts[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []types.Record
	for i, part := range parts {
		l.logger.Debug("Loaded record file", zap.String("language", language), zap.String("file", files[i]), zap.Int("records", len(part)))
		records = append(records, part...)
	}
	return records, nil
}

func (l *ManifestLoader) loadFile(ctx context.Context, name string) ([]types.Record, error) {
	rc, err := l.store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return DecodeFile(name, rc)
}
