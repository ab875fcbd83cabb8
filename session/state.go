package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"adam/catalog"
	"adam/config"
	"adam/filter"
	"adam/logging"
	"adam/pagination"
	"adam/types"

	"go.uber.org/zap"
)

// State represents the browse session state machine
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

var (
	// ErrLoading is returned by mutators while a catalog load is pending
	ErrLoading = errors.New("catalog is loading")
	// ErrStaleLoad is returned when a load result belongs to a superseded request
	ErrStaleLoad = errors.New("load superseded by a newer request")
)

// Token identifies one load request. Only the latest token may complete.
type Token uint64

// LoadError is a failed catalog load for a language
type LoadError struct {
	Language string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Language, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// View is a read-only projection of the session, refreshed after every
// mutating operation
type View struct {
	Language      string
	State         State
	Loading       bool
	Articles      []*types.Article
	FirstIndex    int
	CurrentPage   int
	TotalPages    int
	TotalMatches  int
	Levels        []string
	Criteria      filter.Criteria
	RangeFailures int
	Err           error
}

// HasPrev reports whether the previous page is reachable
func (v View) HasPrev() bool { return v.CurrentPage > 1 }

// HasNext reports whether the next page is reachable
func (v View) HasNext() bool { return v.CurrentPage < v.TotalPages }

// Manager holds the browse session with thread-safe access. Every
// criteria change and every article-set replacement triggers one full
// recompute and moves back to page 1.
type Manager struct {
	mu sync.RWMutex

	currentState State
	language     string
	generation   Token
	lastErr      error

	// Data
	articles []*types.Article
	levels   []string
	criteria filter.Criteria
	result   filter.Result
	page     pagination.State

	engine *filter.Engine
	logger *zap.Logger
}

// NewManager creates a session in the idle state
func NewManager(engine *filter.Engine, logger *zap.Logger) *Manager {
	if engine == nil {
		engine = filter.NewEngine()
	}
	return &Manager{
		currentState: StateIdle,
		levels:       slices.Clone(config.DefaultLevels),
		page:         pagination.New(config.PageSize),
		engine:       engine,
		logger:       logging.OrNop(logger),
	}
}

// BeginLoad starts a load for language and supersedes any in-flight one
func (m *Manager) BeginLoad(language string) Token {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	m.language = language
	m.currentState = StateLoading
	m.lastErr = nil

	m.logger.Debug("Catalog load started", zap.String("language", language), zap.Uint64("token", uint64(m.generation)))
	return m.generation
}

// CompleteLoad replaces the article set with a load result. Results for a
// superseded token are discarded.
func (m *Manager) CompleteLoad(token Token, articles []*types.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token != m.generation {
		m.logger.Debug("Discarding stale catalog load", zap.Uint64("token", uint64(token)), zap.Uint64("latest", uint64(m.generation)))
		return ErrStaleLoad
	}

	m.articles = articles
	m.levels = filter.AvailableLevels(articles)
	m.criteria.Level = filter.DefaultLevel(articles)
	m.currentState = StateReady
	m.recompute()

	m.logger.Info("Catalog loaded",
		zap.String("language", m.language),
		zap.Int("articles", len(articles)),
		zap.Strings("levels", m.levels),
		zap.String("default_level", m.criteria.Level))
	return nil
}

// FailLoad records a load failure. The article set is emptied and the
// loading flag cleared. Failures for a superseded token are discarded.
func (m *Manager) FailLoad(token Token, err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token != m.generation {
		return ErrStaleLoad
	}

	m.lastErr = &LoadError{Language: m.language, Err: err}
	m.currentState = StateError
	m.articles = nil
	m.levels = slices.Clone(config.DefaultLevels)
	m.recompute()

	m.logger.Warn("Catalog load failed", zap.String("language", m.language), zap.Error(err))
	return m.lastErr
}

// Load fetches language from loader and applies the result. It returns
// ErrStaleLoad when a newer load started while this one was in flight.
func (m *Manager) Load(ctx context.Context, loader catalog.Loader, language string) error {
	token := m.BeginLoad(language)
	records, err := loader.LoadArticles(ctx, language)
	if err != nil {
		return m.FailLoad(token, err)
	}
	return m.CompleteLoad(token, types.FromRecords(records))
}

// SetTopic updates the topic query
func (m *Manager) SetTopic(topic string) error {
	return m.update(func(c *filter.Criteria) { c.Topic = topic })
}

// SetLevel updates the level filter; empty clears it
func (m *Manager) SetLevel(level string) error {
	return m.update(func(c *filter.Criteria) { c.Level = level })
}

// SetLowBound updates the lower range bound; nil clears it
func (m *Manager) SetLowBound(bound *float64) error {
	return m.update(func(c *filter.Criteria) { c.LowBound = copyBound(bound) })
}

// SetHighBound updates the upper range bound; nil clears it
func (m *Manager) SetHighBound(bound *float64) error {
	return m.update(func(c *filter.Criteria) { c.HighBound = copyBound(bound) })
}

// SetCriteria replaces all criteria at once
func (m *Manager) SetCriteria(criteria filter.Criteria) error {
	return m.update(func(c *filter.Criteria) {
		*c = criteria
		c.LowBound = copyBound(criteria.LowBound)
		c.HighBound = copyBound(criteria.HighBound)
	})
}

// Advance moves by delta pages. Moves outside the page range are no-ops.
func (m *Manager) Advance(delta int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentState == StateLoading {
		return false, ErrLoading
	}
	return m.page.Advance(delta, len(m.result.Articles)), nil
}

// View returns a snapshot of the session (thread-safe)
func (m *Manager) View() View {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := len(m.result.Articles)
	v := View{
		Language:      m.language,
		State:         m.currentState,
		Loading:       m.currentState == StateLoading,
		CurrentPage:   m.page.Current,
		TotalPages:    m.page.TotalPages(count),
		TotalMatches:  count,
		Levels:        slices.Clone(m.levels),
		Criteria:      m.criteria,
		RangeFailures: m.result.RangeFailures,
		Err:           m.lastErr,
	}
	v.Criteria.LowBound = copyBound(m.criteria.LowBound)
	v.Criteria.HighBound = copyBound(m.criteria.HighBound)

	if !v.Loading {
		v.Articles = slices.Clone(pagination.Page(m.result.Articles, m.page))
		v.FirstIndex = (m.page.Current - 1) * m.page.Size
	}
	return v
}

// update applies a criteria change and recomputes (must not hold lock)
func (m *Manager) update(change func(*filter.Criteria)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentState == StateLoading {
		return ErrLoading
	}
	change(&m.criteria)
	m.recompute()
	return nil
}

// recompute runs the filter over the current articles (must hold lock)
func (m *Manager) recompute() {
	m.result = m.engine.Apply(m.articles, m.criteria)
	m.page.Reset()
}

func copyBound(b *float64) *float64 {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
