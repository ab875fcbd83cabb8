package filter

import (
	"adam/ilrrange"
	"adam/logging"
	"adam/metrics"
	"adam/types"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Result is the outcome of one filter pass
type Result struct {
	// Articles keeps the matching articles in their original order
	Articles []*types.Article
	// RangeFailures counts articles whose range could not be parsed while a
	// range filter was active
	RangeFailures int
}

// Engine runs filter passes and reports per-record range failures.
// An Engine is not safe for concurrent use unless its range cache is.
type Engine struct {
	logger *zap.Logger
	ranges *lru.Cache[string, parsedRange]
}

type parsedRange struct {
	r   ilrrange.Range
	err error
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger logs range parse failures to l
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = logging.OrNop(l) }
}

// WithRangeCache memoizes parsed ranges by raw string, bounded to size
// entries. Results are identical to uncached parsing.
func WithRangeCache(size int) Option {
	return func(e *Engine) {
		if size <= 0 {
			return
		}
		c, err := lru.New[string, parsedRange](size)
		if err != nil {
			e.logger.Warn("range cache disabled", zap.Error(err))
			return
		}
		e.ranges = c
	}
}

// NewEngine creates an Engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply returns the articles matching c in input order. The input slice
// is not modified.
func Apply(articles []*types.Article, c Criteria) []*types.Article {
	out := make([]*types.Article, 0, len(articles))
	for _, a := range articles {
		if Matches(a, c) {
			out = append(out, a)
		}
	}
	return out
}

// Apply runs one full pass. A malformed range only affects its own record.
func (e *Engine) Apply(articles []*types.Article, c Criteria) Result {
	res := Result{Articles: make([]*types.Article, 0, len(articles))}

	for i, a := range articles {
		parse := func(raw string) (ilrrange.Range, error) {
			r, err := e.parse(raw)
			if err != nil {
				res.RangeFailures++
				e.logger.Warn("unparseable ilr range",
					zap.Int("index", i),
					zap.String("key", a.Key(i)),
					zap.Error(err))
			}
			return r, err
		}
		if MatchesWith(a, c, parse) {
			res.Articles = append(res.Articles, a)
		}
	}

	metrics.FilterPasses.Inc()
	metrics.RangeParseFailures.Add(float64(res.RangeFailures))
	return res
}

func (e *Engine) parse(raw string) (ilrrange.Range, error) {
	if e.ranges == nil {
		return ilrrange.Parse(raw)
	}
	if p, ok := e.ranges.Get(raw); ok {
		return p.r, p.err
	}
	r, err := ilrrange.Parse(raw)
	e.ranges.Add(raw, parsedRange{r: r, err: err})
	return r, err
}
