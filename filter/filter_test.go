package filter

import (
	"fmt"
	"testing"

	"adam/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func ptr(f float64) *float64 { return &f }

func article(title, level, ilrRange string) *types.Article {
	a := &types.Article{Title: types.String(title)}
	if level != "" {
		a.ILRQuantized = types.String(level)
	}
	if ilrRange != "" {
		a.ILRRange = types.String(ilrRange)
	}
	return a
}

func TestMatchesTopic(t *testing.T) {
	climate := article("Climate Change", "", "")
	summaryOnly := &types.Article{Summary: types.String("A story about ELECTIONS")}
	translated := &types.Article{TranslatedSummary: types.String("Économie locale")}
	bare := &types.Article{}

	cases := []struct {
		name  string
		a     *types.Article
		topic string
		want  bool
	}{
		{"case insensitive title", climate, "climate", true},
		{"upper query", climate, "CHANGE", true},
		{"no match", climate, "sports", false},
		{"summary", summaryOnly, "elections", true},
		{"translated summary", translated, "économie", true},
		{"all fields absent", bare, "anything", false},
		{"empty topic matches absent fields", bare, "", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Matches(c.a, Criteria{Topic: c.topic}))
		})
	}
}

func TestMatchesLevelIsExact(t *testing.T) {
	a := article("T", "2", "")

	assert.True(t, Matches(a, Criteria{Level: "2"}))
	assert.False(t, Matches(a, Criteria{Level: "02"}))
	assert.False(t, Matches(a, Criteria{Level: "2.0"}))
	assert.False(t, Matches(article("T", "", ""), Criteria{Level: "2"}))
	assert.True(t, Matches(article("T", "", ""), Criteria{}))
}

func TestMatchesRange(t *testing.T) {
	inBand := article("T", "", "['1.50', '2.50']")

	cases := []struct {
		name string
		a    *types.Article
		c    Criteria
		want bool
	}{
		{"no bounds ignores bad range", article("T", "", "bad"), Criteria{}, true},
		{"missing range kept", article("T", "", ""), Criteria{LowBound: ptr(1)}, true},
		{"bad range excluded", article("T", "", "bad"), Criteria{LowBound: ptr(1)}, false},
		{"bad range excluded by high", article("T", "", "[1]"), Criteria{HighBound: ptr(5)}, false},
		{"within both", inBand, Criteria{LowBound: ptr(1), HighBound: ptr(3)}, true},
		{"equal bounds", inBand, Criteria{LowBound: ptr(1.5), HighBound: ptr(2.5)}, true},
		{"below low", inBand, Criteria{LowBound: ptr(2)}, false},
		{"above high", inBand, Criteria{HighBound: ptr(2)}, false},
		{"only low set", inBand, Criteria{LowBound: ptr(0)}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Matches(c.a, c.c))
		})
	}
}

func TestMatchesConjunction(t *testing.T) {
	a := article("Climate Change", "2", "[1, 2]")

	assert.True(t, Matches(a, Criteria{Topic: "climate", Level: "2", HighBound: ptr(2)}))
	assert.False(t, Matches(a, Criteria{Topic: "climate", Level: "3"}))
	assert.False(t, Matches(a, Criteria{Topic: "sport", Level: "2"}))
	assert.False(t, Matches(a, Criteria{Level: "2", HighBound: ptr(1.5)}))
}

func corpus(n int) []*types.Article {
	out := make([]*types.Article, 0, n)
	for i := 0; i < n; i++ {
		level := fmt.Sprint(i%3 + 1)
		r := fmt.Sprintf("['%d.00', '%d.50']", i%4, i%4+1)
		if i%7 == 0 {
			r = "garbage"
		}
		out = append(out, article(fmt.Sprintf("Article %d", i), level, r))
	}
	return out
}

func TestApplyIsStableSubsequence(t *testing.T) {
	articles := corpus(200)
	criteria := []Criteria{
		{},
		{Topic: "article 1"},
		{Level: "2"},
		{LowBound: ptr(1)},
		{Level: "3", HighBound: ptr(3)},
	}

	for _, c := range criteria {
		got := Apply(articles, c)

		// every result appears in input order
		j := 0
		for _, a := range got {
			for j < len(articles) && articles[j] != a {
				j++
			}
			require.Less(t, j, len(articles), "result not a subsequence for %+v", c)
			j++
		}
	}
}

func TestApplyIdempotentAndNonMutating(t *testing.T) {
	articles := corpus(50)
	snapshot := append([]*types.Article(nil), articles...)
	c := Criteria{Level: "1", LowBound: ptr(1)}

	first := Apply(articles, c)
	second := Apply(articles, c)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, articles)
}

func TestEngineMatchesApplyAndCountsFailures(t *testing.T) {
	articles := corpus(100)
	c := Criteria{LowBound: ptr(1)}

	core, logs := observer.New(zap.WarnLevel)
	plain := NewEngine(WithLogger(zap.New(core)))
	cached := NewEngine(WithRangeCache(8))

	res := plain.Apply(articles, c)
	assert.Equal(t, Apply(articles, c), res.Articles)

	// i%7 == 0 for i in [0,100) gives 15 garbage ranges
	assert.Equal(t, 15, res.RangeFailures)
	assert.Equal(t, 15, logs.FilterMessage("unparseable ilr range").Len())

	for i := 0; i < 2; i++ {
		cres := cached.Apply(articles, c)
		assert.Equal(t, res.Articles, cres.Articles)
		assert.Equal(t, res.RangeFailures, cres.RangeFailures)
	}
}

func TestEngineNoBoundsSkipsParsing(t *testing.T) {
	res := NewEngine().Apply(corpus(30), Criteria{Topic: "article"})

	assert.Len(t, res.Articles, 30)
	assert.Zero(t, res.RangeFailures)
}

func TestAvailableLevels(t *testing.T) {
	cases := []struct {
		name   string
		levels []string
		want   []string
	}{
		{"numeric sort", []string{"3", "10", "2", "3", ""}, []string{"2", "3", "10"}},
		{"plus levels", []string{"2", "1+", "1"}, []string{"1", "1+", "2"}},
		{"non numeric last", []string{"x", "2"}, []string{"2", "x"}},
		{"fallback", []string{"", ""}, []string{"1", "2", "3", "4", "5"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var articles []*types.Article
			for _, l := range c.levels {
				articles = append(articles, article("T", l, ""))
			}
			assert.Equal(t, c.want, AvailableLevels(articles))
		})
	}
}

func TestDefaultLevel(t *testing.T) {
	withOne := []*types.Article{article("a", "2", ""), article("b", "1", "")}
	without := []*types.Article{article("a", "2", ""), article("b", "3", "")}

	assert.Equal(t, "1", DefaultLevel(withOne))
	assert.Equal(t, "", DefaultLevel(without))
	assert.Equal(t, []string{"2", "3"}, AvailableLevels(without))
	assert.Equal(t, "", DefaultLevel(nil))
}
