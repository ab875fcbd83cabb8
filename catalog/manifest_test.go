package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"available_files.json": {Data: []byte(`{
			"french": ["french/a.csv", "french/b.json"],
			"arabic": ["arabic/a.csv"],
			"empty": []
		}`)},
		"french/a.csv":  {Data: []byte("id,title\n1,Un\n2,Deux\n")},
		"french/b.json": {Data: []byte(`[{"id": "3", "title": "Trois"}]`)},
		"arabic/a.csv":  {Data: []byte("title,ilr_quantized\nمرحبا,2\n")},
	}
}

func TestManifestLoaderListLanguages(t *testing.T) {
	l := NewManifestLoader(NewFSStore(testFS()))

	langs, err := l.ListLanguages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"arabic", "empty", "french"}, langs)
}

func TestManifestLoaderLoadArticlesKeepsManifestOrder(t *testing.T) {
	l := NewManifestLoader(NewFSStore(testFS()), WithConcurrency(2))

	records, err := l.LoadArticles(context.Background(), "french")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{records[0]["id"], records[1]["id"], records[2]["id"]})
}

func TestManifestLoaderUnknownLanguage(t *testing.T) {
	l := NewManifestLoader(NewFSStore(testFS()))

	for _, lang := range []string{"klingon", "empty"} {
		_, err := l.LoadArticles(context.Background(), lang)
		assert.ErrorIs(t, err, ErrLanguageNotFound, lang)
	}
}

func TestManifestLoaderMissingFile(t *testing.T) {
	fsys := testFS()
	delete(fsys, "french/b.json")
	l := NewManifestLoader(NewFSStore(fsys))

	_, err := l.LoadArticles(context.Background(), "french")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestManifestLoaderMissingManifest(t *testing.T) {
	l := NewManifestLoader(NewFSStore(fstest.MapFS{}), WithManifestName("index.json"))

	_, err := l.ListLanguages(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.Contains(t, err.Error(), "index.json")
}

// slowStore releases files out of manifest order
type slowStore struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (s *slowStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == "available_files.json" {
		files := make([]string, 6)
		for i := range files {
			files[i] = fmt.Sprintf("f%d.csv", i)
		}
		return io.NopCloser(strings.NewReader(`{"x": ["` + strings.Join(files, `","`) + `"]}`)), nil
	}

	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}

	var idx int
	fmt.Sscanf(name, "f%d.csv", &idx)
	time.Sleep(time.Duration(6-idx) * 5 * time.Millisecond)
	return io.NopCloser(strings.NewReader(fmt.Sprintf("id\n%d\n", idx))), nil
}

func TestManifestLoaderConcurrentFetchOrderAndLimit(t *testing.T) {
	store := &slowStore{}
	l := NewManifestLoader(store, WithConcurrency(3))

	records, err := l.LoadArticles(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, records, 6)
	for i, r := range records {
		assert.Equal(t, fmt.Sprint(i), r["id"])
	}
	assert.LessOrEqual(t, store.peak.Load(), int32(3))
}

func TestManifestLoaderCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewManifestLoader(NewFSStore(testFS())).LoadArticles(ctx, "french")
	assert.True(t, errors.Is(err, context.Canceled))
}
