package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"adam/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/languages":
			json.NewEncoder(w).Encode(LanguagesResponse{Languages: []string{"arabic", "french"}})
		case "/api/languages/french/articles":
			json.NewEncoder(w).Encode(ArticlesResponse{
				Language: "french",
				Count:    1,
				Records:  []types.Record{{"title": "Bonjour", "ilr_quantized": "1"}},
			})
		case "/api/languages/arabic/articles":
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "upstream unavailable"})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "language not found"})
		}
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL + "/")
	ctx := context.Background()

	langs, err := c.ListLanguages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"arabic", "french"}, langs)

	records, err := c.LoadArticles(ctx, "french")
	require.NoError(t, err)
	assert.Equal(t, []types.Record{{"title": "Bonjour", "ilr_quantized": "1"}}, records)

	_, err = c.LoadArticles(ctx, "klingon")
	assert.ErrorIs(t, err, ErrLanguageNotFound)

	_, err = c.LoadArticles(ctx, "arabic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream unavailable")
}
