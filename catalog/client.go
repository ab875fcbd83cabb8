package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"adam/types"
)

// LanguagesResponse is returned by GET /api/languages
type LanguagesResponse struct {
	Languages []string `json:"languages"`
}

// ArticlesResponse is returned by GET /api/languages/:language/articles
type ArticlesResponse struct {
	Language string         `json:"language"`
	Count    int            `json:"count"`
	Records  []types.Record `json:"records"`
}

// ErrorResponse is the body of a failed API call
type ErrorResponse struct {
	Error string `json:"error"`
}

// APIClient is a Loader backed by the catalog server's HTTP API
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient creates a new catalog API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListLanguages implements Loader
func (c *APIClient) ListLanguages(ctx context.Context) ([]string, error) {
	var out LanguagesResponse
	if err := c.get(ctx, "/api/languages", &out); err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	return out.Languages, nil
}

// LoadArticles implements Loader
func (c *APIClient) LoadArticles(ctx context.Context, language string) ([]types.Record, error) {
	var out ArticlesResponse
	if err := c.get(ctx, "/api/languages/"+url.PathEscape(language)+"/articles", &out); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", language, err)
	}
	return out.Records, nil
}

func (c *APIClient) get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrLanguageNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		var apiErr ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
