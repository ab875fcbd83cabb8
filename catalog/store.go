package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// FSStore reads catalog objects from a file system
type FSStore struct {
	fsys fs.FS
}

// NewFSStore creates a store over fsys
func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// NewDirStore creates a store rooted at a local directory
func NewDirStore(dir string) *FSStore {
	return NewFSStore(os.DirFS(dir))
}

// Open implements Store
func (s *FSStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.fsys.Open(strings.TrimPrefix(name, "/"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrObjectNotFound)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// HTTPStore fetches catalog objects relative to a base URL
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore creates a store for baseURL. A nil client uses a default
// client with a timeout.
func NewHTTPStore(baseURL string, client *http.Client) *HTTPStore {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Open implements Store
func (s *HTTPStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+escapePath(name), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrObjectNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("server returned %d for %s: %s", resp.StatusCode, name, strings.TrimSpace(string(body)))
	}
	return resp.Body, nil
}

func escapePath(name string) string {
	segments := strings.Split(strings.TrimPrefix(name, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
