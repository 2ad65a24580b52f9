// Package source loads JSON row data from HTTP endpoints or local files.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/locvowork/census_dashboard/pkg/tabular"
)

const DefaultTimeout = 30 * time.Second

// StatusError is returned when an HTTP source answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Fetcher resolves http(s) URLs over HTTP and everything else as a file path.
// It never retries.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: "census-dashboard/1.0",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch implements tabular.Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, sourceDataPath string) ([]tabular.Row, error) {
	if isHTTP(sourceDataPath) {
		return f.fetchHTTP(ctx, sourceDataPath)
	}
	return fetchFile(strings.TrimPrefix(sourceDataPath, "file://"))
}

func isHTTP(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]tabular.Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return tabular.DecodeRows(resp.Body)
}

func fetchFile(path string) ([]tabular.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return tabular.DecodeRows(file)
}
