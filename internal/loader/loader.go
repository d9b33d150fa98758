// Package loader fetches scan artifacts over HTTP with caching disabled.
// The artifacts are regenerated in place by the daily pipeline, so every
// fetch bypasses intermediate caches and the previous value is discarded
// wholesale by the caller.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"scandash/internal/artifact"
)

// Loader fetches Summary and Detail artifacts from a base URL.
type Loader struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Loader for the given base URL.
func New(baseURL string, timeout time.Duration) *Loader {
	return &Loader{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Summary fetches the top-level scan summary at /top_picks.json.
func (l *Loader) Summary(ctx context.Context) (*artifact.Summary, error) {
	var s artifact.Summary
	if err := l.get(ctx, "/top_picks.json", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Detail fetches the per-ticker artifact at /data/{ticker}.json. An empty
// ticker is an error and no request is issued.
func (l *Loader) Detail(ctx context.Context, ticker string) (*artifact.Detail, error) {
	if ticker == "" {
		return nil, fmt.Errorf("no ticker selected")
	}
	var d artifact.Detail
	if err := l.get(ctx, "/data/"+url.PathEscape(ticker)+".json", &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// get performs a cache-bypassed GET and decodes the JSON body into v.
func (l *Loader) get(ctx context.Context, path string, v any) error {
	// Cache-busting query parameter plus no-cache headers, the equivalent of
	// fetch(..., {cache: "no-store"}).
	u := l.baseURL + path + "?_=" + strconv.FormatInt(time.Now().UnixNano(), 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
