package font

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/joeblew999/plat-theme/pkg/log"
	"github.com/zeromicro/go-zero/core/syncx"
	"github.com/zeromicro/go-zero/core/threading"
)

// ErrCatalogUnavailable wraps every fetch or decode failure of the directory.
var ErrCatalogUnavailable = errors.New("font catalog unavailable")

// Fetcher retrieves the raw font directory.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) ([]Record, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context) ([]Record, error) {
	return f(ctx)
}

// directoryResponse is the Google Fonts Web API payload.
type directoryResponse struct {
	Items []Record `json:"items"`
}

// HTTPFetcher reads the Google Fonts Web API, sorted by popularity.
type HTTPFetcher struct {
	URL    string
	APIKey string
	Client *http.Client
}

// NewHTTPFetcher creates a fetcher for the given endpoint. An empty URL
// selects the public Google Fonts directory.
func NewHTTPFetcher(endpoint, apiKey string, timeout time.Duration) *HTTPFetcher {
	if endpoint == "" {
		endpoint = WebFontsDirectoryURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFetcher{
		URL:    endpoint,
		APIKey: apiKey,
		Client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads and decodes the directory.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]Record, error) {
	u, err := url.Parse(f.URL)
	if err != nil {
		return nil, fmt.Errorf("parse directory url: %w", err)
	}
	q := u.Query()
	q.Set("sort", "popularity")
	if f.APIKey != "" {
		q.Set("key", f.APIKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch font directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("font directory returned status: %s", resp.Status)
	}

	var payload directoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse font directory: %w", err)
	}
	return payload.Items, nil
}

// Loader fetches the directory once per process. Concurrent first calls share
// a single fetch; a failed fetch is not remembered, so the next call retries.
type Loader struct {
	fetcher Fetcher
	caps    map[Category]int
	flight  syncx.SingleFlight

	mu      sync.RWMutex
	catalog *Catalog
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCaps overrides the per-category bucket sizes.
func WithCaps(caps map[Category]int) LoaderOption {
	return func(l *Loader) {
		if len(caps) > 0 {
			l.caps = caps
		}
	}
}

// NewLoader creates a loader around a fetcher.
func NewLoader(f Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher: f,
		caps:    DefaultCaps,
		flight:  syncx.NewSingleFlight(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

const loadKey = "catalog"

// Load returns the catalog, fetching it on first use. The shared fetch is
// detached from the caller's cancellation; a caller that gives up returns
// early while the others keep waiting for the result.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	if c, ok := l.Loaded(); ok {
		return c, nil
	}

	type result struct {
		catalog *Catalog
		err     error
	}
	done := make(chan result, 1)
	fetchCtx := context.WithoutCancel(ctx)
	threading.GoSafe(func() {
		v, err := l.flight.Do(loadKey, func() (any, error) {
			return l.fetch(fetchCtx)
		})
		if err != nil {
			done <- result{err: err}
			return
		}
		done <- result{catalog: v.(*Catalog)}
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, ctx.Err())
	case r := <-done:
		return r.catalog, r.err
	}
}

func (l *Loader) fetch(ctx context.Context) (*Catalog, error) {
	if c, ok := l.Loaded(); ok {
		return c, nil
	}

	start := time.Now()
	records, err := l.fetcher.Fetch(ctx)
	if err != nil {
		catalogFetches.Inc("error")
		log.Warn("Font catalog fetch failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	catalogFetches.Inc("ok")
	catalogFetchDuration.Observe(time.Since(start).Milliseconds())

	c := NewCatalog(records, l.caps)
	l.mu.Lock()
	l.catalog = c
	l.mu.Unlock()

	log.Info("Font catalog loaded", "families", c.Len(), "buckets", c.Counts())
	return c, nil
}

// Loaded returns the catalog if a fetch has already succeeded.
func (l *Loader) Loaded() (*Catalog, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog, l.catalog != nil
}

// Weights resolves a family's weights from the loaded catalog. It never
// triggers a fetch and returns nil before the first successful load.
func (l *Loader) Weights(family string) []int {
	c, ok := l.Loaded()
	if !ok {
		return nil
	}
	return c.Weights(family)
}
