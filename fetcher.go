package pyscrape

import (
	"context"
	"time"
)

// Fetcher retrieves documents over HTTP.
type Fetcher interface {
	// Fetch requests the URL and returns the body decoded as text.
	// Transport failures and non-success statuses are reported as ECONNECTION.
	Fetch(ctx context.Context, url string) (string, error)

	// Download requests the URL and returns the raw body.
	Download(ctx context.Context, url string) ([]byte, error)

	// Close releases client resources.
	Close() error
}

// CachedResponse is a stored HTTP response body.
type CachedResponse struct {
	URL        string
	StatusCode int
	Body       []byte
	StoredAt   time.Time
}

// Cache stores HTTP responses between runs.
type Cache interface {
	// Get returns the response stored under key.
	// The boolean is false when nothing fresh is stored.
	Get(ctx context.Context, key string) (*CachedResponse, bool, error)

	// Set stores resp under key, replacing any previous entry.
	Set(ctx context.Context, key string, resp *CachedResponse) error

	// Clear removes every stored response.
	Clear(ctx context.Context) error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// FetchProgress reports progress while a mode fetches many pages.
type FetchProgress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// FetchProgressFunc is called as pages are fetched.
type FetchProgressFunc func(FetchProgress)
