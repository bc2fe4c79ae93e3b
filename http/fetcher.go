// Package http provides an HTTP-based implementation of pyscrape.Fetcher
// backed by resty, with optional response caching.
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pyscrape"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
	"golang.org/x/sync/singleflight"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultEncoding is the text encoding forced onto every fetched page.
const DefaultEncoding = "utf-8"

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "pyscrape/1.0 (+https://github.com/fwojciec/pyscrape)"

// Ensure Fetcher implements pyscrape.Fetcher at compile time.
var _ pyscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using HTTP GET requests.
// Page bodies are decoded with a fixed encoding regardless of what the
// server declares.
type Fetcher struct {
	client    *resty.Client
	cache     pyscrape.Cache
	group     singleflight.Group
	timeout   time.Duration
	encoding  string
	userAgent string
	insecure  bool
	limiter   pyscrape.DomainLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithEncoding sets the encoding label used to decode page bodies.
// Defaults to DefaultEncoding.
func WithEncoding(label string) Option {
	return func(f *Fetcher) {
		f.encoding = label
	}
}

// WithCache serves pages from c and stores successful responses in it.
// Downloads bypass the cache.
func WithCache(c pyscrape.Cache) Option {
	return func(f *Fetcher) {
		f.cache = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify(skip bool) Option {
	return func(f *Fetcher) {
		f.insecure = skip
	}
}

// WithRateLimiter makes every network request wait on l for the request's
// host. Responses served from the cache do not wait.
func WithRateLimiter(l pyscrape.DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		encoding:  DefaultEncoding,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = resty.New().
		SetTimeout(f.timeout).
		SetHeader("User-Agent", f.userAgent)
	if f.insecure {
		f.client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec
	}

	return f
}

// Fetch retrieves the page at url and returns its decoded text.
// Cache failures fall back to the network.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	key := CacheKey(url)

	if f.cache != nil {
		if cached, ok, err := f.cache.Get(ctx, key); err == nil && ok {
			return f.decode(cached.Body)
		}
	}

	v, err, _ := f.group.Do(key, func() (any, error) {
		body, status, err := f.get(ctx, url)
		if err != nil {
			return nil, err
		}
		if f.cache != nil {
			resp := &pyscrape.CachedResponse{
				URL:        url,
				StatusCode: status,
				Body:       body,
				StoredAt:   time.Now().UTC(),
			}
			_ = f.cache.Set(ctx, key, resp)
		}
		return body, nil
	})
	if err != nil {
		return "", err
	}

	return f.decode(v.([]byte))
}

// Download retrieves the raw body at url.
func (f *Fetcher) Download(ctx context.Context, url string) ([]byte, error) {
	body, _, err := f.get(ctx, url)
	return body, err
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.GetClient().CloseIdleConnections()
	return nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, int, error) {
	if err := f.wait(ctx, rawURL); err != nil {
		return nil, 0, err
	}

	resp, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		// Cancellation is not a connection failure.
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		return nil, 0, loadError(rawURL, err)
	}

	if !resp.IsSuccess() {
		return nil, resp.StatusCode(), loadError(rawURL, fmt.Errorf("HTTP %d", resp.StatusCode()))
	}

	return resp.Body(), resp.StatusCode(), nil
}

func (f *Fetcher) wait(ctx context.Context, rawURL string) error {
	if f.limiter == nil {
		return nil
	}
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return pyscrape.Errorf(pyscrape.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	return f.limiter.Wait(ctx, u.Host)
}

// loadError reports a failed page load. The message names only the page;
// the cause stays in the error chain.
func loadError(rawURL string, cause error) error {
	return fmt.Errorf("%w: %v", pyscrape.Errorf(pyscrape.ECONNECTION, "error loading page %s", rawURL), cause)
}

func (f *Fetcher) decode(body []byte) (string, error) {
	r, err := charset.NewReaderLabel(f.encoding, bytes.NewReader(body))
	if err != nil {
		return "", pyscrape.Errorf(pyscrape.EINVALID, "unsupported encoding %q", f.encoding)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, r); err != nil {
		return "", err
	}
	return b.String(), nil
}

// CacheKey returns the cache key for a GET request to url.
func CacheKey(url string) string {
	var b [8]byte
	h := xxhash.Sum64String(http.MethodGet + " " + url)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}
