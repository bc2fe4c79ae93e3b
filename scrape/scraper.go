// Package scrape implements the scrape modes: each fetches pages from the
// Python documentation or PEP sites, parses them, and produces a table or
// a downloaded file.
package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/pyscrape"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched in parallel when
// Concurrency is not set.
const DefaultConcurrency = 4

// Scraper runs the scrape modes.
type Scraper struct {
	Fetcher  pyscrape.Fetcher
	Parser   pyscrape.PageParser
	Archives pyscrape.ArchiveStore
	Logger   *slog.Logger

	// DocURL and PEPURL default to pyscrape.DefaultDocURL and pyscrape.DefaultPEPURL.
	DocURL string
	PEPURL string

	Concurrency int
	// RetryDelays defaults to DefaultRetryDelays() when nil.
	// An empty slice disables retries.
	RetryDelays []time.Duration
	Progress    pyscrape.FetchProgressFunc
}

// Handler runs one scrape mode. A nil table means the mode produced no
// tabular result.
type Handler func(ctx context.Context) (*pyscrape.Table, error)

// Handlers returns the mode dispatch table.
func (s *Scraper) Handlers() map[pyscrape.Mode]Handler {
	return map[pyscrape.Mode]Handler{
		pyscrape.ModeWhatsNew:       s.WhatsNew,
		pyscrape.ModeLatestVersions: s.LatestVersions,
		pyscrape.ModeDownload:       s.Download,
		pyscrape.ModePEP:            s.PEP,
	}
}

// Run executes the handler registered for mode.
func (s *Scraper) Run(ctx context.Context, mode pyscrape.Mode) (*pyscrape.Table, error) {
	handler, ok := s.Handlers()[mode]
	if !ok {
		return nil, pyscrape.Errorf(pyscrape.EINVALID, "unknown mode %q", mode)
	}
	return handler(ctx)
}

func (s *Scraper) docURL() string {
	if s.DocURL != "" {
		return s.DocURL
	}
	return pyscrape.DefaultDocURL
}

func (s *Scraper) pepURL() string {
	if s.PEPURL != "" {
		return s.PEPURL
	}
	return pyscrape.DefaultPEPURL
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (s *Scraper) retryDelays() []time.Duration {
	if s.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return s.RetryDelays
}

func (s *Scraper) logRetry(url string, attempt int, err error) {
	s.logger().Warn("retrying fetch", "url", url, "attempt", attempt, "err", err)
}

// fetch retrieves a page with retries.
func (s *Scraper) fetch(ctx context.Context, rawURL string) (string, error) {
	return FetchWithRetryDelays(ctx, rawURL, s.Fetcher.Fetch, s.logRetry, s.retryDelays())
}

// download retrieves raw bytes with retries.
func (s *Scraper) download(ctx context.Context, rawURL string) ([]byte, error) {
	return withRetry(ctx, rawURL, s.Fetcher.Download, s.logRetry, s.retryDelays())
}

// page is the outcome of fetching one URL of a batch.
type page struct {
	url  string
	html string
	err  error
}

// fetchPages fetches urls concurrently and returns the results in input
// order. Per-page failures are recorded on the page; only cancellation of
// ctx is returned as an error.
func (s *Scraper) fetchPages(ctx context.Context, urls []string) ([]page, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	pages := make([]page, len(urls))
	total := len(urls)

	var mu sync.Mutex
	var completed int

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, u := range urls {
		g.Go(func() error {
			html, err := s.fetch(gctx, u)
			pages[i] = page{url: u, html: html, err: err}

			mu.Lock()
			completed++
			if s.Progress != nil {
				s.Progress(pyscrape.FetchProgress{
					URL:       u,
					Completed: completed,
					Total:     total,
					Error:     err,
				})
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return pages, nil
}

// joinURL resolves ref against base.
func joinURL(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", pyscrape.Errorf(pyscrape.EINVALID, "invalid base URL %q: %v", base, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", pyscrape.Errorf(pyscrape.EINVALID, "invalid URL %q: %v", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}
