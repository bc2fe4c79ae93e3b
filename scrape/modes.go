package scrape

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/fwojciec/pyscrape"
)

// WhatsNew lists the "What's New" articles with their titles and editors.
// Articles that cannot be loaded are logged and skipped.
func (s *Scraper) WhatsNew(ctx context.Context) (*pyscrape.Table, error) {
	indexURL, err := joinURL(s.docURL(), "whatsnew/")
	if err != nil {
		return nil, err
	}
	html, err := s.fetch(ctx, indexURL)
	if err != nil {
		return nil, err
	}
	links, err := s.Parser.WhatsNewLinks(html, indexURL)
	if err != nil {
		return nil, fmt.Errorf("whats-new index: %w", err)
	}

	pages, err := s.fetchPages(ctx, links)
	if err != nil {
		return nil, err
	}

	table := pyscrape.NewTable("Article link", "Title", "Editor, author")
	for _, p := range pages {
		if p.err != nil {
			s.logger().Warn("skipping article", "url", p.url, "err", p.err)
			continue
		}
		article, err := s.Parser.Article(p.html)
		if err != nil {
			return nil, fmt.Errorf("article %s: %w", p.url, err)
		}
		table.Append(p.url, article.Title, article.Editors)
	}
	return table, nil
}

// LatestVersions lists the documentation versions from the sidebar of the
// documentation root.
func (s *Scraper) LatestVersions(ctx context.Context) (*pyscrape.Table, error) {
	html, err := s.fetch(ctx, s.docURL())
	if err != nil {
		return nil, err
	}
	versions, err := s.Parser.VersionLinks(html)
	if err != nil {
		return nil, fmt.Errorf("latest-versions: %w", err)
	}

	table := pyscrape.NewTable("Documentation link", "Version", "Status")
	for _, v := range versions {
		table.Append(v.URL, v.Version, v.Status)
	}
	return table, nil
}

// Download saves the A4 PDF documentation archive. It produces no table.
func (s *Scraper) Download(ctx context.Context) (*pyscrape.Table, error) {
	if s.Archives == nil {
		return nil, pyscrape.Errorf(pyscrape.EINTERNAL, "no archive store configured")
	}

	downloadsURL, err := joinURL(s.docURL(), "download.html")
	if err != nil {
		return nil, err
	}
	html, err := s.fetch(ctx, downloadsURL)
	if err != nil {
		return nil, err
	}
	archiveURL, err := s.Parser.ArchiveLink(html, downloadsURL)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}

	name := path.Base(archiveURL)
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}

	data, err := s.download(ctx, archiveURL)
	if err != nil {
		return nil, err
	}
	saved, err := s.Archives.Save(ctx, name, data)
	if err != nil {
		return nil, fmt.Errorf("save archive: %w", err)
	}
	s.logger().Info("archive saved", "path", saved, "bytes", len(data))
	return nil, nil
}

// PEP counts PEP statuses as shown on each PEP page. Pages whose status
// disagrees with the index abbreviation are logged once all pages are
// processed.
func (s *Scraper) PEP(ctx context.Context) (*pyscrape.Table, error) {
	indexURL := s.pepURL()
	html, err := s.fetch(ctx, indexURL)
	if err != nil {
		return nil, err
	}
	entries, err := s.Parser.PEPIndex(html, indexURL)
	if err != nil {
		return nil, fmt.Errorf("pep index: %w", err)
	}

	urls := make([]string, len(entries))
	for i, e := range entries {
		urls[i] = e.URL
	}
	pages, err := s.fetchPages(ctx, urls)
	if err != nil {
		return nil, err
	}

	counter := pyscrape.NewStatusCounter()
	var mismatches []string
	for i, p := range pages {
		entry := entries[i]
		if p.err != nil {
			s.logger().Warn("skipping pep", "number", entry.Number, "url", p.url, "err", p.err)
			continue
		}
		status, err := s.Parser.PEPStatus(p.html)
		if err != nil {
			return nil, fmt.Errorf("pep %s: %w", p.url, err)
		}
		counter.Add(status)

		expected, ok := pyscrape.ExpectedStatuses(entry.TableStatus)
		if !ok {
			s.logger().Info("unknown status key", "key", entry.TableStatus, "url", p.url)
			continue
		}
		if !pyscrape.StatusMatches(entry.TableStatus, status) {
			mismatches = append(mismatches, fmt.Sprintf(
				"%s\nStatus in card: %s\nExpected statuses: %s",
				p.url, status, strings.Join(expected, ", "),
			))
		}
	}

	if len(mismatches) > 0 {
		s.logger().Info("mismatched statuses:\n" + strings.Join(mismatches, "\n"))
	}

	return counter.Table(), nil
}
