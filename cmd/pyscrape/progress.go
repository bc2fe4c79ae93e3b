package main

import (
	"fmt"
	"io"
	"net/url"

	"github.com/fwojciec/pyscrape"
)

// progressPrinter reports per-page progress on a single terminal line.
func progressPrinter(w io.Writer) pyscrape.FetchProgressFunc {
	return func(p pyscrape.FetchProgress) {
		fmt.Fprintf(w, "\r[%d/%d] %-40s", p.Completed, p.Total, truncateURL(p.URL, 40))
		if p.Completed == p.Total {
			fmt.Fprintln(w)
		}
	}
}

// truncateURL shortens a URL for display by showing only the path.
// This makes progress more useful when many URLs share the same host prefix.
func truncateURL(rawURL string, maxLen int) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		if len(rawURL) <= maxLen {
			return rawURL
		}
		return rawURL[:maxLen-3] + "..."
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}

	if len(path) <= maxLen {
		return path
	}

	// Truncate from the left to show the unique suffix
	return "..." + path[len(path)-maxLen+3:]
}
