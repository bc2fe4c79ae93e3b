package main

import (
	"bytes"
	"testing"

	"github.com/fwojciec/pyscrape"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		maxLen int
		want   string
	}{
		{"short path", "https://peps.python.org/pep-0008/", 40, "/pep-0008/"},
		{"root", "https://docs.python.org", 40, "/"},
		{"long path keeps suffix", "https://docs.python.org/3/whatsnew/changelog-of-all-things.html", 20, "...f-all-things.html"},
		{"unparseable", "://bad url with spaces and more", 10, "://bad ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateURL(tt.url, tt.maxLen))
		})
	}
}

func TestProgressPrinter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	progress := progressPrinter(&buf)

	progress(pyscrape.FetchProgress{URL: "https://peps.python.org/pep-0001/", Completed: 1, Total: 2})
	assert.NotContains(t, buf.String(), "\n")

	progress(pyscrape.FetchProgress{URL: "https://peps.python.org/pep-0008/", Completed: 2, Total: 2})
	assert.Contains(t, buf.String(), "\r[1/2] /pep-0001/")
	assert.Contains(t, buf.String(), "\r[2/2] /pep-0008/")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}
