package goquery_test

import (
	"testing"

	"github.com/fwojciec/pyscrape"
	"github.com/fwojciec/pyscrape/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Parser implements pyscrape.PageParser at compile time.
var _ pyscrape.PageParser = (*goquery.Parser)(nil)

const whatsNewIndexHTML = `<!DOCTYPE html>
<html>
<body>
<section id="what-s-new-in-python">
<h1>What's New in Python<a class="headerlink" href="#what-s-new-in-python">¶</a></h1>
<div class="toctree-wrapper compound">
<ul>
<li class="toctree-l1"><a class="reference internal" href="3.13.html">What's New In Python 3.13</a>
<ul>
<li class="toctree-l2"><a class="reference internal" href="3.13.html#summary">Summary</a></li>
</ul>
</li>
<li class="toctree-l1"><a class="reference internal" href="3.12.html">What's New In Python 3.12</a></li>
<li class="toctree-l1"><span>no link</span></li>
</ul>
</div>
</section>
</body>
</html>`

func TestParser_WhatsNewLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves top-level toctree links against the index URL", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.NewParser().WhatsNewLinks(whatsNewIndexHTML, "https://docs.python.org/3/whatsnew/")

		require.NoError(t, err)
		want := []string{
			"https://docs.python.org/3/whatsnew/3.13.html",
			"https://docs.python.org/3/whatsnew/3.12.html",
		}
		if diff := cmp.Diff(want, links); diff != "" {
			t.Errorf("links mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("returns ENOTFOUND when section is missing", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewParser().WhatsNewLinks(`<html><body><p>moved</p></body></html>`, "https://docs.python.org/3/whatsnew/")

		require.Error(t, err)
		assert.Equal(t, pyscrape.ENOTFOUND, pyscrape.ErrorCode(err))
		assert.Contains(t, pyscrape.ErrorMessage(err), "what-s-new-in-python")
	})

	t.Run("returns ENOTFOUND when toctree is missing", func(t *testing.T) {
		t.Parallel()

		html := `<section id="what-s-new-in-python"><p>empty</p></section>`
		_, err := goquery.NewParser().WhatsNewLinks(html, "https://docs.python.org/3/whatsnew/")

		require.Error(t, err)
		assert.Equal(t, pyscrape.ENOTFOUND, pyscrape.ErrorCode(err))
		assert.Contains(t, pyscrape.ErrorMessage(err), "toctree-wrapper")
	})
}

func TestParser_Article(t *testing.T) {
	t.Parallel()

	t.Run("extracts title without permalink and flattens editors", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><section>
<h1>What’s New In Python 3.12<a class="headerlink" href="#" title="Link to this heading">¶</a></h1>
<dl class="field-list simple">
<dt class="field-odd">Editor<span class="colon">:</span></dt>
<dd class="field-odd"><p>Adam Turner</p></dd>
</dl>
</section></body></html>`

		article, err := goquery.NewParser().Article(html)

		require.NoError(t, err)
		assert.Equal(t, "What’s New In Python 3.12", article.Title)
		assert.Equal(t, "Editor: Adam Turner", article.Editors)
		assert.Empty(t, article.URL)
	})

	t.Run("leaves editors empty when page has no definition list", func(t *testing.T) {
		t.Parallel()

		article, err := goquery.NewParser().Article(`<h1>What's New in Python 2.0</h1><p>A.M. Kuchling</p>`)

		require.NoError(t, err)
		assert.Equal(t, "What's New in Python 2.0", article.Title)
		assert.Empty(t, article.Editors)
	})

	t.Run("returns ENOTFOUND without a heading", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewParser().Article(`<p>no heading</p>`)

		require.Error(t, err)
		assert.Equal(t, pyscrape.ENOTFOUND, pyscrape.ErrorCode(err))
	})
}

func TestParser_VersionLinks(t *testing.T) {
	t.Parallel()

	t.Run("parses version and status from anchor text", func(t *testing.T) {
		t.Parallel()

		html := `<div class="sphinxsidebar"><div class="sphinxsidebarwrapper">
<h3>Navigation</h3>
<ul><li><a href="genindex.html">Index</a></li></ul>
<ul>
<li><a href="https://docs.python.org/3.14/">Python 3.14 (in development)</a></li>
<li><a href="https://docs.python.org/3.13/">Python 3.13 (stable)</a></li>
<li><a href="https://docs.python.org/3.8/">Python 3.8 (EOL)</a></li>
<li><a href="https://www.python.org/doc/versions/">All versions</a></li>
</ul>
</div></div>`

		versions, err := goquery.NewParser().VersionLinks(html)

		require.NoError(t, err)
		want := []pyscrape.VersionLink{
			{URL: "https://docs.python.org/3.14/", Version: "3.14", Status: "in development"},
			{URL: "https://docs.python.org/3.13/", Version: "3.13", Status: "stable"},
			{URL: "https://docs.python.org/3.8/", Version: "3.8", Status: "EOL"},
			{URL: "https://www.python.org/doc/versions/", Version: "All versions", Status: ""},
		}
		if diff := cmp.Diff(want, versions); diff != "" {
			t.Errorf("versions mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("returns ENOTFOUND when no list mentions all versions", func(t *testing.T) {
		t.Parallel()

		html := `<div class="sphinxsidebarwrapper"><ul><li><a href="x">Python 3.13 (stable)</a></li></ul></div>`

		_, err := goquery.NewParser().VersionLinks(html)

		require.Error(t, err)
		assert.Equal(t, pyscrape.ENOTFOUND, pyscrape.ErrorCode(err))
		assert.Contains(t, pyscrape.ErrorMessage(err), "nothing found")
	})

	t.Run("returns ENOTFOUND without sidebar", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewParser().VersionLinks(`<div class="body"></div>`)

		require.Error(t, err)
		assert.Equal(t, pyscrape.ENOTFOUND, pyscrape.ErrorCode(err))
	})
}

func TestParser_ArchiveLink(t *testing.T) {
	t.Parallel()

	t.Run("resolves the A4 PDF zip link", func(t *testing.T) {
		t.Parallel()

		html := `<table class="docutils align-default">
<tbody>
<tr><td>PDF (US-Letter paper size)</td><td><a href="archives/python-3.13-docs-pdf-letter.zip">Download</a></td></tr>
<tr><td>PDF (A4 paper size)</td><td><a href="archives/python-3.13-docs-pdf-a4.zip">Download</a></td></tr>
</tbody>
</table>`

		link, err := goquery.NewParser().ArchiveLink(html, "https://docs.python.org/3/download.html")

		require.NoError(t, err)
		assert.Equal(t, "https://docs.python.org/3/archives/python-3.13-docs-pdf-a4.zip", link)
	})

	t.Run("returns ENOTFOUND without A4 archive", func(t *testing.T) {
		t.Parallel()

		html := `<table class="docutils"><tbody><tr><td><a href="docs-html.zip">Download</a></td></tr></tbody></table>`

		_, err := goquery.NewParser().ArchiveLink(html, "https://docs.python.org/3/download.html")

		require.Error(t, err)
		assert.Equal(t, pyscrape.ENOTFOUND, pyscrape.ErrorCode(err))
		assert.Contains(t, pyscrape.ErrorMessage(err), "pdf-a4")
	})

	t.Run("returns ENOTFOUND without downloads table", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewParser().ArchiveLink(`<p>nothing</p>`, "https://docs.python.org/3/download.html")

		require.Error(t, err)
		assert.Equal(t, pyscrape.ENOTFOUND, pyscrape.ErrorCode(err))
	})
}

const pepIndexHTML = `<html><body>
<section id="index-by-category"><table class="pep-zero-table"><tbody>
<tr><td>IF</td><td><a href="pep-0001/">1</a></td></tr>
</tbody></table></section>
<section id="numerical-index">
<table class="pep-zero-table docutils align-default">
<thead><tr><th>Type/Status</th><th>PEP</th><th>Title</th></tr></thead>
<tbody>
<tr><td><abbr title="Process, Active">PA</abbr></td><td><a class="pep reference internal" href="pep-0001/">1</a></td><td>PEP Purpose and Guidelines</td></tr>
<tr><td><abbr title="Standards Track, Final">SF</abbr></td><td><a href="pep-0008/">8</a></td><td>Style Guide</td></tr>
<tr><td><abbr title="Standards Track, Draft">S</abbr></td><td><a href="pep-0999/">999</a></td><td>Draft</td></tr>
</tbody>
</table>
</section>
</body></html>`

func TestParser_PEPIndex(t *testing.T) {
	t.Parallel()

	t.Run("extracts numerical index rows", func(t *testing.T) {
		t.Parallel()

		entries, err := goquery.NewParser().PEPIndex(pepIndexHTML, "https://peps.python.org/")

		require.NoError(t, err)
		want := []pyscrape.PEPEntry{
			{Number: "1", URL: "https://peps.python.org/pep-0001/", TableStatus: "A"},
			{Number: "8", URL: "https://peps.python.org/pep-0008/", TableStatus: "F"},
			{Number: "999", URL: "https://peps.python.org/pep-0999/", TableStatus: ""},
		}
		if diff := cmp.Diff(want, entries); diff != "" {
			t.Errorf("entries mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("returns ENOTFOUND without numerical index", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewParser().PEPIndex(`<section id="index-by-category"></section>`, "https://peps.python.org/")

		require.Error(t, err)
		assert.Equal(t, pyscrape.ENOTFOUND, pyscrape.ErrorCode(err))
		assert.Contains(t, pyscrape.ErrorMessage(err), "numerical-index")
	})

	t.Run("returns ENOTFOUND when a row has no PEP link", func(t *testing.T) {
		t.Parallel()

		html := `<section id="numerical-index"><table class="pep-zero-table"><tbody>
<tr><td>SF</td><td>8</td></tr>
</tbody></table></section>`

		_, err := goquery.NewParser().PEPIndex(html, "https://peps.python.org/")

		require.Error(t, err)
		assert.Equal(t, pyscrape.ENOTFOUND, pyscrape.ErrorCode(err))
	})
}

func TestParser_PEPStatus(t *testing.T) {
	t.Parallel()

	t.Run("reads status field with colon span", func(t *testing.T) {
		t.Parallel()

		html := `<section id="pep-content"><dl class="rfc2822 field-list simple">
<dt class="field-odd">Author<span class="colon">:</span></dt>
<dd class="field-odd">Guido van Rossum</dd>
<dt class="field-even">Status<span class="colon">:</span></dt>
<dd class="field-even"><abbr title="Accepted and implementation complete">Final</abbr></dd>
</dl></section>`

		status, err := goquery.NewParser().PEPStatus(html)

		require.NoError(t, err)
		assert.Equal(t, "Final", status)
	})

	t.Run("reads plain status field", func(t *testing.T) {
		t.Parallel()

		html := `<dl><dt>Status</dt><dd>Draft</dd></dl>`

		status, err := goquery.NewParser().PEPStatus(html)

		require.NoError(t, err)
		assert.Equal(t, "Draft", status)
	})

	t.Run("returns ENOTFOUND without status field", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewParser().PEPStatus(`<dl><dt>Author</dt><dd>Someone</dd></dl>`)

		require.Error(t, err)
		assert.Equal(t, pyscrape.ENOTFOUND, pyscrape.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND without definition list", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewParser().PEPStatus(`<p>Status: Final</p>`)

		require.Error(t, err)
		assert.Equal(t, pyscrape.ENOTFOUND, pyscrape.ErrorCode(err))
	})
}
