package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pyscrape"
)

var _ pyscrape.PageParser = (*Parser)(nil)

var (
	versionPattern = regexp.MustCompile(`Python (\d\.\d+) \((.*)\)`)
	archivePattern = regexp.MustCompile(`.+pdf-a4\.zip$`)
)

// Parser extracts facts from Sphinx-rendered Python documentation pages
// and from the PEP site.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// WhatsNewLinks returns the article URLs from the toctree of the
// "What's New in Python" index, in document order.
func (p *Parser) WhatsNewLinks(html string, pageURL string) ([]string, error) {
	doc, err := NewDocument(html)
	if err != nil {
		return nil, err
	}

	section, err := FindTag(doc.Selection, "section", Attrs{"id": "what-s-new-in-python"})
	if err != nil {
		return nil, err
	}
	wrapper, err := FindTag(section, "div", Attrs{"class": "toctree-wrapper"})
	if err != nil {
		return nil, err
	}

	var links []string
	var resolveErr error
	wrapper.Find("li.toctree-l1").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		href, err := hrefOf(li)
		if err != nil {
			return true
		}
		link, err := resolveURL(pageURL, href)
		if err != nil {
			resolveErr = err
			return false
		}
		links = append(links, link)
		return true
	})
	if resolveErr != nil {
		return nil, resolveErr
	}

	return links, nil
}

// Article returns the heading and the editors list of a what's-new page.
// The editors come from the first definition list and are empty when the
// page has none.
func (p *Parser) Article(html string) (*pyscrape.Article, error) {
	doc, err := NewDocument(html)
	if err != nil {
		return nil, err
	}

	h1, err := FindTag(doc.Selection, "h1", nil)
	if err != nil {
		return nil, err
	}
	// Sphinx appends a permalink anchor rendered as a pilcrow.
	heading := h1.Clone()
	heading.Find("a.headerlink").Remove()

	article := &pyscrape.Article{
		Title: strings.TrimSpace(heading.Text()),
	}
	if dl := doc.Find("dl").First(); dl.Length() > 0 {
		article.Editors = strings.TrimSpace(strings.ReplaceAll(dl.Text(), "\n", " "))
	}

	return article, nil
}

// VersionLinks returns the entries of the "All versions" list in the
// docs sidebar. Anchors whose text is not of the form
// "Python X.Y (status)" keep the whole text as version and an empty status.
func (p *Parser) VersionLinks(html string) ([]pyscrape.VersionLink, error) {
	doc, err := NewDocument(html)
	if err != nil {
		return nil, err
	}

	sidebar, err := FindTag(doc.Selection, "div", Attrs{"class": "sphinxsidebarwrapper"})
	if err != nil {
		return nil, err
	}

	list := sidebar.Find("ul").FilterFunction(func(_ int, ul *goquery.Selection) bool {
		return strings.Contains(ul.Text(), "All version")
	}).First()
	if list.Length() == 0 {
		return nil, pyscrape.Errorf(pyscrape.ENOTFOUND, "nothing found: no version list in sidebar")
	}

	var versions []pyscrape.VersionLink
	list.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		text := a.Text()

		link := pyscrape.VersionLink{URL: href, Version: text}
		if m := versionPattern.FindStringSubmatch(text); m != nil {
			link.Version, link.Status = m[1], m[2]
		}
		versions = append(versions, link)
	})

	return versions, nil
}

// ArchiveLink returns the absolute URL of the A4 PDF archive listed in the
// downloads table.
func (p *Parser) ArchiveLink(html string, pageURL string) (string, error) {
	doc, err := NewDocument(html)
	if err != nil {
		return "", err
	}

	table, err := FindTag(doc.Selection, "table", Attrs{"class": "docutils"})
	if err != nil {
		return "", err
	}
	a, err := FindTagFunc(table, "a", "{href: "+archivePattern.String()+"}", func(s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		return ok && archivePattern.MatchString(href)
	})
	if err != nil {
		return "", err
	}

	href, _ := a.Attr("href")
	return resolveURL(pageURL, href)
}

// PEPIndex returns the rows of the numerical index table.
// The status abbreviation is the text of the first cell without its
// leading type letter.
func (p *Parser) PEPIndex(html string, pageURL string) ([]pyscrape.PEPEntry, error) {
	doc, err := NewDocument(html)
	if err != nil {
		return nil, err
	}

	section, err := FindTag(doc.Selection, "section", Attrs{"id": "numerical-index"})
	if err != nil {
		return nil, err
	}
	table, err := FindTag(section, "table", Attrs{"class": "pep-zero-table"})
	if err != nil {
		return nil, err
	}
	tbody, err := FindTag(table, "tbody", nil)
	if err != nil {
		return nil, err
	}

	var entries []pyscrape.PEPEntry
	var rowErr error
	tbody.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		entry, err := pepEntry(tr, pageURL)
		if err != nil {
			rowErr = err
			return false
		}
		entries = append(entries, entry)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return entries, nil
}

func pepEntry(tr *goquery.Selection, pageURL string) (pyscrape.PEPEntry, error) {
	td, err := FindTag(tr, "td", nil)
	if err != nil {
		return pyscrape.PEPEntry{}, err
	}

	var abbr string
	if r := []rune(strings.TrimSpace(td.Text())); len(r) > 0 {
		abbr = string(r[1:])
	}

	numberCell := td.Next()
	href, err := hrefOf(numberCell)
	if err != nil {
		return pyscrape.PEPEntry{}, err
	}
	link, err := resolveURL(pageURL, href)
	if err != nil {
		return pyscrape.PEPEntry{}, err
	}

	return pyscrape.PEPEntry{
		Number:      strings.TrimSpace(numberCell.Text()),
		URL:         link,
		TableStatus: abbr,
	}, nil
}

// PEPStatus returns the value of the "Status" field in the header
// definition list of a PEP page.
func (p *Parser) PEPStatus(html string) (string, error) {
	doc, err := NewDocument(html)
	if err != nil {
		return "", err
	}

	dl, err := FindTag(doc.Selection, "dl", nil)
	if err != nil {
		return "", err
	}
	dt, err := FindTagFunc(dl, "dt", "{string: Status}", func(s *goquery.Selection) bool {
		return strings.TrimSuffix(strings.TrimSpace(s.Text()), ":") == "Status"
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(dt.Next().Text()), nil
}
