package mock

import "github.com/fwojciec/pyscrape"

var _ pyscrape.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of pyscrape.PageParser.
type PageParser struct {
	WhatsNewLinksFn func(html string, pageURL string) ([]string, error)
	ArticleFn       func(html string) (*pyscrape.Article, error)
	VersionLinksFn  func(html string) ([]pyscrape.VersionLink, error)
	ArchiveLinkFn   func(html string, pageURL string) (string, error)
	PEPIndexFn      func(html string, pageURL string) ([]pyscrape.PEPEntry, error)
	PEPStatusFn     func(html string) (string, error)
}

func (p *PageParser) WhatsNewLinks(html string, pageURL string) ([]string, error) {
	return p.WhatsNewLinksFn(html, pageURL)
}

func (p *PageParser) Article(html string) (*pyscrape.Article, error) {
	return p.ArticleFn(html)
}

func (p *PageParser) VersionLinks(html string) ([]pyscrape.VersionLink, error) {
	return p.VersionLinksFn(html)
}

func (p *PageParser) ArchiveLink(html string, pageURL string) (string, error) {
	return p.ArchiveLinkFn(html, pageURL)
}

func (p *PageParser) PEPIndex(html string, pageURL string) ([]pyscrape.PEPEntry, error) {
	return p.PEPIndexFn(html, pageURL)
}

func (p *PageParser) PEPStatus(html string) (string, error) {
	return p.PEPStatusFn(html)
}
