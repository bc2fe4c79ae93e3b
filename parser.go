package pyscrape

// Article is an entry of the "What's New in Python" index.
type Article struct {
	URL     string
	Title   string
	Editors string
}

// VersionLink is a documentation version listed in the docs sidebar.
type VersionLink struct {
	URL     string
	Version string
	Status  string
}

// PEPEntry is a row of the PEP numerical index.
type PEPEntry struct {
	Number      string
	URL         string
	TableStatus string // status abbreviation shown in the index, may be empty
}

// PageParser extracts structured facts from documentation pages.
// Methods that receive a pageURL resolve relative links against it.
// A required element that is absent is reported as ENOTFOUND.
type PageParser interface {
	// WhatsNewLinks returns the article URLs listed on the what's-new index.
	WhatsNewLinks(html string, pageURL string) ([]string, error)

	// Article returns the title and editors of a what's-new article.
	// The returned Article has no URL.
	Article(html string) (*Article, error)

	// VersionLinks returns the versions listed in the docs sidebar.
	VersionLinks(html string) ([]VersionLink, error)

	// ArchiveLink returns the URL of the A4 PDF documentation archive.
	ArchiveLink(html string, pageURL string) (string, error)

	// PEPIndex returns the rows of the PEP numerical index.
	PEPIndex(html string, pageURL string) ([]PEPEntry, error)

	// PEPStatus returns the status field of a PEP page.
	PEPStatus(html string) (string, error)
}
