// Package pyscrape provides a CLI that scrapes the Python documentation
// site and the PEP index. It extracts small structured facts (what's-new
// articles, documentation versions, PEP status counts), downloads the
// documentation archive, and prints or saves the results.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, pretty/).
package pyscrape

// Default locations of the scraped sites.
const (
	DefaultDocURL = "https://docs.python.org/3/"
	DefaultPEPURL = "https://peps.python.org/"
)
