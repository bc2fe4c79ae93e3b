package pyscrape

import "strings"

// Mode selects what the scraper extracts.
type Mode string

// Supported scrape modes.
const (
	ModeWhatsNew       Mode = "whats-new"
	ModeLatestVersions Mode = "latest-versions"
	ModeDownload       Mode = "download"
	ModePEP            Mode = "pep"
)

// Modes returns all supported modes in display order.
func Modes() []Mode {
	return []Mode{ModeWhatsNew, ModeLatestVersions, ModeDownload, ModePEP}
}

// ParseMode returns the mode named s.
// Returns EINVALID for an unknown mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	names := make([]string, 0, len(Modes()))
	for _, m := range Modes() {
		names = append(names, string(m))
	}
	return "", Errorf(EINVALID, "unknown mode %q (expected one of: %s)", s, strings.Join(names, ", "))
}

// Tabular reports whether the mode produces a table.
// The download mode writes a file instead.
func (m Mode) Tabular() bool {
	return m != ModeDownload
}

// OutputFormat selects how a table is rendered.
type OutputFormat string

// Supported output formats.
const (
	OutputDefault OutputFormat = ""
	OutputPretty  OutputFormat = "pretty"
	OutputFile    OutputFormat = "file"
)

// ParseOutputFormat returns the output format named s. An empty string
// selects the default console output.
// Returns EINVALID for an unknown format.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputDefault, OutputPretty, OutputFile:
		return f, nil
	}
	return "", Errorf(EINVALID, "unknown output %q (expected pretty or file)", s)
}
