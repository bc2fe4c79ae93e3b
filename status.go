package pyscrape

import (
	"slices"
	"strconv"
)

// ExpectedStatus maps the status abbreviation shown in the PEP index to
// the statuses a PEP page may carry. Drafts have no abbreviation.
var ExpectedStatus = map[string][]string{
	"A": {"Active", "Accepted"},
	"D": {"Deferred"},
	"F": {"Final"},
	"P": {"Provisional"},
	"R": {"Rejected"},
	"S": {"Superseded"},
	"W": {"Withdrawn"},
	"":  {"Draft", "Active"},
}

// ExpectedStatuses returns the statuses allowed for abbr.
// The boolean is false when the abbreviation is unknown.
func ExpectedStatuses(abbr string) ([]string, bool) {
	statuses, ok := ExpectedStatus[abbr]
	return statuses, ok
}

// StatusMatches reports whether status is allowed for abbr.
// Unknown abbreviations never match.
func StatusMatches(abbr, status string) bool {
	statuses, ok := ExpectedStatuses(abbr)
	if !ok {
		return false
	}
	return slices.Contains(statuses, status)
}

// StatusCounter counts PEP statuses, remembering the order in which
// each status was first seen.
type StatusCounter struct {
	order  []string
	counts map[string]int
}

// NewStatusCounter returns an empty StatusCounter.
func NewStatusCounter() *StatusCounter {
	return &StatusCounter{counts: make(map[string]int)}
}

// Add counts one occurrence of status.
func (c *StatusCounter) Add(status string) {
	if _, ok := c.counts[status]; !ok {
		c.order = append(c.order, status)
	}
	c.counts[status]++
}

// Count returns the number of occurrences of status.
func (c *StatusCounter) Count(status string) int {
	return c.counts[status]
}

// Total returns the number of counted statuses.
func (c *StatusCounter) Total() int {
	var total int
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Table returns one row per status in first-seen order followed by a
// "Total" row.
func (c *StatusCounter) Table() *Table {
	t := NewTable("Status", "Count")
	for _, status := range c.order {
		t.Append(status, strconv.Itoa(c.counts[status]))
	}
	t.Append("Total", strconv.Itoa(c.Total()))
	return t
}
