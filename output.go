package pyscrape

import (
	"context"
	"io"
)

// ResultWriter renders the table produced by a scrape mode.
type ResultWriter interface {
	Write(ctx context.Context, mode Mode, table *Table) error
}

// ArchiveStore persists downloaded files.
// Save returns the path the data was written to.
type ArchiveStore interface {
	Save(ctx context.Context, name string, data []byte) (path string, err error)
}

// Ensure TextWriter implements ResultWriter at compile time.
var _ ResultWriter = (*TextWriter)(nil)

// TextWriter prints tables as plain text.
type TextWriter struct {
	w io.Writer
}

// NewTextWriter returns a TextWriter that prints to w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// Write prints the table using FormatTable.
func (tw *TextWriter) Write(_ context.Context, _ Mode, table *Table) error {
	_, err := io.WriteString(tw.w, FormatTable(table))
	return err
}
