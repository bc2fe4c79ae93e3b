// Package pretty renders result tables as boxed text tables using go-pretty.
package pretty

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/pyscrape"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Ensure Writer implements pyscrape.ResultWriter at compile time.
var _ pyscrape.ResultWriter = (*Writer)(nil)

// Writer prints tables with the header as field names and every column
// left-aligned.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer printing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write renders table to the underlying writer.
func (w *Writer) Write(ctx context.Context, mode pyscrape.Mode, t *pyscrape.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w.w, Render(t)); err != nil {
		return pyscrape.Errorf(pyscrape.EINTERNAL, "write %s table: %v", mode, err)
	}
	return nil
}

// Render returns t as a boxed text table.
func Render(t *pyscrape.Table) string {
	tw := table.NewWriter()
	style := table.StyleDefault
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	if t == nil {
		return tw.Render()
	}

	configs := make([]table.ColumnConfig, len(t.Header))
	for i := range t.Header {
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		}
	}
	tw.SetColumnConfigs(configs)

	tw.AppendHeader(toRow(t.Header))
	for _, row := range t.Rows {
		tw.AppendRow(toRow(row))
	}
	return tw.Render()
}

func toRow(r pyscrape.Row) table.Row {
	row := make(table.Row, len(r))
	for i, field := range r {
		row[i] = field
	}
	return row
}
