package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/pyscrape"
)

// TimestampLayout is the timestamp embedded in result file names.
const TimestampLayout = "2006-01-02_15-04-05"

// Ensure CSVWriter implements pyscrape.ResultWriter at compile time.
var _ pyscrape.ResultWriter = (*CSVWriter)(nil)

// CSVWriter saves tables as CSV files named <mode>_<timestamp>.csv in a
// results directory. Every field is quoted and rows end with "\n".
type CSVWriter struct {
	dir    string
	logger *slog.Logger

	// Now returns the time used in file names. Defaults to time.Now.
	Now func() time.Time
}

// NewCSVWriter creates a CSVWriter saving into dir. A nil logger discards
// the saved-path log line.
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CSVWriter{dir: dir, logger: logger, Now: time.Now}
}

// Path returns the file path used for mode at time t.
func (w *CSVWriter) Path(mode pyscrape.Mode, t time.Time) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s.csv", mode, t.Format(TimestampLayout)))
}

// Write saves table and logs the resulting path.
func (w *CSVWriter) Write(ctx context.Context, mode pyscrape.Mode, table *pyscrape.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := w.Path(mode, w.Now())
	if err := writeFileAtomic(path, []byte(FormatCSV(table))); err != nil {
		return err
	}
	w.logger.Info("results saved", "path", path)
	return nil
}

// FormatCSV renders the header and rows of table with every field quoted.
func FormatCSV(table *pyscrape.Table) string {
	var b strings.Builder
	for _, row := range table.All() {
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
