// Package slog provides logging decorators for pyscrape services and the
// log handler used by the command line.
package slog

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// TimeFormat is the timestamp layout of log lines.
const TimeFormat = "02.01.2006 15:04:05"

// NewLogger returns a logger writing text lines to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
		Level:           log.Level(level),
	})
	return slog.New(handler)
}
