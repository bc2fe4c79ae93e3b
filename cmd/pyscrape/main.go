package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pyscrape"
	"github.com/fwojciec/pyscrape/fs"
	"github.com/fwojciec/pyscrape/goquery"
	pyhttp "github.com/fwojciec/pyscrape/http"
	"github.com/fwojciec/pyscrape/pretty"
	"github.com/fwojciec/pyscrape/scrape"
	pyslog "github.com/fwojciec/pyscrape/slog"
	"github.com/fwojciec/pyscrape/sqlite"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the HTTP cache. Nil when caching is disabled.
	DB *sqlite.DB

	logFile *os.File
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	if m.DB != nil {
		err = m.DB.Close()
		m.DB = nil
	}
	if m.logFile != nil {
		if cerr := m.logFile.Close(); err == nil {
			err = cerr
		}
		m.logFile = nil
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pyscrape"),
		kong.Description("Scrape the Python documentation and the PEP index"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.DefaultEnvars("PYSCRAPE"),
		kong.Configuration(TOML, defaultConfigPath()),
		vars(),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no mode specified. Run 'pyscrape --help' to see available modes")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	mode, err := pyscrape.ParseMode(cli.Mode)
	if err != nil {
		return err
	}
	output, err := pyscrape.ParseOutputFormat(cli.Output)
	if err != nil {
		return err
	}

	defer m.Close()

	logger, err := m.openLogger(cli, stderr)
	if err != nil {
		return err
	}
	logger.Info("parser started")
	logger.Info("command line arguments",
		"mode", mode,
		"clear_cache", cli.ClearCache,
		"output", output,
	)

	fetcher, err := m.newFetcher(ctx, cli, logger)
	if err != nil {
		logger.Error("parser failed", "err", err)
		return err
	}
	defer fetcher.Close()

	scraper := &scrape.Scraper{
		Fetcher:     fetcher,
		Parser:      goquery.NewParser(),
		Archives:    fs.NewArchiveStore(cli.DownloadsDir),
		Logger:      logger,
		DocURL:      cli.DocURL,
		PEPURL:      cli.PEPURL,
		Concurrency: cli.Concurrency,
		RetryDelays: cli.RetryDelays(),
		Progress:    progressPrinter(stderr),
	}

	table, err := scraper.Run(ctx, mode)
	if err != nil {
		logger.Error("parser failed", "mode", mode, "err", err)
		return err
	}

	if table == nil {
		if mode.Tabular() {
			logger.Error("nothing found", "mode", mode)
			return pyscrape.Errorf(pyscrape.ENOTFOUND, "nothing found")
		}
		logger.Info("parser finished")
		return nil
	}

	writers := map[pyscrape.OutputFormat]pyscrape.ResultWriter{
		pyscrape.OutputDefault: pyscrape.NewTextWriter(stdout),
		pyscrape.OutputPretty:  pretty.NewWriter(stdout),
		pyscrape.OutputFile:    fs.NewCSVWriter(cli.ResultsDir, logger),
	}
	if err := writers[output].Write(ctx, mode, table); err != nil {
		logger.Error("output failed", "output", output, "err", err)
		return err
	}

	logger.Info("parser finished")
	return nil
}

// openLogger creates the run logger writing to stderr and to
// <log-dir>/parser.log.
func (m *Main) openLogger(cli *CLI, stderr io.Writer) (*slog.Logger, error) {
	if err := os.MkdirAll(cli.LogDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %q: %w", cli.LogDir, err)
	}
	path := filepath.Join(cli.LogDir, "parser.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	m.logFile = f

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	return pyslog.NewLogger(io.MultiWriter(stderr, f), level).With("run", uuid.NewString()), nil
}

// newFetcher wires the HTTP fetcher, opening the response cache unless
// caching is disabled.
func (m *Main) newFetcher(ctx context.Context, cli *CLI, logger *slog.Logger) (pyscrape.Fetcher, error) {
	opts := []pyhttp.Option{
		pyhttp.WithTimeout(cli.Timeout),
		pyhttp.WithEncoding(cli.Encoding),
		pyhttp.WithInsecureSkipVerify(cli.Insecure),
		pyhttp.WithRateLimiter(scrape.NewDomainLimiter(cli.RPS)),
	}

	if !cli.NoCache || cli.ClearCache {
		if err := os.MkdirAll(filepath.Dir(cli.CachePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		m.DB = sqlite.NewDB(cli.CachePath)
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open cache at %q: %w", cli.CachePath, err)
		}

		cache := pyslog.NewLoggingCache(sqlite.NewResponseCache(m.DB, cli.CacheTTL), logger)
		if cli.ClearCache {
			if err := cache.Clear(ctx); err != nil {
				return nil, fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		if !cli.NoCache {
			opts = append(opts, pyhttp.WithCache(cache))
		}
	}

	return pyslog.NewLoggingFetcher(pyhttp.NewFetcher(opts...), logger), nil
}
