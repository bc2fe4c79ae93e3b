package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pyscrape"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Mode       string `arg:"" enum:"${modes}" help:"Parser mode: ${modes}"`
	ClearCache bool   `short:"c" help:"Clear the HTTP cache before running"`
	Output     string `short:"o" default:"" enum:",pretty,file" help:"Additional output: pretty or file"`

	Timeout     time.Duration `default:"10s" help:"Fetch timeout per page"`
	Concurrency int           `default:"4" help:"Concurrent page fetch limit"`
	RPS         float64       `name:"rps" default:"2" help:"Requests per second per host (0 disables limiting)"`
	Retries     int           `default:"3" help:"Retries for pages that fail to load"`
	Encoding    string        `default:"utf-8" help:"Forced text encoding of fetched pages"`
	Insecure    bool          `help:"Skip TLS certificate verification"`

	CachePath string        `default:"${cache_path}" type:"path" help:"HTTP cache database"`
	CacheTTL  time.Duration `name:"cache-ttl" default:"24h" help:"How long cached responses stay fresh"`
	NoCache   bool          `help:"Do not read or store cached responses"`

	ResultsDir   string `default:"results" type:"path" help:"Directory for CSV results"`
	DownloadsDir string `default:"downloads" type:"path" help:"Directory for downloaded archives"`
	LogDir       string `default:"logs" type:"path" help:"Directory for parser.log"`
	Verbose      bool   `short:"v" help:"Log debug output"`

	DocURL string `name:"doc-url" default:"${doc_url}" help:"Python documentation root"`
	PEPURL string `name:"pep-url" default:"${pep_url}" help:"PEP index"`

	Config kong.ConfigFlag `help:"TOML configuration file"`
}

// RetryDelays returns exponential backoff delays starting at one second,
// one per retry.
func (c *CLI) RetryDelays() []time.Duration {
	delays := make([]time.Duration, 0, max(c.Retries, 0))
	for i := range c.Retries {
		delays = append(delays, time.Second<<i)
	}
	return delays
}

func vars() kong.Vars {
	modes := make([]string, 0, len(pyscrape.Modes()))
	for _, m := range pyscrape.Modes() {
		modes = append(modes, string(m))
	}
	return kong.Vars{
		"modes":      strings.Join(modes, ", "),
		"cache_path": defaultCachePath(),
		"doc_url":    pyscrape.DefaultDocURL,
		"pep_url":    pyscrape.DefaultPEPURL,
	}
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "pyscrape_cache.db"
	}
	return filepath.Join(dir, "pyscrape", "http_cache.db")
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "pyscrape.toml"
	}
	return filepath.Join(dir, "pyscrape", "config.toml")
}
