package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pyscrape"
)

// Ensure LoggingCache implements pyscrape.Cache.
var _ pyscrape.Cache = (*LoggingCache)(nil)

// LoggingCache wraps a Cache with debug logging.
type LoggingCache struct {
	next   pyscrape.Cache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next pyscrape.Cache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// Get delegates to the wrapped cache and logs hits and misses.
// Failures are logged as warnings.
func (c *LoggingCache) Get(ctx context.Context, key string) (resp *pyscrape.CachedResponse, ok bool, err error) {
	defer func(begin time.Time) {
		attrs := []any{"key", key, "hit", ok, "duration", time.Since(begin)}
		if ok {
			attrs = append(attrs, "url", resp.URL, "age", time.Since(resp.StoredAt).Round(time.Second))
		}
		if err != nil {
			c.logger.Warn("cache get failed", append(attrs, "err", err)...)
			return
		}
		c.logger.Debug("cache get", attrs...)
	}(time.Now())
	return c.next.Get(ctx, key)
}

// Set delegates to the wrapped cache and logs the operation.
func (c *LoggingCache) Set(ctx context.Context, key string, resp *pyscrape.CachedResponse) (err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		c.logger.Log(ctx, level, "cache set",
			"key", key,
			"url", resp.URL,
			"bytes", len(resp.Body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Set(ctx, key, resp)
}

// Clear delegates to the wrapped cache and logs the operation.
func (c *LoggingCache) Clear(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("cache cleared",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Clear(ctx)
}
