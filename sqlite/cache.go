package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pyscrape"
)

// Compile-time interface verification.
var _ pyscrape.Cache = (*ResponseCache)(nil)

// ResponseCache implements pyscrape.Cache using SQLite.
// Entries older than the TTL are treated as missing; a zero TTL keeps
// entries until the cache is cleared.
type ResponseCache struct {
	db  *DB
	ttl time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewResponseCache creates a new ResponseCache.
func NewResponseCache(db *DB, ttl time.Duration) *ResponseCache {
	return &ResponseCache{db: db, ttl: ttl, Now: time.Now}
}

// hashBody computes the xxHash of a response body as a hex string.
func hashBody(body []byte) string {
	return strconv.FormatUint(xxhash.Sum64(body), 16)
}

// Get returns the response stored under key.
func (c *ResponseCache) Get(ctx context.Context, key string) (*pyscrape.CachedResponse, bool, error) {
	var resp pyscrape.CachedResponse
	var storedAt, bodyHash string

	err := c.db.QueryRowContext(ctx, `
		SELECT url, status_code, body, body_hash, stored_at
		FROM responses
		WHERE key = ?
	`, key).Scan(&resp.URL, &resp.StatusCode, &resp.Body, &bodyHash, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	resp.StoredAt, err = time.Parse(time.RFC3339Nano, storedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse stored_at: %w", err)
	}

	if c.ttl > 0 && c.Now().Sub(resp.StoredAt) > c.ttl {
		return nil, false, c.delete(ctx, key)
	}

	// A torn write is treated as a miss.
	if bodyHash != hashBody(resp.Body) {
		return nil, false, c.delete(ctx, key)
	}

	return &resp, true, nil
}

// Set stores resp under key, replacing any previous entry.
func (c *ResponseCache) Set(ctx context.Context, key string, resp *pyscrape.CachedResponse) error {
	if key == "" {
		return pyscrape.Errorf(pyscrape.EINVALID, "cache key required")
	}
	if resp.URL == "" {
		return pyscrape.Errorf(pyscrape.EINVALID, "cached response URL required")
	}

	storedAt := resp.StoredAt
	if storedAt.IsZero() {
		storedAt = c.Now()
	}
	body := resp.Body
	if body == nil {
		body = []byte{}
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO responses (key, url, status_code, body, body_hash, stored_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			url = excluded.url,
			status_code = excluded.status_code,
			body = excluded.body,
			body_hash = excluded.body_hash,
			stored_at = excluded.stored_at
	`, key, resp.URL, resp.StatusCode, body, hashBody(body), storedAt.UTC().Format(time.RFC3339Nano))

	return err
}

// Clear removes every stored response.
func (c *ResponseCache) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM responses`)
	return err
}

// Count returns the number of stored responses, including expired ones.
func (c *ResponseCache) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM responses`).Scan(&n)
	return n, err
}

func (c *ResponseCache) delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM responses WHERE key = ?`, key)
	return err
}
