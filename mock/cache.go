package mock

import (
	"context"

	"github.com/fwojciec/pyscrape"
)

var _ pyscrape.Cache = (*Cache)(nil)

// Cache is a mock implementation of pyscrape.Cache.
type Cache struct {
	GetFn   func(ctx context.Context, key string) (*pyscrape.CachedResponse, bool, error)
	SetFn   func(ctx context.Context, key string, resp *pyscrape.CachedResponse) error
	ClearFn func(ctx context.Context) error
}

func (c *Cache) Get(ctx context.Context, key string) (*pyscrape.CachedResponse, bool, error) {
	return c.GetFn(ctx, key)
}

func (c *Cache) Set(ctx context.Context, key string, resp *pyscrape.CachedResponse) error {
	return c.SetFn(ctx, key, resp)
}

func (c *Cache) Clear(ctx context.Context) error {
	return c.ClearFn(ctx)
}
