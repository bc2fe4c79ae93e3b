package mock

import (
	"context"

	"github.com/fwojciec/pyscrape"
)

// Compile-time interface verification.
var (
	_ pyscrape.ArchiveStore  = (*ArchiveStore)(nil)
	_ pyscrape.DomainLimiter = (*DomainLimiter)(nil)
)

// ArchiveStore is a mock implementation of pyscrape.ArchiveStore.
type ArchiveStore struct {
	SaveFn func(ctx context.Context, name string, data []byte) (string, error)
}

func (s *ArchiveStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	return s.SaveFn(ctx, name, data)
}

// DomainLimiter is a mock implementation of pyscrape.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
