package store

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/platform/store/rds"
)

// kvAdapter exposes *rds.Client as the KV seam, translating misses
type kvAdapter struct{ c *rds.Client }

func newKVAdapter(c *rds.Client) KV { return kvAdapter{c: c} }

func miss(b []byte, err error) ([]byte, error) {
	if errors.Is(err, rds.ErrNil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (a kvAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	return miss(a.c.Get(ctx, key))
}

func (a kvAdapter) Take(ctx context.Context, key string) ([]byte, error) {
	return miss(a.c.GetDel(ctx, key))
}

func (a kvAdapter) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return a.c.Set(ctx, key, val, ttl)
}

func (a kvAdapter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return a.c.IncrWithTTL(ctx, key, ttl)
}

func (a kvAdapter) Ping(ctx context.Context) error { return a.c.Ping(ctx) }
func (a kvAdapter) Close() error                   { return a.c.Close() }
