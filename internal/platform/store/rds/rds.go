// Package rds is the go-redis client behind the store KV seam
package rds

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNil is the driver miss sentinel
var ErrNil = redis.Nil

// Config configures the client
type Config struct {
	URL string
}

// Client wraps *redis.Client with the few commands the services use
type Client struct{ r *redis.Client }

// Open parses the URL, connects and pings
func Open(ctx context.Context, cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	c := &Client{r: redis.NewClient(opts)}
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return c, nil
}

// Get returns the value or ErrNil
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	return c.r.Get(ctx, key).Bytes()
}

// GetDel reads and removes key in one round trip
func (c *Client) GetDel(ctx context.Context, key string) ([]byte, error) {
	return c.r.GetDel(ctx, key).Bytes()
}

// Set stores val, ttl zero means no expiry
func (c *Client) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return c.r.Set(ctx, key, val, ttl).Err()
}

// IncrWithTTL increments key and sets ttl when the key is new
func (c *Client) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.r.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.ExpireNX(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Ping checks the connection
func (c *Client) Ping(ctx context.Context) error { return c.r.Ping(ctx).Err() }

// Close closes the pool
func (c *Client) Close() error { return c.r.Close() }
