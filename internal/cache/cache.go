package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil *Client behaves as a cache that never hits.
type Client struct {
	client *redis.Client
}

// Options configures the redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	// DialTimeout bounds connection attempts so a down redis costs little per request.
	DialTimeout time.Duration
}

// New creates a new Redis-backed cache client.
func New(opts Options) *Client {
	dialTimeout := opts.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 500 * time.Millisecond
	}
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: dialTimeout,
		MaxRetries:  -1,
	})}
}

// Ping reports whether redis is reachable. Used at startup for diagnostics only.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("cache disabled")
	}
	return c.client.Ping(ctx).Err()
}

// GetJSON decodes the value stored at key into dst and reports whether it was found.
// Missing keys, redis failures and undecodable payloads all report a miss.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetJSON stores value as JSON with ttl, ignoring redis errors.
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, payload, ttl).Err()
}

// Counter returns the integer stored at key, zero when the key is unset.
// ok is false when redis cannot answer or the value is not an integer.
func (c *Client) Counter(ctx context.Context, key string) (n int64, ok bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	n, err := c.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

// Incr increments the counter at key. A nil client has nothing to bump.
func (c *Client) Incr(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, key).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
