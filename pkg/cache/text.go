package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TextCache stores short generated strings under a hashed key.
type TextCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewTextCache(client *redis.Client, prefix string, ttl time.Duration) *TextCache {
	return &TextCache{client: client, prefix: prefix, ttl: ttl}
}

// Key hashes parts into a fixed-length cache key.
func (c *TextCache) Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	sum := hex.EncodeToString(h.Sum(nil))
	if c == nil {
		return sum
	}
	return c.prefix + ":" + sum
}

func (c *TextCache) Get(ctx context.Context, key string) (string, bool, error) {
	if c == nil || c.client == nil {
		return "", false, nil
	}
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *TextCache) Set(ctx context.Context, key, value string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, value, c.ttl).Err()
}
