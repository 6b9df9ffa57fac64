package kv

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each record as a Redis string. Update uses WATCH/MULTI
// and retries when a watched key changes underneath it.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string, out any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, decode(data, out)
}

func (s *RedisStore) Update(ctx context.Context, keys []string, fn func(tx Tx) error) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := s.client.Watch(ctx, func(rtx *redis.Tx) error {
			tx := newBufferedTx(keys, func(key string) ([]byte, bool, error) {
				data, err := rtx.Get(ctx, key).Bytes()
				if errors.Is(err, redis.Nil) {
					return nil, false, nil
				}
				if err != nil {
					return nil, false, err
				}
				return data, true, nil
			})
			if err := fn(tx); err != nil {
				return err
			}
			writes := tx.writes()
			if len(writes) == 0 {
				return nil
			}
			_, err := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				for _, w := range writes {
					if w.value == nil {
						pipe.Del(ctx, w.key)
					} else {
						pipe.Set(ctx, w.key, w.value, 0)
					}
				}
				return nil
			})
			return err
		}, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			backoff(ctx, attempt)
			continue
		}
		return err
	}
	return ErrConflict
}

func (s *RedisStore) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Close is a no-op: the client is owned by the caller.
func (s *RedisStore) Close() error {
	return nil
}

func backoff(ctx context.Context, attempt int) {
	d := time.Duration(attempt+1) * time.Millisecond
	if d > 20*time.Millisecond {
		d = 20 * time.Millisecond
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
