package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAnswerCache stores answers in a shared Redis instance so cache hits
// survive process restarts and are visible across replicas.
type RedisAnswerCache struct {
	rdb *redis.Client
}

var _ AnswerCache = (*RedisAnswerCache)(nil)

func NewRedisAnswerCache(rdb *redis.Client) *RedisAnswerCache {
	return &RedisAnswerCache{rdb: rdb}
}

func (c *RedisAnswerCache) Get(ctx context.Context, key string) (*CachedAnswer, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var answer CachedAnswer
	if err := json.Unmarshal(raw, &answer); err != nil {
		// Treat a corrupt entry as absent; it will be overwritten on the
		// next successful query.
		return nil, nil
	}
	return &answer, nil
}

func (c *RedisAnswerCache) Set(ctx context.Context, key string, answer *CachedAnswer, ttl time.Duration) error {
	raw, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, ttl).Err()
}
