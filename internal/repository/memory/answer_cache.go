package memory

import (
	"context"
	"time"

	pkgcache "tabular-qa-be/pkg/cache"

	gocache "github.com/patrickmn/go-cache"
)

// AnswerCache is the in-process fallback used when Redis is unreachable at
// startup, and the cache of choice in tests. Entries do not survive a
// restart and are not shared across replicas.
type AnswerCache struct {
	cache *gocache.Cache
}

var _ pkgcache.AnswerCache = (*AnswerCache)(nil)

func NewAnswerCache() *AnswerCache {
	// Default expiration of 1 hour, purging expired items every 10 minutes.
	c := gocache.New(1*time.Hour, 10*time.Minute)
	return &AnswerCache{
		cache: c,
	}
}

func (r *AnswerCache) Get(ctx context.Context, key string) (*pkgcache.CachedAnswer, error) {
	if x, found := r.cache.Get(key); found {
		return x.(*pkgcache.CachedAnswer), nil
	}
	return nil, nil
}

func (r *AnswerCache) Set(ctx context.Context, key string, answer *pkgcache.CachedAnswer, ttl time.Duration) error {
	r.cache.Set(key, answer, ttl)
	return nil
}
