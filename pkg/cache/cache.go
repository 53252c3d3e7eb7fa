package cache

import (
	"context"
	"time"
)

// CachedAnswer is the payload stored per cache key. It must round-trip
// through serialization without losing the answer string.
type CachedAnswer struct {
	Answer string `json:"answer"`
}

// AnswerCache is a TTL-bounded key/value store for answers. Entries may
// vanish at any time; callers must treat every Get as best-effort and a
// backend error as a miss.
type AnswerCache interface {
	// Get returns the cached answer for key, or nil when absent.
	Get(ctx context.Context, key string) (*CachedAnswer, error)

	// Set stores answer under key for ttl.
	Set(ctx context.Context, key string, answer *CachedAnswer, ttl time.Duration) error
}
