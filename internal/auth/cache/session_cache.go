package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "auth:token:" // auth:token:{token} -> user_id

// SessionCache keeps a token -> user id mapping in Redis so the session
// table is only hit on cache misses. Entries live exactly as long as the
// session itself: Put sets the key TTL to the session's remaining
// lifetime and lookups never extend it.
type SessionCache struct {
	rdb *redis.Client
}

func NewSessionCache(rdb *redis.Client) *SessionCache {
	return &SessionCache{rdb: rdb}
}

// GetUserID returns the cached user id for the token, or "" on a miss.
func (c *SessionCache) GetUserID(ctx context.Context, token string) (string, error) {
	userID, err := c.rdb.Get(ctx, tokenKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Put caches the mapping until expiresAt. Sessions that are already
// past their expiry are not cached at all.
func (c *SessionCache) Put(ctx context.Context, token, userID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, tokenKeyPrefix+token, userID, ttl).Err()
}

func (c *SessionCache) Delete(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, tokenKeyPrefix+token).Err()
}
