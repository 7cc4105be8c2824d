package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	userKeyPrefix = "user:%d"
)

// UserTTL bounds how stale a cached user profile may be.
const UserTTL = 5 * time.Minute

// UserKey returns the cache key for a user profile.
func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) on miss.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return false, err
		}
		// redis.Nil and transient errors both degrade to a miss
		return false, nil
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL. Best-effort: failures are ignored.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if client == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	client.Set(ctx, key, b, ttl)
}

// Aside tries Redis first; on miss it calls fill (which must populate dest)
// and then stores the result with ttl.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fill func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	if err := fill(); err != nil {
		return err
	}

	SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes a key from the cache.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser removes a user's cached profile. Called after any
// profile mutation so dependent reads observe updated fields.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
