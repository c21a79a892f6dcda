package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// FollowingCache keeps each user's following-ID index in Redis so the home
// timeline does not hit the follows table on every page load. A nil
// *FollowingCache is a valid always-miss cache.
type FollowingCache struct {
	cache *redis.Client
	ttl   time.Duration
}

func NewFollowingCache(cache *redis.Client, ttl time.Duration) *FollowingCache {
	if cache == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &FollowingCache{cache: cache, ttl: ttl}
}

func followingKey(userID int64) string { return fmt.Sprintf("following:index:%d", userID) }

// Get returns the cached following IDs and whether the key existed.
func (c *FollowingCache) Get(ctx context.Context, userID int64) ([]int64, bool) {
	if c == nil {
		return nil, false
	}
	vals, err := c.cache.LRange(ctx, followingKey(userID), 0, -1).Result()
	if err != nil || len(vals) == 0 {
		return nil, false
	}
	ids := make([]int64, 0, len(vals))
	for _, v := range vals {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, false
		}
		// a single sentinel zero marks a cached empty set
		if id == 0 {
			return []int64{}, true
		}
		ids = append(ids, id)
	}
	return ids, true
}

// Set replaces the cached index for userID.
func (c *FollowingCache) Set(ctx context.Context, userID int64, ids []int64) {
	if c == nil {
		return
	}
	key := followingKey(userID)
	members := make([]any, 0, len(ids))
	for _, id := range ids {
		members = append(members, strconv.FormatInt(id, 10))
	}
	if len(members) == 0 {
		members = append(members, "0")
	}
	pipe := c.cache.Pipeline()
	pipe.Del(ctx, key)
	pipe.RPush(ctx, key, members...)
	pipe.Expire(ctx, key, c.ttl)
	_, _ = pipe.Exec(ctx)
}

// Invalidate drops the cached index for userID.
func (c *FollowingCache) Invalidate(ctx context.Context, userID int64) {
	if c == nil {
		return
	}
	_ = c.cache.Del(ctx, followingKey(userID)).Err()
}
