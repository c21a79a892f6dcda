package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowingCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx, 1)
	assert.False(t, ok)

	cache.Set(ctx, 1, []int64{3, 5, 8})
	ids, ok := cache.Get(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, []int64{3, 5, 8}, ids)

	cache.Invalidate(ctx, 1)
	_, ok = cache.Get(ctx, 1)
	assert.False(t, ok)
}

func TestFollowingCacheEmptySet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	// a cached empty set is a hit, not a miss
	cache.Set(ctx, 7, nil)
	ids, ok := cache.Get(ctx, 7)
	require.True(t, ok)
	assert.Empty(t, ids)
}

func TestFollowingCacheSetReplaces(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, 1, []int64{3, 5})
	cache.Set(ctx, 1, []int64{9})

	ids, ok := cache.Get(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, []int64{9}, ids)
}

func TestFollowingCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewFollowingCache(client, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, 1, []int64{3})
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, 1)
	assert.False(t, ok)
}

func TestFollowingCacheNilSafe(t *testing.T) {
	var cache *FollowingCache
	ctx := context.Background()

	cache.Set(ctx, 1, []int64{3})
	_, ok := cache.Get(ctx, 1)
	assert.False(t, ok)
	cache.Invalidate(ctx, 1)

	assert.Nil(t, NewFollowingCache(nil, time.Minute))
}
