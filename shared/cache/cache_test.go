package cache_test

import (
	"context"
	"resort/infras/otel/mocks"
	"resort/shared/cache"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel()), mr
}

func TestRedisCache_Increment(t *testing.T) {
	tests := []struct {
		name      string
		seed      func(mr *miniredis.Miniredis)
		times     int
		wantCount int64
		wantTTL   time.Duration
	}{
		{
			name:      "first increment opens the window",
			times:     1,
			wantCount: 1,
			wantTTL:   30 * time.Second,
		},
		{
			name:      "later increments keep the window",
			times:     4,
			wantCount: 4,
			wantTTL:   30 * time.Second,
		},
		{
			name: "counter from an open window keeps its ttl",
			seed: func(mr *miniredis.Miniredis) {
				require.NoError(t, mr.Set("limiter:k", "7"))
				mr.SetTTL("limiter:k", 5*time.Second)
			},
			times:     1,
			wantCount: 8,
			wantTTL:   5 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mr := newCache(t)

			if tt.seed != nil {
				tt.seed(mr)
			}

			var (
				count int64
				err   error
			)

			for range tt.times {
				count, err = c.Increment(context.Background(), "limiter:k", 30)
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantTTL, mr.TTL("limiter:k"))
		})
	}
}

func TestRedisCache_IncrementRestartsAfterExpiry(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	for range 3 {
		_, err := c.Increment(ctx, "limiter:k", 10)
		require.NoError(t, err)
	}

	mr.FastForward(11 * time.Second)

	count, err := c.Increment(ctx, "limiter:k", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisCache_SaveGet(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "room:get:r-1", map[string]any{"number": "101"}, 60))
	assert.Equal(t, time.Minute, mr.TTL("room:get:r-1"))

	var got map[string]any
	require.NoError(t, c.Get(ctx, "room:get:r-1", &got))
	assert.Equal(t, map[string]any{"number": "101"}, got)

	err := c.Get(ctx, "room:get:r-2", &got)
	assert.ErrorIs(t, err, cache.Nil)

	require.NoError(t, c.Save(ctx, "room:gets:a", "x", 60))
	require.NoError(t, c.Save(ctx, "room:gets:b", "y", 60))
	require.NoError(t, c.Clear(ctx, "room:gets*"))
	assert.False(t, mr.Exists("room:gets:a"))
	assert.False(t, mr.Exists("room:gets:b"))
	assert.True(t, mr.Exists("room:get:r-1"))
}
