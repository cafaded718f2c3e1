package lock_test

import (
	"context"
	"resort/infras/otel/mocks"
	"resort/shared/lock"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T) (lock.Locker, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	return lock.New(client, mocks.NewOtel()), mr
}

func TestLocker_Acquire(t *testing.T) {
	tests := []struct {
		name      string
		held      map[string]string
		ids       []string
		wantErr   bool
		wantOwned []string
		wantFree  []string
	}{
		{
			name:      "locks every room",
			ids:       []string{"room-2", "room-1", "room-2"},
			wantOwned: []string{"room-1", "room-2"},
		},
		{
			name:     "busy room rolls back the rooms already taken",
			held:     map[string]string{"room-3": "booking-b"},
			ids:      []string{"room-1", "room-2", "room-3"},
			wantErr:  true,
			wantFree: []string{"room-1", "room-2"},
		},
		{
			name:     "busy first room takes nothing",
			held:     map[string]string{"room-1": "booking-b"},
			ids:      []string{"room-1", "room-2"},
			wantErr:  true,
			wantFree: []string{"room-2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locker, mr := newLocker(t)

			for id, owner := range tt.held {
				require.NoError(t, mr.Set(lock.Key(id), owner))
			}

			err := locker.Acquire(context.Background(), tt.ids, "booking-a", time.Minute)

			if tt.wantErr {
				assert.ErrorIs(t, err, lock.ErrLocked)
			} else {
				assert.NoError(t, err)
			}

			for _, id := range tt.wantOwned {
				owner, err := mr.Get(lock.Key(id))
				require.NoError(t, err)
				assert.Equal(t, "booking-a", owner)
				assert.Equal(t, time.Minute, mr.TTL(lock.Key(id)))
			}

			for _, id := range tt.wantFree {
				assert.False(t, mr.Exists(lock.Key(id)), id)
			}

			for id, owner := range tt.held {
				got, err := mr.Get(lock.Key(id))
				require.NoError(t, err)
				assert.Equal(t, owner, got)
			}
		})
	}
}

func TestLocker_Release(t *testing.T) {
	locker, mr := newLocker(t)
	ctx := context.Background()

	require.NoError(t, locker.Acquire(ctx, []string{"room-1", "room-2"}, "booking-a", time.Minute))
	require.NoError(t, mr.Set(lock.Key("room-3"), "booking-b"))

	require.NoError(t, locker.Release(ctx, []string{"room-1", "room-2", "room-3", "room-4"}, "booking-a"))

	assert.False(t, mr.Exists(lock.Key("room-1")))
	assert.False(t, mr.Exists(lock.Key("room-2")))

	owner, err := mr.Get(lock.Key("room-3"))
	require.NoError(t, err)
	assert.Equal(t, "booking-b", owner)
}

func TestLocker_ExpiredLockCanBeRetaken(t *testing.T) {
	locker, mr := newLocker(t)
	ctx := context.Background()

	require.NoError(t, locker.Acquire(ctx, []string{"room-1"}, "booking-a", 10*time.Second))
	assert.ErrorIs(t, locker.Acquire(ctx, []string{"room-1"}, "booking-b", 10*time.Second), lock.ErrLocked)

	mr.FastForward(11 * time.Second)

	require.NoError(t, locker.Acquire(ctx, []string{"room-1"}, "booking-b", 10*time.Second))

	require.NoError(t, locker.Release(ctx, []string{"room-1"}, "booking-a"))
	assert.True(t, mr.Exists(lock.Key("room-1")))
}
