// Package lock provides short lived advisory locks on rooms backed by redis.
// A lock is owned by the token passed to Acquire and can only be released by the same owner.
package lock

//go:generate go run go.uber.org/mock/mockgen -source=./lock.go -destination=./mocks/lock_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"resort/infras/otel"
	"resort/shared/constant"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix = "room_lock:"
)

var (
	ErrLocked = errors.New("resource is locked by another request")

	releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)
)

type Locker interface {
	Acquire(ctx context.Context, ids []string, owner string, ttl time.Duration) error
	Release(ctx context.Context, ids []string, owner string) error
}

type redisLocker struct {
	client *redis.Client
	otel   otel.Otel
}

func New(client *redis.Client, otel otel.Otel) Locker {
	return &redisLocker{
		client: client,
		otel:   otel,
	}
}

// Key returns the redis key guarding id.
func Key(id string) string {
	return keyPrefix + id
}

// Acquire locks every id or none of them. Ids are locked in sorted order.
func (l *redisLocker) Acquire(ctx context.Context, ids []string, owner string, ttl time.Duration) (err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelLockScopeName, constant.OtelLockScopeName+".Acquire")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	scope.SetAttribute("lock.ids", sorted)

	acquired := make([]string, 0, len(sorted))

	for _, id := range sorted {
		ok, err := l.client.SetNX(ctx, Key(id), owner, ttl).Result()
		if err != nil {
			l.rollback(ctx, acquired, owner)

			return fmt.Errorf("failed to acquire lock for %s: %w", id, err)
		}

		if !ok {
			log.Warn().Str("id", id).Str("owner", owner).Msg("lock already held")
			l.rollback(ctx, acquired, owner)

			return fmt.Errorf("%w: %s", ErrLocked, id)
		}

		acquired = append(acquired, id)
	}

	return nil
}

func (l *redisLocker) Release(ctx context.Context, ids []string, owner string) (err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelLockScopeName, constant.OtelLockScopeName+".Release")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var errs []error

	for _, id := range ids {
		if err := releaseScript.Run(ctx, l.client, []string{Key(id)}, owner).Err(); err != nil && !errors.Is(err, redis.Nil) {
			log.Error().Err(err).Str("id", id).Msg("failed to release lock")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (l *redisLocker) rollback(ctx context.Context, ids []string, owner string) {
	if len(ids) == 0 {
		return
	}

	if err := l.Release(ctx, ids, owner); err != nil {
		log.Error().Err(err).Msg("failed to roll back partially acquired locks")
	}
}
