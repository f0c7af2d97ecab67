package lock

import (
	"context"
	"time"

	"github.com/beka-birhanu/simplemaze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultExpiry = 10 * time.Second
	defaultTries  = 32
)

var _ i.Locker = &RedisLocker{}

// RedisLocker hands out distributed mutexes backed by Redis.
type RedisLocker struct {
	locker *redsync.Redsync
	expiry time.Duration
	tries  int
}

// NewRedisLocker initializes a RedisLocker on the provided Redis client.
// A zero expiry selects the default lock lifetime.
func NewRedisLocker(client *redis.Client, expiry time.Duration) *RedisLocker {
	if expiry <= 0 {
		expiry = defaultExpiry
	}
	pool := goredis.NewPool(client)
	return &RedisLocker{
		locker: redsync.New(pool),
		expiry: expiry,
		tries:  defaultTries,
	}
}

// Lock acquires the mutex named key, retrying until ctx is done or the tries run out.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutex := l.locker.NewMutex(key, redsync.WithExpiry(l.expiry), redsync.WithTries(l.tries))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		_, _ = mutex.Unlock()
	}, nil
}
