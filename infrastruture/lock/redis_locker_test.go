package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLocker(t *testing.T, expiry time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, expiry), mr
}

func TestRedisLocker(t *testing.T) {
	t.Run("Lock and unlock", func(t *testing.T) {
		l, mr := setupLocker(t, 5*time.Second)

		unlock, err := l.Lock(context.Background(), "maze:a")
		require.NoError(t, err)
		assert.True(t, mr.Exists("maze:a"))
		assert.Equal(t, 5*time.Second, mr.TTL("maze:a"))

		unlock()
		assert.False(t, mr.Exists("maze:a"))
	})

	t.Run("Held lock blocks until released", func(t *testing.T) {
		l, _ := setupLocker(t, 5*time.Second)

		unlock, err := l.Lock(context.Background(), "maze:b")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		_, err = l.Lock(ctx, "maze:b")
		assert.Error(t, err)

		unlock()
		again, err := l.Lock(context.Background(), "maze:b")
		require.NoError(t, err)
		again()
	})

	t.Run("Keys are independent", func(t *testing.T) {
		l, _ := setupLocker(t, 5*time.Second)

		unlockA, err := l.Lock(context.Background(), "maze:c")
		require.NoError(t, err)
		defer unlockA()

		unlockB, err := l.Lock(context.Background(), "maze:d")
		require.NoError(t, err)
		unlockB()
	})

	t.Run("Expired lock can be taken", func(t *testing.T) {
		l, mr := setupLocker(t, 2*time.Second)

		_, err := l.Lock(context.Background(), "maze:e")
		require.NoError(t, err)
		mr.FastForward(3 * time.Second)

		unlock, err := l.Lock(context.Background(), "maze:e")
		require.NoError(t, err)
		unlock()
	})

	t.Run("Zero expiry uses default", func(t *testing.T) {
		l, mr := setupLocker(t, 0)
		assert.Equal(t, defaultExpiry, l.expiry)

		unlock, err := l.Lock(context.Background(), "maze:f")
		require.NoError(t, err)
		defer unlock()
		assert.Equal(t, defaultExpiry, mr.TTL("maze:f"))
	})
}
