package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/simplemaze/maze"
	"github.com/beka-birhanu/simplemaze/service/i"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const routeKeyFmt = "maze:%s:route"

var _ i.RouteCache = &RedisRouteCache{}

// RedisRouteCache stores routes as Redis lists of "col,row" entries with a TTL.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRouteCache initializes a RedisRouteCache with the provided Redis client and TTL.
func NewRedisRouteCache(client *redis.Client, ttlSeconds int) *RedisRouteCache {
	return &RedisRouteCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Get implements i.RouteCache.
func (c *RedisRouteCache) Get(ctx context.Context, id uuid.UUID) ([]maze.CellPosition, bool, error) {
	entries, err := c.client.LRange(ctx, routeKey(id), 0, -1).Result()
	if err != nil {
		return nil, false, err
	}
	if len(entries) == 0 {
		return nil, false, nil
	}

	route, err := decodeRoute(entries)
	if err != nil {
		return nil, false, err
	}
	return route, true, nil
}

// Set implements i.RouteCache.
func (c *RedisRouteCache) Set(ctx context.Context, id uuid.UUID, route []maze.CellPosition) error {
	if len(route) == 0 {
		return nil
	}

	key := routeKey(id)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.RPush(ctx, key, encodeRoute(route)...)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	return err
}

// Invalidate implements i.RouteCache.
func (c *RedisRouteCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, routeKey(id)).Err()
}

func routeKey(id uuid.UUID) string {
	return fmt.Sprintf(routeKeyFmt, id)
}

func encodeRoute(route []maze.CellPosition) []interface{} {
	entries := make([]interface{}, len(route))
	for i, pos := range route {
		entries[i] = fmt.Sprintf("%d,%d", pos.Col, pos.Row)
	}
	return entries
}

func decodeRoute(entries []string) ([]maze.CellPosition, error) {
	route := make([]maze.CellPosition, len(entries))
	for i, entry := range entries {
		if _, err := fmt.Sscanf(entry, "%d,%d", &route[i].Col, &route[i].Row); err != nil {
			return nil, fmt.Errorf("cached route entry %q: %w", entry, err)
		}
	}
	return route, nil
}
