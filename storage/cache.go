package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"taskboard/domain"
)

type snapshotSource interface {
	GetAll() []domain.Task
}

// Cache wraps the task store with a Redis-backed snapshot cache so hosting
// shells can serve read traffic without touching the store on every poll.
// Mutations must call Evict so the next read re-derives from the store.
type Cache struct {
	base  snapshotSource
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching snapshot reader using the given Redis client and
// TTL. A nil client disables caching and reads fall through to the store.
func NewCache(base snapshotSource, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base store is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{base: base, redis: client, ttl: ttl}
}

// Snapshot returns the cached task collection, falling back to the store on
// a miss or any redis failure.
func (c *Cache) Snapshot(ctx context.Context) []domain.Task {
	if tasks, ok := c.loadFromCache(ctx); ok {
		return tasks
	}
	tasks := c.base.GetAll()
	c.store(ctx, tasks)
	return tasks
}

// GetAll satisfies the projection source contract so a projector can read
// through the cache transparently.
func (c *Cache) GetAll() []domain.Task {
	return c.Snapshot(context.Background())
}

// Evict drops the cached snapshot. Wired to the mutation router's
// task-changed notification.
func (c *Cache) Evict(ctx context.Context) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, snapshotKey).Err()
}

const snapshotKey = "tasks:snapshot"

func (c *Cache) loadFromCache(ctx context.Context) ([]domain.Task, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the store without failing.
			_ = c.redis.Del(ctx, snapshotKey).Err()
		}
		return nil, false
	}
	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		_ = c.redis.Del(ctx, snapshotKey).Err()
		return nil, false
	}
	return tasks, true
}

func (c *Cache) store(ctx context.Context, tasks []domain.Task) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, snapshotKey, data, c.ttl).Err()
}
