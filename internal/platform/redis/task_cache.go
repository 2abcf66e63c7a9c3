// Package redis implements the task-list cache on top of a Redis backend.
package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/taskdeck/taskdeck-api/internal/cache"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
)

// Stats tracks cache access counters.
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Sets    uint64 `json:"sets"`
	Deletes uint64 `json:"deletes"`
	Errors  uint64 `json:"errors"`
}

// TaskCache implements cache.TaskCache using Redis.
//
// All backend failures are absorbed here: Get reports a miss, Set and
// Invalidate log and return. The caller never sees a cache error.
type TaskCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	stats  *Stats
}

// Ensure TaskCache implements the cache.TaskCache interface
var _ cache.TaskCache = (*TaskCache)(nil)

// NewTaskCache creates a Redis-backed task cache. It accepts a client that
// should be initialized and managed by the caller. If logger is nil, the
// default logger is used.
func NewTaskCache(client *redis.Client, logger *slog.Logger) *TaskCache {
	if client == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("client cannot be nil for TaskCache")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskCache{
		client: client,
		ttl:    cache.TaskListTTL,
		logger: logger.With(slog.String("component", "task_cache")),
		stats:  &Stats{},
	}
}

// GetTaskList implements cache.TaskCache.GetTaskList.
// Any backend or decode failure is logged and treated as a miss.
func (c *TaskCache) GetTaskList(ctx context.Context, userID uuid.UUID) ([]*domain.Task, bool) {
	log := logger.FromContextOrDefault(ctx, c.logger)
	key := cache.TaskListKey(userID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			atomic.AddUint64(&c.stats.Misses, 1)
			return nil, false
		}
		atomic.AddUint64(&c.stats.Errors, 1)
		log.Warn("cache get failed, treating as miss",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, false
	}

	var tasks []*domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		log.Warn("cache entry corrupt, treating as miss",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, false
	}

	atomic.AddUint64(&c.stats.Hits, 1)
	return tasks, true
}

// SetTaskList implements cache.TaskCache.SetTaskList.
// Best-effort: failures are logged and swallowed.
func (c *TaskCache) SetTaskList(ctx context.Context, userID uuid.UUID, tasks []*domain.Task) {
	log := logger.FromContextOrDefault(ctx, c.logger)
	key := cache.TaskListKey(userID)

	data, err := json.Marshal(tasks)
	if err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		log.Warn("cache marshal failed, skipping set",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		log.Warn("cache set failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return
	}

	atomic.AddUint64(&c.stats.Sets, 1)
}

// Invalidate implements cache.TaskCache.Invalidate.
// The key is deleted, never patched. A failed delete leaves at most a
// TTL-bounded staleness window, which is logged and accepted.
func (c *TaskCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	log := logger.FromContextOrDefault(ctx, c.logger)
	key := cache.TaskListKey(userID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		log.Warn("cache invalidation failed, entry expires via TTL",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return
	}

	atomic.AddUint64(&c.stats.Deletes, 1)
}

// GetStats returns a snapshot of the current cache counters.
func (c *TaskCache) GetStats() Stats {
	return Stats{
		Hits:    atomic.LoadUint64(&c.stats.Hits),
		Misses:  atomic.LoadUint64(&c.stats.Misses),
		Sets:    atomic.LoadUint64(&c.stats.Sets),
		Deletes: atomic.LoadUint64(&c.stats.Deletes),
		Errors:  atomic.LoadUint64(&c.stats.Errors),
	}
}

// Ping checks if the Redis connection is healthy.
func (c *TaskCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
