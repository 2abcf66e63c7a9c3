package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/cache"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	platformredis "github.com/taskdeck/taskdeck-api/internal/platform/redis"
)

// newTestCache connects to a local Redis instance, skipping the test when
// none is reachable so the suite stays runnable without infrastructure.
func newTestCache(t *testing.T) (*platformredis.TaskCache, *goredis.Client) {
	t.Helper()

	addr := os.Getenv("TASKDECK_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr, DB: 15})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available at %s: %v", addr, err)
	}

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return platformredis.NewTaskCache(client, nil), client
}

func makeTasks(t *testing.T, userID uuid.UUID, titles ...string) []*domain.Task {
	t.Helper()

	tasks := make([]*domain.Task, 0, len(titles))
	for _, title := range titles {
		task, err := domain.NewTask(userID, title, "", domain.TaskStatusPending, nil)
		require.NoError(t, err)
		tasks = append(tasks, task)
	}
	return tasks
}

func TestTaskCacheRoundTrip(t *testing.T) {
	taskCache, _ := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()

	_, ok := taskCache.GetTaskList(ctx, userID)
	assert.False(t, ok, "fresh key should miss")

	tasks := makeTasks(t, userID, "alpha", "beta")
	taskCache.SetTaskList(ctx, userID, tasks)

	got, ok := taskCache.GetTaskList(ctx, userID)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, tasks[0].ID, got[0].ID)
	assert.Equal(t, "alpha", got[0].Title)

	stats := taskCache.GetStats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(1), stats.Sets)
}

func TestTaskCacheInvalidate(t *testing.T) {
	taskCache, _ := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()

	taskCache.SetTaskList(ctx, userID, makeTasks(t, userID, "alpha"))

	_, ok := taskCache.GetTaskList(ctx, userID)
	require.True(t, ok)

	taskCache.Invalidate(ctx, userID)

	_, ok = taskCache.GetTaskList(ctx, userID)
	assert.False(t, ok, "invalidated key must miss")
}

func TestTaskCacheKeysAreScopedPerUser(t *testing.T) {
	taskCache, _ := newTestCache(t)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()

	taskCache.SetTaskList(ctx, alice, makeTasks(t, alice, "alice-task"))
	taskCache.SetTaskList(ctx, bob, makeTasks(t, bob, "bob-task"))

	taskCache.Invalidate(ctx, alice)

	_, ok := taskCache.GetTaskList(ctx, alice)
	assert.False(t, ok)

	got, ok := taskCache.GetTaskList(ctx, bob)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "bob-task", got[0].Title)
}

func TestTaskCacheEntriesExpire(t *testing.T) {
	taskCache, client := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()

	taskCache.SetTaskList(ctx, userID, makeTasks(t, userID, "alpha"))

	ttl, err := client.TTL(ctx, cache.TaskListKey(userID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, cache.TaskListTTL)
}

func TestTaskCacheCorruptEntryIsAMiss(t *testing.T) {
	taskCache, client := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, client.Set(ctx, cache.TaskListKey(userID), "{not json", time.Minute).Err())

	_, ok := taskCache.GetTaskList(ctx, userID)
	assert.False(t, ok, "undecodable entry must be treated as a miss")
}

func TestTaskCacheEmptyListRoundTrips(t *testing.T) {
	taskCache, _ := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()

	taskCache.SetTaskList(ctx, userID, []*domain.Task{})

	got, ok := taskCache.GetTaskList(ctx, userID)
	require.True(t, ok, "an empty list is a valid cached value")
	assert.Empty(t, got)
}
