package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func newTestService(t *testing.T) (service.TaskService, *mocks.MockTaskStore, *mocks.MemoryTaskCache) {
	t.Helper()

	taskStore := mocks.NewMockTaskStore()
	taskCache := mocks.NewMemoryTaskCache()
	svc := service.NewTaskService(taskStore, taskCache, nil)
	return svc, taskStore, taskCache
}

func mustCreate(t *testing.T, svc service.TaskService, userID uuid.UUID, title string) *domain.Task {
	t.Helper()

	task, err := svc.Create(context.Background(), userID, service.CreateTaskInput{Title: title})
	require.NoError(t, err)
	return task
}

func TestTaskServiceList(t *testing.T) {
	t.Parallel()

	t.Run("populates cache on miss", func(t *testing.T) {
		t.Parallel()

		svc, _, taskCache := newTestService(t)
		userID := uuid.New()
		mustCreate(t, svc, userID, "alpha")

		tasks, err := svc.List(context.Background(), userID, store.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, tasks, 1)

		assert.True(t, taskCache.Contains(userID), "unfiltered list should populate the cache")
	})

	t.Run("serves repeat read from cache without store access", func(t *testing.T) {
		t.Parallel()

		svc, taskStore, _ := newTestService(t)
		userID := uuid.New()
		mustCreate(t, svc, userID, "alpha")

		_, err := svc.List(context.Background(), userID, store.TaskFilter{})
		require.NoError(t, err)

		storeCalls := taskStore.CallCount
		tasks, err := svc.List(context.Background(), userID, store.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, tasks, 1)

		assert.Equal(t, storeCalls, taskStore.CallCount, "cached read must not touch the store")
	})

	t.Run("filtered list bypasses cache entirely", func(t *testing.T) {
		t.Parallel()

		svc, taskStore, taskCache := newTestService(t)
		userID := uuid.New()
		mustCreate(t, svc, userID, "alpha")

		pending := domain.TaskStatusPending
		filter := store.TaskFilter{Status: &pending}

		gets := taskCache.Gets
		sets := taskCache.Sets
		storeCalls := taskStore.CallCount

		tasks, err := svc.List(context.Background(), userID, filter)
		require.NoError(t, err)
		require.Len(t, tasks, 1)

		assert.Equal(t, gets, taskCache.Gets, "filtered list must not consult the cache")
		assert.Equal(t, sets, taskCache.Sets, "filtered list must not populate the cache")
		assert.Equal(t, storeCalls+1, taskStore.CallCount)
	})

	t.Run("cache get failure falls back to store", func(t *testing.T) {
		t.Parallel()

		svc, _, taskCache := newTestService(t)
		userID := uuid.New()
		mustCreate(t, svc, userID, "alpha")

		taskCache.FailGets = true

		tasks, err := svc.List(context.Background(), userID, store.TaskFilter{})
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})

	t.Run("cache set failure does not fail the read", func(t *testing.T) {
		t.Parallel()

		svc, _, taskCache := newTestService(t)
		userID := uuid.New()
		mustCreate(t, svc, userID, "alpha")

		taskCache.FailSets = true

		tasks, err := svc.List(context.Background(), userID, store.TaskFilter{})
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
		assert.False(t, taskCache.Contains(userID))
	})

	t.Run("propagates store error", func(t *testing.T) {
		t.Parallel()

		svc, taskStore, _ := newTestService(t)
		wantErr := errors.New("connection refused")
		taskStore.ListByUserFn = func(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error) {
			return nil, wantErr
		}

		_, err := svc.List(context.Background(), uuid.New(), store.TaskFilter{})
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("empty list is cached", func(t *testing.T) {
		t.Parallel()

		svc, taskStore, taskCache := newTestService(t)
		userID := uuid.New()

		tasks, err := svc.List(context.Background(), userID, store.TaskFilter{})
		require.NoError(t, err)
		assert.Empty(t, tasks)
		assert.True(t, taskCache.Contains(userID))

		storeCalls := taskStore.CallCount
		tasks, err = svc.List(context.Background(), userID, store.TaskFilter{})
		require.NoError(t, err)
		assert.Empty(t, tasks)
		assert.NotNil(t, tasks)
		assert.Equal(t, storeCalls, taskStore.CallCount)
	})
}

func TestTaskServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("persists and invalidates cache", func(t *testing.T) {
		t.Parallel()

		svc, _, taskCache := newTestService(t)
		userID := uuid.New()

		// Prime the cache with the current (empty) list.
		_, err := svc.List(context.Background(), userID, store.TaskFilter{})
		require.NoError(t, err)
		require.True(t, taskCache.Contains(userID))

		task, err := svc.Create(context.Background(), userID, service.CreateTaskInput{
			Title:       "alpha",
			Description: "first",
		})
		require.NoError(t, err)
		assert.Equal(t, "alpha", task.Title)
		assert.Equal(t, domain.TaskStatusPending, task.Status)

		assert.False(t, taskCache.Contains(userID), "create must invalidate the cached list")
	})

	t.Run("next read after create sees the new task", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		userID := uuid.New()

		mustCreate(t, svc, userID, "alpha")

		tasks, err := svc.List(context.Background(), userID, store.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, tasks, 1)

		mustCreate(t, svc, userID, "beta")

		tasks, err = svc.List(context.Background(), userID, store.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, tasks, 2, "read after create must include the new task")
	})

	t.Run("rejects invalid input without touching store", func(t *testing.T) {
		t.Parallel()

		svc, taskStore, taskCache := newTestService(t)

		_, err := svc.Create(context.Background(), uuid.New(), service.CreateTaskInput{Title: "   "})
		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
		assert.Zero(t, taskStore.CallCount)
		assert.Zero(t, taskCache.Deletes)
	})

	t.Run("store failure skips invalidation", func(t *testing.T) {
		t.Parallel()

		svc, taskStore, taskCache := newTestService(t)
		wantErr := errors.New("insert failed")
		taskStore.CreateFn = func(ctx context.Context, task *domain.Task) error {
			return wantErr
		}

		_, err := svc.Create(context.Background(), uuid.New(), service.CreateTaskInput{Title: "alpha"})
		assert.ErrorIs(t, err, wantErr)
		assert.Zero(t, taskCache.Deletes)
	})

	t.Run("cache delete failure does not fail the write", func(t *testing.T) {
		t.Parallel()

		svc, _, taskCache := newTestService(t)
		taskCache.FailDeletes = true

		_, err := svc.Create(context.Background(), uuid.New(), service.CreateTaskInput{Title: "alpha"})
		assert.NoError(t, err)
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	t.Parallel()

	t.Run("applies patch and invalidates cache", func(t *testing.T) {
		t.Parallel()

		svc, _, taskCache := newTestService(t)
		userID := uuid.New()
		task := mustCreate(t, svc, userID, "alpha")

		_, err := svc.List(context.Background(), userID, store.TaskFilter{})
		require.NoError(t, err)
		require.True(t, taskCache.Contains(userID))

		completed := domain.TaskStatusCompleted
		updated, err := svc.Update(context.Background(), task.ID, userID, store.TaskPatch{Status: &completed})
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, updated.Status)

		assert.False(t, taskCache.Contains(userID), "update must invalidate the cached list")
	})

	t.Run("clears due date when patch carries explicit null", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		userID := uuid.New()

		due := time.Now().Add(time.Hour).UTC()
		task, err := svc.Create(context.Background(), userID, service.CreateTaskInput{
			Title:   "alpha",
			DueDate: &due,
		})
		require.NoError(t, err)
		require.NotNil(t, task.DueDate)

		updated, err := svc.Update(context.Background(), task.ID, userID, store.TaskPatch{
			DueDate: store.OptionalTime{Set: true, Value: nil},
		})
		require.NoError(t, err)
		assert.Nil(t, updated.DueDate)
	})

	t.Run("another user's task reports not found", func(t *testing.T) {
		t.Parallel()

		svc, _, taskCache := newTestService(t)
		owner := uuid.New()
		task := mustCreate(t, svc, owner, "alpha")

		intruder := uuid.New()
		deletes := taskCache.Deletes
		title := "stolen"
		_, err := svc.Update(context.Background(), task.ID, intruder, store.TaskPatch{Title: &title})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.Equal(t, deletes, taskCache.Deletes, "failed update must not invalidate")
	})

	t.Run("missing task reports not found", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)

		title := "ghost"
		_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), store.TaskPatch{Title: &title})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskServiceDelete(t *testing.T) {
	t.Parallel()

	t.Run("removes task and invalidates cache", func(t *testing.T) {
		t.Parallel()

		svc, _, taskCache := newTestService(t)
		userID := uuid.New()
		task := mustCreate(t, svc, userID, "alpha")

		_, err := svc.List(context.Background(), userID, store.TaskFilter{})
		require.NoError(t, err)
		require.True(t, taskCache.Contains(userID))

		require.NoError(t, svc.Delete(context.Background(), task.ID, userID))
		assert.False(t, taskCache.Contains(userID), "delete must invalidate the cached list")

		tasks, err := svc.List(context.Background(), userID, store.TaskFilter{})
		require.NoError(t, err)
		assert.Empty(t, tasks, "read after delete must not include the task")
	})

	t.Run("another user's task reports not found", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		owner := uuid.New()
		task := mustCreate(t, svc, owner, "alpha")

		err := svc.Delete(context.Background(), task.ID, uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		tasks, err := svc.List(context.Background(), owner, store.TaskFilter{})
		require.NoError(t, err)
		assert.Len(t, tasks, 1, "owner's task must survive a foreign delete attempt")
	})

	t.Run("missing task reports not found", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		err := svc.Delete(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestNewTaskServicePanicsOnNilDependencies(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		service.NewTaskService(nil, mocks.NewMemoryTaskCache(), nil)
	})
	assert.Panics(t, func() {
		service.NewTaskService(mocks.NewMockTaskStore(), nil, nil)
	})
}
