package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/cache"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// CreateTaskInput holds the fields accepted when creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	DueDate     *time.Time
}

// TaskService orchestrates owner-scoped task operations, consulting the
// task-list cache on reads and invalidating it on every write.
type TaskService interface {
	// List returns the user's tasks matching the filter, newest first.
	// Unfiltered lists are served read-through from the cache; filtered
	// lists always hit the store, since the cache key does not encode
	// filter parameters.
	List(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)

	// Create validates and persists a new task, then invalidates the
	// owner's cached list.
	Create(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*domain.Task, error)

	// Update applies a partial update to an owned task and invalidates the
	// owner's cached list. Returns store.ErrTaskNotFound if the task is
	// absent or owned by someone else.
	Update(ctx context.Context, taskID, userID uuid.UUID, patch store.TaskPatch) (*domain.Task, error)

	// Delete removes an owned task and invalidates the owner's cached list.
	// Returns store.ErrTaskNotFound if the task is absent or owned by
	// someone else.
	Delete(ctx context.Context, taskID, userID uuid.UUID) error
}

// taskService is the default TaskService implementation.
type taskService struct {
	taskStore store.TaskStore
	taskCache cache.TaskCache
	logger    *slog.Logger
}

// Ensure taskService implements TaskService interface
var _ TaskService = (*taskService)(nil)

// NewTaskService creates a TaskService backed by the given store and cache.
// If logger is nil, a default logger will be used.
func NewTaskService(taskStore store.TaskStore, taskCache cache.TaskCache, logger *slog.Logger) TaskService {
	if taskStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskStore cannot be nil for TaskService")
	}
	if taskCache == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskCache cannot be nil for TaskService")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskService{
		taskStore: taskStore,
		taskCache: taskCache,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// List implements TaskService.List.
//
// Only the unfiltered list is eligible for caching: a hit under the owner's
// key always represents the complete list. Filtered reads neither consult
// nor populate the cache.
func (s *taskService) List(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cacheable := filter.IsZero()
	if cacheable {
		if tasks, ok := s.taskCache.GetTaskList(ctx, userID); ok {
			log.Debug("task list served from cache",
				slog.String("user_id", userID.String()),
				slog.Int("count", len(tasks)))
			return tasks, nil
		}
	}

	tasks, err := s.taskStore.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	if cacheable {
		s.taskCache.SetTaskList(ctx, userID, tasks)
	}

	return tasks, nil
}

// Create implements TaskService.Create.
func (s *taskService) Create(
	ctx context.Context,
	userID uuid.UUID,
	input CreateTaskInput,
) (*domain.Task, error) {
	task, err := domain.NewTask(userID, input.Title, input.Description, input.Status, input.DueDate)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, err
	}

	// Invalidation runs on every write path, before success is reported,
	// so a sequential caller's next read observes the write.
	s.taskCache.Invalidate(ctx, userID)

	return task, nil
}

// Update implements TaskService.Update.
func (s *taskService) Update(
	ctx context.Context,
	taskID, userID uuid.UUID,
	patch store.TaskPatch,
) (*domain.Task, error) {
	task, err := s.taskStore.UpdateForUser(ctx, taskID, userID, patch)
	if err != nil {
		return nil, err
	}

	s.taskCache.Invalidate(ctx, userID)

	return task, nil
}

// Delete implements TaskService.Delete.
func (s *taskService) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	if err := s.taskStore.DeleteForUser(ctx, taskID, userID); err != nil {
		return err
	}

	s.taskCache.Invalidate(ctx, userID)

	return nil
}
