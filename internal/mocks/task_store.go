package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing with an in-memory
// task map. All mutations are owner-scoped, matching the real store.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, task *domain.Task) error
	ListByUserFn    func(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)
	UpdateForUserFn func(ctx context.Context, id, userID uuid.UUID, patch store.TaskPatch) (*domain.Task, error)
	DeleteForUserFn func(ctx context.Context, id, userID uuid.UUID) error

	mu    sync.Mutex
	Tasks map[uuid.UUID]*domain.Task

	// CallCount tracks total store accesses across all methods.
	CallCount int
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Create implements the TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	m.CallCount++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// ListByUser implements the TaskStore interface.
func (m *MockTaskStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	m.mu.Lock()
	m.CallCount++
	m.mu.Unlock()

	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, filter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := []*domain.Task{}
	for _, task := range m.Tasks {
		if task.UserID != userID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.DueBefore != nil {
			if task.DueDate == nil || task.DueDate.After(*filter.DueBefore) {
				continue
			}
		}
		copied := *task
		tasks = append(tasks, &copied)
	}

	// Newest first, matching the real store's ORDER BY created_at DESC
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	return tasks, nil
}

// UpdateForUser implements the TaskStore interface.
func (m *MockTaskStore) UpdateForUser(
	ctx context.Context,
	id, userID uuid.UUID,
	patch store.TaskPatch,
) (*domain.Task, error) {
	m.mu.Lock()
	m.CallCount++
	m.mu.Unlock()

	if m.UpdateForUserFn != nil {
		return m.UpdateForUserFn(ctx, id, userID, patch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[id]
	if !ok || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}

	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.DueDate.Set {
		task.DueDate = patch.DueDate.Value
	}
	task.UpdatedAt = time.Now().UTC()

	copied := *task
	return &copied, nil
}

// DeleteForUser implements the TaskStore interface.
func (m *MockTaskStore) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	m.CallCount++
	m.mu.Unlock()

	if m.DeleteForUserFn != nil {
		return m.DeleteForUserFn(ctx, id, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[id]
	if !ok || task.UserID != userID {
		return store.ErrTaskNotFound
	}

	delete(m.Tasks, id)
	return nil
}
