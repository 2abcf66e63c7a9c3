package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskFilter narrows a task list query. The zero value matches all of the
// owner's tasks.
type TaskFilter struct {
	// Status, when non-nil, restricts results to tasks in that state.
	Status *domain.TaskStatus

	// DueBefore, when non-nil, restricts results to tasks due on or before
	// the given instant.
	DueBefore *time.Time
}

// IsZero reports whether the filter places no restriction on the list.
func (f TaskFilter) IsZero() bool {
	return f.Status == nil && f.DueBefore == nil
}

// TaskPatch describes a partial update to a task. Nil fields are left
// unchanged. DueDate distinguishes "not provided" from "set to null":
// when Set is true and Value is nil the due date is cleared.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	DueDate     OptionalTime
}

// OptionalTime is a tri-state time value for partial updates:
// absent (Set=false), explicit null (Set=true, Value=nil), or a timestamp.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// IsZero reports whether the patch changes nothing.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && !p.DueDate.Set
}

// TaskStore defines the interface for task data persistence.
// Every read and mutation is scoped to the owning user.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owner does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// ListByUser retrieves the user's tasks matching the filter,
	// ordered by creation time descending (newest first).
	// Returns an empty slice when nothing matches.
	ListByUser(ctx context.Context, userID uuid.UUID, filter TaskFilter) ([]*domain.Task, error)

	// UpdateForUser applies the patch to the task with the given ID, but only
	// if it is owned by userID, and returns the updated task.
	// Returns ErrTaskNotFound if the task is absent or owned by someone else.
	UpdateForUser(ctx context.Context, id, userID uuid.UUID, patch TaskPatch) (*domain.Task, error)

	// DeleteForUser removes the task with the given ID, but only if it is
	// owned by userID.
	// Returns ErrTaskNotFound if the task is absent or owned by someone else.
	DeleteForUser(ctx context.Context, id, userID uuid.UUID) error
}
