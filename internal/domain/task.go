package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common task validation errors
var (
	ErrEmptyTaskID    = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle = errors.New("task title cannot be empty")
	ErrEmptyTaskOwner = errors.New("task owner cannot be empty")
	ErrInvalidStatus  = errors.New("invalid task status")
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Valid task statuses.
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

// Task represents a single task owned by exactly one user.
// Tasks are only ever visible to and mutable by their owner.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	UserID      uuid.UUID  `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user.
// Status defaults to pending when empty. Returns an error if validation fails.
func NewTask(userID uuid.UUID, title, description string, status TaskStatus, dueDate *time.Time) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      status,
		DueDate:     dueDate,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskOwner
	}

	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}

	return nil
}
