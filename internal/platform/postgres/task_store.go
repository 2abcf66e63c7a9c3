package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, a default
// logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist (foreign key
// violation). Returns validation errors from the domain Task if data is
// invalid.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, title, description, status, due_date, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
		task.UserID,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, task.UserID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return err
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// ListByUser implements store.TaskStore.ListByUser
// Results are ordered by creation time descending. Returns an empty slice
// when no tasks match.
func (s *PostgresTaskStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var sb strings.Builder
	sb.WriteString(`
		SELECT id, title, description, status, due_date, user_id, created_at, updated_at
		FROM tasks
		WHERE user_id = $1`)
	args := []any{userID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}
	if filter.DueBefore != nil {
		args = append(args, *filter.DueBefore)
		fmt.Fprintf(&sb, " AND due_date <= $%d", len(args))
	}
	sb.WriteString(" ORDER BY created_at DESC")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return tasks, nil
}

// UpdateForUser implements store.TaskStore.UpdateForUser
// The update is a single statement scoped to the owner, so a task belonging
// to someone else is indistinguishable from a missing one.
// Returns store.ErrTaskNotFound if no owned row matched.
func (s *PostgresTaskStore) UpdateForUser(
	ctx context.Context,
	id, userID uuid.UUID,
	patch store.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sets := []string{}
	args := []any{}

	if patch.Title != nil {
		args = append(args, strings.TrimSpace(*patch.Title))
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.Description != nil {
		args = append(args, strings.TrimSpace(*patch.Description))
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if patch.Status != nil {
		args = append(args, *patch.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if patch.DueDate.Set {
		// Explicit null clears the due date
		args = append(args, patch.DueDate.Value)
		sets = append(sets, fmt.Sprintf("due_date = $%d", len(args)))
	}

	args = append(args, time.Now().UTC())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id)
	idPos := len(args)
	args = append(args, userID)
	userPos := len(args)

	query := fmt.Sprintf(`
		UPDATE tasks
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING id, title, description, status, due_date, user_id, created_at, updated_at
	`, strings.Join(sets, ", "), idPos, userPos)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update",
				slog.String("task_id", id.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	log.Info("task updated successfully",
		slog.String("task_id", id.String()),
		slog.String("user_id", userID.String()))
	return task, nil
}

// DeleteForUser implements store.TaskStore.DeleteForUser
// Returns store.ErrTaskNotFound if no owned row matched.
func (s *PostgresTaskStore) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()),
			slog.String("user_id", userID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("task not found for delete",
			slog.String("task_id", id.String()),
			slog.String("user_id", userID.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully",
		slog.String("task_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row in the canonical column order.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status string
	var dueDate sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&dueDate,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}

	return &task, nil
}
