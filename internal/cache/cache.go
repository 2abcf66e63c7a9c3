// Package cache defines the caching capability consumed by the service layer.
//
// The task-list cache is a read-through cache keyed per owner. Implementations
// must fail open: a Get against an unreachable backend reports a miss, and Set
// and Invalidate are best-effort operations whose failures are logged rather
// than surfaced, so correctness never depends on the cache being healthy. The
// TTL bounds the staleness window left by a failed invalidation.
package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskListTTL is the lifetime of a cached task list. It is the safety net
// that bounds staleness when an invalidation is lost.
const TaskListTTL = 60 * time.Second

// taskListKeyPrefix namespaces cache keys per owner so invalidating one
// user's entry can never affect another's.
const taskListKeyPrefix = "tasks:"

// TaskListKey returns the cache key for a user's task list.
func TaskListKey(userID uuid.UUID) string {
	return taskListKeyPrefix + userID.String()
}

// TaskCache holds serialized task-list results keyed by owner.
//
// Only the unfiltered list is ever stored under a user's key; the key does
// not encode filter parameters, so filtered reads must bypass the cache.
type TaskCache interface {
	// GetTaskList returns the cached task list for the user, or ok=false on
	// a miss. Backend failures are treated as misses (fail-open).
	GetTaskList(ctx context.Context, userID uuid.UUID) (tasks []*domain.Task, ok bool)

	// SetTaskList stores the task list for the user with TaskListTTL.
	// Best-effort: failures are logged, never returned.
	SetTaskList(ctx context.Context, userID uuid.UUID, tasks []*domain.Task)

	// Invalidate deletes the user's cached task list. The entry is removed,
	// not updated in place, so a racing read can never re-cache a pre-write
	// snapshot on top of the invalidation. Best-effort: failures are logged.
	Invalidate(ctx context.Context, userID uuid.UUID)
}
