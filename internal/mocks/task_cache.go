package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/cache"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// MemoryTaskCache is a deterministic in-memory cache.TaskCache for tests.
// Entries are stored as serialized JSON, matching the wire behavior of the
// Redis implementation. Failure toggles simulate an unreachable backend:
// a failing Get reports a miss, failing Set/Invalidate are silent no-ops,
// which is exactly the fail-open contract.
type MemoryTaskCache struct {
	mu      sync.Mutex
	entries map[string][]byte

	// Failure toggles
	FailGets    bool
	FailSets    bool
	FailDeletes bool

	// Access counters
	Gets    int
	Hits    int
	Sets    int
	Deletes int
}

// Ensure MemoryTaskCache implements cache.TaskCache interface
var _ cache.TaskCache = (*MemoryTaskCache)(nil)

// NewMemoryTaskCache creates an empty in-memory task cache.
func NewMemoryTaskCache() *MemoryTaskCache {
	return &MemoryTaskCache{
		entries: make(map[string][]byte),
	}
}

// GetTaskList implements cache.TaskCache.GetTaskList.
func (c *MemoryTaskCache) GetTaskList(ctx context.Context, userID uuid.UUID) ([]*domain.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Gets++
	if c.FailGets {
		return nil, false
	}

	data, ok := c.entries[cache.TaskListKey(userID)]
	if !ok {
		return nil, false
	}

	var tasks []*domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, false
	}

	c.Hits++
	return tasks, true
}

// SetTaskList implements cache.TaskCache.SetTaskList.
func (c *MemoryTaskCache) SetTaskList(ctx context.Context, userID uuid.UUID, tasks []*domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Sets++
	if c.FailSets {
		return
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		return
	}
	c.entries[cache.TaskListKey(userID)] = data
}

// Invalidate implements cache.TaskCache.Invalidate.
func (c *MemoryTaskCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Deletes++
	if c.FailDeletes {
		return
	}

	delete(c.entries, cache.TaskListKey(userID))
}

// Contains reports whether an entry currently exists for the user.
func (c *MemoryTaskCache) Contains(userID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[cache.TaskListKey(userID)]
	return ok
}

// AccessCount returns the total number of cache accesses of any kind.
func (c *MemoryTaskCache) AccessCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.Gets + c.Sets + c.Deletes
}
