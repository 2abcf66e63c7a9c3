package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	platformredis "github.com/taskdeck/taskdeck-api/internal/platform/redis"
)

const healthCheckTimeout = 2 * time.Second

// HealthResponse reports the liveness of the server and its backends.
// The cache being down does not fail the check since the API degrades
// gracefully without it.
type HealthResponse struct {
	Status     string                    `json:"status"`
	Database   string                    `json:"database"`
	Cache      string                    `json:"cache"`
	CacheStats *platformredis.Stats `json:"cache_stats,omitempty"`
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db        *sql.DB
	taskCache *platformredis.TaskCache
	logger    *slog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB, taskCache *platformredis.TaskCache, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:        db,
		taskCache: taskCache,
		logger:    logger.With("component", "health_handler"),
	}
}

// Check reports server health. The database must be reachable for a 200;
// the cache is reported but never fails the check.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Database: "ok", Cache: "ok"}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("health check: database unreachable", "error", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	if err := h.taskCache.Ping(ctx); err != nil {
		resp.Cache = "unreachable"
	} else {
		stats := h.taskCache.GetStats()
		resp.CacheStats = &stats
	}

	shared.RespondWithJSON(w, r, status, resp)
}
