package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	newHandler := func(jwtService auth.JWTService) (http.Handler, *bool) {
		reached := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			gotID, ok := middleware.GetUserID(r)
			assert.True(t, ok)
			assert.Equal(t, userID, gotID)
			w.WriteHeader(http.StatusOK)
		})
		return middleware.NewAuthMiddleware(jwtService).Authenticate(next), &reached
	}

	t.Run("valid token passes user ID to the handler", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{Claims: &auth.Claims{
			UserID:    userID,
			ExpiresAt: time.Now().Add(time.Hour),
		}}
		handler, reached := newHandler(jwtService)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer some-valid-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *reached)
	})

	t.Run("missing header returns 401", func(t *testing.T) {
		t.Parallel()

		handler, reached := newHandler(&mocks.MockJWTService{})

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Authorization header required")
		assert.False(t, *reached)
	})

	t.Run("non-bearer scheme returns 401", func(t *testing.T) {
		t.Parallel()

		handler, reached := newHandler(&mocks.MockJWTService{})

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid authorization format")
		assert.False(t, *reached)
	})

	t.Run("invalid token returns 401", func(t *testing.T) {
		t.Parallel()

		handler, reached := newHandler(&mocks.MockJWTService{Err: auth.ErrInvalidToken})

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid token")
		assert.False(t, *reached)
	})

	t.Run("expired token returns 401 with distinct message", func(t *testing.T) {
		t.Parallel()

		handler, reached := newHandler(&mocks.MockJWTService{Err: auth.ErrExpiredToken})

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer stale")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token expired")
		assert.False(t, *reached)
	})

	t.Run("rejected request touches neither store nor cache", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		taskCache := mocks.NewMemoryTaskCache()

		// The protected handler would hit both; it must never run.
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = taskStore.ListByUser(r.Context(), uuid.New(), store.TaskFilter{})
			taskCache.GetTaskList(r.Context(), uuid.New())
		})
		handler := middleware.NewAuthMiddleware(&mocks.MockJWTService{Err: auth.ErrInvalidToken}).Authenticate(next)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, taskStore.CallCount, "rejected request must not reach the store")
		assert.Zero(t, taskCache.AccessCount(), "rejected request must not reach the cache")
	})
}

func TestGetUserID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := middleware.GetUserID(req)
	assert.False(t, ok)

	userID := uuid.New()
	req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
	gotID, ok := middleware.GetUserID(req)
	assert.True(t, ok)
	assert.Equal(t, userID, gotID)
}
