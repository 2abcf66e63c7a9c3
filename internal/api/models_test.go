package api_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api"
)

func TestNullableTime(t *testing.T) {
	t.Parallel()

	t.Run("absent field leaves Set false", func(t *testing.T) {
		t.Parallel()

		var req api.UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &req))

		assert.False(t, req.DueDate.Set)
		assert.Nil(t, req.DueDate.Time)
	})

	t.Run("explicit null sets Set with nil time", func(t *testing.T) {
		t.Parallel()

		var req api.UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"due_date":null}`), &req))

		assert.True(t, req.DueDate.Set)
		assert.Nil(t, req.DueDate.Time)
	})

	t.Run("timestamp sets Set with the parsed time", func(t *testing.T) {
		t.Parallel()

		var req api.UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"due_date":"2026-09-01T12:00:00Z"}`), &req))

		assert.True(t, req.DueDate.Set)
		require.NotNil(t, req.DueDate.Time)
		assert.Equal(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), req.DueDate.Time.UTC())
	})

	t.Run("malformed timestamp errors", func(t *testing.T) {
		t.Parallel()

		var req api.UpdateTaskRequest
		err := json.Unmarshal([]byte(`{"due_date":"tomorrow"}`), &req)
		assert.Error(t, err)
	})
}
