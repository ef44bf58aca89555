package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHabit(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		body     string
		wantCode int
		contains string
	}{
		{
			name:     "Success: 201 Created",
			userID:   "user-1",
			body:     `{"name": "Gym", "category": "fitness", "frequency": "weekly", "weekdays": [1, 3, 5]}`,
			wantCode: http.StatusCreated,
			contains: `"name":"Gym"`,
		},
		{
			name:     "Unknown category falls back to the first",
			userID:   "user-1",
			body:     `{"name": "Walk", "category": "astronomy"}`,
			wantCode: http.StatusCreated,
			contains: `"category":"health"`,
		},
		{
			name:     "Fail: 401 Missing user",
			body:     `{"name": "Gym"}`,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "Fail: 400 Missing name",
			userID:   "user-1",
			body:     `{"name": ""}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "Fail: 400 Weekly without days",
			userID:   "user-1",
			body:     `{"name": "Gym", "frequency": "weekly"}`,
			wantCode: http.StatusBadRequest,
			contains: "invalid recurrence rule",
		},
		{
			name:     "Fail: 400 Unknown frequency",
			userID:   "user-1",
			body:     `{"name": "Gym", "frequency": "hourly"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "Fail: 400 Negative target",
			userID:   "user-1",
			body:     `{"name": "Gym", "target_value": -2}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			w := s.do(http.MethodPost, "/api/v1/habits", tt.userID, tt.body)

			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.contains != "" {
				assert.Contains(t, w.Body.String(), tt.contains)
			}
		})
	}
}

func TestGetAndListHabits(t *testing.T) {
	s := newTestServer(t)
	id := s.createHabit(t, "user-1", `{"name": "Read"}`)
	s.createHabit(t, "user-2", `{"name": "Other"}`)

	t.Run("List only returns the caller's habits", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/habits", "user-1", "")
		require.Equal(t, http.StatusOK, w.Code)

		var list []map[string]interface{}
		decode(t, w, &list)
		require.Len(t, list, 1)
		assert.Equal(t, "Read", list[0]["name"])
	})

	t.Run("Get own habit", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/habits/"+id, "user-1", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Other users see 404", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/habits/"+id, "user-2", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateHabit(t *testing.T) {
	s := newTestServer(t)
	id := s.createHabit(t, "user-1", `{"name": "Read", "frequency": "monthly", "month_days": [1, 15]}`)

	t.Run("Partial update keeps the rule", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/v1/habits/"+id, "user-1", `{"name": "Read more"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var out map[string]interface{}
		decode(t, w, &out)
		assert.Equal(t, "Read more", out["name"])
		assert.Equal(t, "monthly", out["frequency"])
		assert.Equal(t, []interface{}{1.0, 15.0}, out["month_days"])
	})

	t.Run("Switching to custom clamps the interval", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/v1/habits/"+id, "user-1", `{"frequency": "custom", "interval": 0}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var out map[string]interface{}
		decode(t, w, &out)
		assert.Equal(t, 1.0, out["interval"])
	})

	t.Run("Moving created_at", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/v1/habits/"+id, "user-1", `{"created_at": "2023-12-01T08:00:00Z"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"created_at":"2023-12-01T08:00:00Z"`)
	})

	t.Run("Not found", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/v1/habits/missing", "user-1", `{"name": "X"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteHabit(t *testing.T) {
	s := newTestServer(t)
	id := s.createHabit(t, "user-1", `{"name": "Read"}`)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/v1/habits/"+id, "user-2", "").Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/habits/"+id, "user-1", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/v1/habits/"+id, "user-1", "").Code)
}

func TestToggleCompletion(t *testing.T) {
	s := newTestServer(t)
	id := s.createHabit(t, "user-1", `{"name": "Read", "target_value": 3}`)
	path := "/api/v1/habits/" + id + "/completions/toggle"

	t.Run("First toggle completes today with the target value", func(t *testing.T) {
		w := s.do(http.MethodPost, path, "user-1", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var out struct {
			Completed  bool `json:"completed"`
			Completion struct {
				Date  string `json:"date"`
				Value int    `json:"value"`
			} `json:"completion"`
		}
		decode(t, w, &out)
		assert.True(t, out.Completed)
		assert.Equal(t, "2024-01-10", out.Completion.Date)
		assert.Equal(t, 3, out.Completion.Value)
	})

	t.Run("Second toggle removes it", func(t *testing.T) {
		w := s.do(http.MethodPost, path, "user-1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"completed":false`)

		h, err := s.repo.GetByID(t.Context(), id)
		require.NoError(t, err)
		assert.Empty(t, h.Completions)
	})

	t.Run("Explicit date and value", func(t *testing.T) {
		w := s.do(http.MethodPost, path, "user-1", `{"date": "2024-01-08", "value": 5}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"value":5`)
	})

	t.Run("Malformed date", func(t *testing.T) {
		w := s.do(http.MethodPost, path, "user-1", `{"date": "08/01/2024"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Other user's habit", func(t *testing.T) {
		w := s.do(http.MethodPost, path, "user-2", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	assert.Equal(t, 2, s.toggles.completed)
	assert.Equal(t, 1, s.toggles.removed)
}
