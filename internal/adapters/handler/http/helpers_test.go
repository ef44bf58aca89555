package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/core/engine"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

// fixedNow is a Wednesday.
var fixedNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

type toggleCounter struct {
	completed, removed int
}

func (t *toggleCounter) CompletionToggled(completed bool) {
	if completed {
		t.completed++
		return
	}
	t.removed++
}

type testServer struct {
	router   *gin.Engine
	repo     *repository.InMemoryHabitRepository
	habits   *services.HabitService
	toggles  *toggleCounter
	setClock func(time.Time)
}

// fakeAuth trusts the X-User-ID header so handler tests do not need tokens.
func fakeAuth(c *gin.Context) {
	if id := c.GetHeader("X-User-ID"); id != "" {
		c.Set(middleware.ContextUserIDKey, id)
	}
	c.Next()
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := fixedNow
	clock := func() time.Time { return now }

	repo := repository.NewInMemoryHabitRepository()
	habitSvc := services.NewHabitService(repo, nil, time.UTC).WithClock(clock)
	statsSvc := services.NewStatsService(repo, engine.DefaultOptions()).WithClock(clock)
	toggles := &toggleCounter{}

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(fakeAuth)
	adapterHTTP.NewHabitHandler(habitSvc, toggles).RegisterRoutes(api)
	adapterHTTP.NewStatsHandler(statsSvc).RegisterRoutes(api)

	return &testServer{
		router:   r,
		repo:     repo,
		habits:   habitSvc,
		toggles:  toggles,
		setClock: func(t time.Time) { now = t },
	}
}

func (s *testServer) do(method, path, userID, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *testServer) createHabit(t *testing.T, userID, body string) string {
	t.Helper()
	w := s.do(http.MethodPost, "/api/v1/habits", userID, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out struct {
		ID string `json:"id"`
	}
	decode(t, w, &out)
	return out.ID
}
