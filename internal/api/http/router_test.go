package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/nexushub/internal/api/http/handlers"
	"github.com/spec-kit/nexushub/internal/auth"
	"github.com/spec-kit/nexushub/internal/events"
	"github.com/spec-kit/nexushub/internal/observability"
	"github.com/spec-kit/nexushub/internal/persistence"
	"github.com/spec-kit/nexushub/internal/repository"
	"github.com/spec-kit/nexushub/internal/service"
	"github.com/spec-kit/nexushub/internal/worker"
)

type testServer struct {
	t   *testing.T
	app *fiber.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	activity := service.NewActivityService(dispatcher, nil, logger)
	worker.StartActivityWorker(activity)

	sessions := service.NewSessionService(
		repository.NewMemorySessionRepository(),
		auth.NewTokenManager("test-secret", time.Hour),
		service.WorkspaceDeps{
			Dispatcher: dispatcher,
			Logger:     logger,
			Location:   time.UTC,
			ReplyDelay: 10 * time.Millisecond,
		},
	)
	t.Cleanup(sessions.Shutdown)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("nexushub", "test", &persistence.Postgres{}, &persistence.Redis{}, metrics, sessions.ActiveSessions),
		Sessions:       handlers.NewSessionHandler(sessions),
		Dashboard:      handlers.NewDashboardHandler(),
		Boards:         handlers.NewBoardsHandler(sessions),
		Chat:           handlers.NewChatHandler(sessions),
		Activity:       handlers.NewActivityHandler(activity),
		AuthMiddleware: auth.NewAuthMiddleware(sessions.TokenManager(), sessions),
	})
	return &testServer{t: t, app: app}
}

func (s *testServer) do(method, path, token string, body any) (int, map[string]any) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	if len(raw) > 0 {
		require.NoError(s.t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (s *testServer) login(role string) string {
	s.t.Helper()
	status, body := s.do(http.MethodPost, "/auth/login", "", map[string]string{"role": role})
	require.Equal(s.t, http.StatusCreated, status, body)
	return body["data"].(map[string]any)["token"].(string)
}

func dataList(t *testing.T, body map[string]any) []any {
	t.Helper()
	items, ok := body["data"].([]any)
	require.True(t, ok, "data is not a list: %v", body)
	return items
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", body["status"])

	status, body = s.do(http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "disabled", deps["postgres"])
	assert.Equal(t, "disabled", deps["redis"])

	status, _ = s.do(http.MethodGet, "/health/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestLoginAndIdentity(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(http.MethodPost, "/auth/login", "", map[string]string{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", body["error"].(map[string]any)["code"])

	status, _ = s.do(http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	token := s.login("admin")
	status, body = s.do(http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	me := body["data"].(map[string]any)
	assert.Equal(t, "Admin User", me["name"])
	assert.Equal(t, "admin@nexushub.it", me["email"])

	status, _ = s.do(http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = s.do(http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestDashboardCapabilities(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(http.MethodGet, "/dashboard", s.login("standard"), nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Len(t, data["tabs"], 8)
	caps := data["capabilities"].(map[string]any)
	assert.Equal(t, true, caps["returns.create"])
	assert.Equal(t, false, caps["returns.delete"])
	assert.Equal(t, false, caps["employees.create"])

	status, body = s.do(http.MethodGet, "/dashboard/tabs/overview", s.login("standard"), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["data"].(map[string]any)["placeholder"])

	status, _ = s.do(http.MethodGet, "/dashboard/tabs/unknown", s.login("standard"), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBoardListAndFilter(t *testing.T) {
	s := newTestServer(t)
	token := s.login("standard")

	status, body := s.do(http.MethodGet, "/boards/exchanges", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, dataList(t, body), 2)

	status, body = s.do(http.MethodGet, "/boards/exchanges?status=shipped&q=rossi", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, dataList(t, body))
	assert.Equal(t, float64(2), body["total"])

	status, _ = s.do(http.MethodGet, "/boards/exchanges?status=teleported", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(http.MethodGet, "/boards/returns?date=yesterday", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(http.MethodGet, "/boards/bulletin", token, nil)
	require.Equal(t, http.StatusOK, status)
	first := dataList(t, body)[0].(map[string]any)
	assert.Equal(t, true, first["is_pinned"])
}

func TestBoardCreateAndStatus(t *testing.T) {
	s := newTestServer(t)
	token := s.login("standard")

	status, body := s.do(http.MethodPost, "/boards/returns", token, map[string]string{
		"customer_name": "Anna Blu",
		"order_number":  "ORD-7",
		"reason":        "Too big",
	})
	require.Equal(t, http.StatusCreated, status, body)
	created := body["data"].(map[string]any)
	assert.Equal(t, "Standard User", created["author_name"])
	assert.Equal(t, "requested", created["status"])
	id := created["id"].(string)

	status, body = s.do(http.MethodPatch, "/boards/returns/"+id+"/status", token, map[string]string{"status": "refunded"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["applied"])
	assert.Equal(t, "refunded", body["data"].(map[string]any)["status"])

	status, _ = s.do(http.MethodPatch, "/boards/returns/"+id+"/status", token, map[string]string{"status": "vanished"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(http.MethodPatch, "/boards/returns/nope/status", token, map[string]string{"status": "received"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(http.MethodPost, "/boards/returns", token, map[string]string{"status": "lost-in-space"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUnauthorizedMutationsAreNoOps(t *testing.T) {
	s := newTestServer(t)
	standard := s.login("standard")
	admin := s.login("admin")

	status, body := s.do(http.MethodDelete, "/boards/returns/r1", standard, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["deleted"])
	_, body = s.do(http.MethodGet, "/boards/returns", standard, nil)
	assert.Len(t, dataList(t, body), 2)

	status, body = s.do(http.MethodPost, "/boards/employees", standard, map[string]string{"name": "Ghost"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["applied"])

	status, body = s.do(http.MethodPatch, "/boards/bulletin/b1/pin", standard, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["applied"])

	status, body = s.do(http.MethodDelete, "/boards/returns/r1", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["deleted"])
	status, _ = s.do(http.MethodDelete, "/boards/returns/r1", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(http.MethodDelete, "/boards/exchanges/ex1", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDraftAndFormLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login("standard")

	status, body := s.do(http.MethodPost, "/boards/missing/form/open", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["form_open"])

	status, _ = s.do(http.MethodPut, "/boards/missing/draft", token, map[string]string{
		"product_name":      "Barcode scanner",
		"expected_location": "Dock 2",
	})
	require.Equal(t, http.StatusOK, status)

	status, body = s.do(http.MethodPost, "/boards/missing", token, nil)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "Barcode scanner", body["data"].(map[string]any)["product_name"])

	status, body = s.do(http.MethodGet, "/boards/missing/draft", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["form_open"])
	assert.Equal(t, "", body["data"].(map[string]any)["product_name"])
}

func TestCalendarRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.login("standard")

	status, body := s.do(http.MethodGet, "/boards/calendar/week?offset=0", token, nil)
	require.Equal(t, http.StatusOK, status)
	week := body["data"].(map[string]any)
	assert.Len(t, week["days"], 7)
	assert.Len(t, week["hours"], 11)

	status, body = s.do(http.MethodPost, "/boards/calendar/slot", token, map[string]any{"date": "2030-01-07", "hour": 14})
	require.Equal(t, http.StatusOK, status)
	draft := body["data"].(map[string]any)
	assert.Equal(t, "14:00", draft["start_time"])
	assert.Equal(t, "15:00", draft["end_time"])

	status, _ = s.do(http.MethodPost, "/boards/calendar/slot", token, map[string]any{"date": "2030-01-07", "hour": 7})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(http.MethodPost, "/boards/calendar", token, map[string]string{
		"title": "Inventory", "date": "2030-01-07", "start_time": "14:00", "end_time": "15:00",
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "indigo", body["data"].(map[string]any)["color"])

	status, _ = s.do(http.MethodPost, "/boards/calendar", token, map[string]string{"title": "Bad", "date": "07/01/2030", "start_time": "14:00"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(http.MethodPost, "/boards/calendar/draft/assist", token, map[string]string{"text": "lunch tomorrow"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["applied"])
}

func TestAssistFallbacksOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := s.login("standard")

	status, body := s.do(http.MethodPost, "/boards/reshipments/rs1/email-draft", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Unable to generate the email draft.", body["data"].(map[string]any)["email"])

	status, _ = s.do(http.MethodPost, "/boards/reshipments/missing/email-draft", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(http.MethodPost, "/boards/bulletin/draft/assist", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(http.MethodPost, "/boards/bulletin/draft/assist", token, map[string]string{"text": "fire drill"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["applied"])
	assert.Equal(t, "Error", body["data"].(map[string]any)["title"])
}

func TestChatRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.login("standard")

	status, _ := s.do(http.MethodGet, "/chat", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body := s.do(http.MethodPost, "/boards/employees/e1/chat", token, nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Len(t, body["data"].(map[string]any)["messages"], 1)

	status, body = s.do(http.MethodPost, "/chat/suggest", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["applied"])
	assert.Equal(t, "Thanks for your message.", body["data"].(map[string]any)["suggestion"])

	status, body = s.do(http.MethodPost, "/chat/messages", token, map[string]string{"text": "Ciao"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Ciao", body["data"].(map[string]any)["text"])

	require.Eventually(t, func() bool {
		_, body := s.do(http.MethodGet, "/chat", token, nil)
		return len(body["data"].(map[string]any)["messages"].([]any)) == 3
	}, time.Second, 10*time.Millisecond)

	status, body = s.do(http.MethodPost, "/chat/messages", token, map[string]string{"text": "   "})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["applied"])

	status, _ = s.do(http.MethodDelete, "/chat", token, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = s.do(http.MethodGet, "/chat", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestActivityRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	standard := s.login("standard")
	admin := s.login("admin")

	_, _ = s.do(http.MethodPost, "/boards/exchanges", standard, map[string]string{"customer_name": "Zoe", "items": "Mug"})

	status, _ := s.do(http.MethodGet, "/activity", standard, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := s.do(http.MethodGet, "/activity", admin, nil)
	require.Equal(t, http.StatusOK, status)
	entries := dataList(t, body)
	require.NotEmpty(t, entries)
	assert.Equal(t, false, body["persistent"])

	var created bool
	for _, e := range entries {
		entry := e.(map[string]any)
		if entry["action"] == "exchanges.create" {
			created = true
			assert.Equal(t, "Standard User", entry["actor_name"])
		}
	}
	assert.True(t, created)
}
