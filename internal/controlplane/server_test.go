package controlplane

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fentz26/missionctl/internal/audit"
	"github.com/fentz26/missionctl/internal/models"
	"github.com/fentz26/missionctl/internal/seed"
	"github.com/fentz26/missionctl/internal/store"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	sd := seed.Default()

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"), sd.Agents)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger := log.New()
	logger.SetOutput(io.Discard)

	service := NewService(st, audit.NewPDRWriter(st), sd)
	return NewServer(service, st, "127.0.0.1:0", logger), st
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestHealthEndpoint_OK(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	health := decode[HealthResponse](t, w)
	assert.True(t, health.OK)
	assert.Equal(t, "ok", health.DB)
	assert.NotEmpty(t, health.Version)
	assert.NotEmpty(t, health.Time)
}

func TestHealthEndpoint_MethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHealthEndpoint_DBError(t *testing.T) {
	s, st := newTestServer(t)

	// Close the store to simulate DB error
	st.Close()

	w := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	health := decode[HealthResponse](t, w)
	assert.False(t, health.OK)
	assert.NotEqual(t, "ok", health.DB)
}

func TestBoardMove(t *testing.T) {
	s, st := newTestServer(t)

	before := decode[BoardView](t, do(t, s, http.MethodGet, "/api/board", ""))
	require.Len(t, before.Columns, 4)

	w := do(t, s, http.MethodPost, "/api/board/move", `{"task_id":"t1","column":"done"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[MoveResponse](t, w)
	assert.True(t, resp.Moved)
	assert.Equal(t, before.ActiveCount-1, resp.Board.ActiveCount)
	assert.Equal(t, before.Version+1, resp.Board.Version)

	// Same move again is a no-op
	resp = decode[MoveResponse](t, do(t, s, http.MethodPost, "/api/board/move", `{"task_id":"t1","column":"done"}`))
	assert.False(t, resp.Moved)

	entries, err := st.ListPDR(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	outcomes := []string{entries[0].Outcome, entries[1].Outcome}
	assert.ElementsMatch(t, []string{audit.OutcomeSuccess, audit.OutcomeNoop}, outcomes)
}

func TestBoardMove_MalformedPayloadIsNoop(t *testing.T) {
	s, _ := newTestServer(t)

	for _, body := range []string{"", "{not json", `{"task_id":"","column":"done"}`, `{"task_id":"t1","column":"icebox"}`} {
		w := do(t, s, http.MethodPost, "/api/board/move", body)
		require.Equal(t, http.StatusOK, w.Code, body)
		resp := decode[MoveResponse](t, w)
		assert.False(t, resp.Moved, body)
		assert.Zero(t, resp.Board.Version, body)
	}
}

func TestFeed(t *testing.T) {
	s, _ := newTestServer(t)

	all := decode[FeedView](t, do(t, s, http.MethodGet, "/api/feed", ""))
	assert.Equal(t, "All", all.ActiveTab)
	assert.Len(t, all.Events, 12)

	// Peeking at a tab does not change the active one
	decisions := decode[FeedView](t, do(t, s, http.MethodGet, "/api/feed?tab=Decisions", ""))
	assert.Equal(t, "Decisions", decisions.ActiveTab)
	assert.Len(t, decisions.Events, 2)
	assert.Equal(t, "All", decode[FeedView](t, do(t, s, http.MethodGet, "/api/feed", "")).ActiveTab)

	selected := decode[FeedView](t, do(t, s, http.MethodPost, "/api/feed/tab", `{"tab":"Comments"}`))
	assert.Equal(t, "Comments", selected.ActiveTab)
	assert.Len(t, selected.Events, 3)

	unknown := decode[FeedView](t, do(t, s, http.MethodPost, "/api/feed/tab", `{"tab":"Memes"}`))
	assert.Equal(t, "Comments", unknown.ActiveTab)
}

func TestFeed_UnknownTabQueryKeepsActiveTab(t *testing.T) {
	s, _ := newTestServer(t)

	do(t, s, http.MethodPost, "/api/feed/tab", `{"tab":"Decisions"}`)

	view := decode[FeedView](t, do(t, s, http.MethodGet, "/api/feed?tab=Nope", ""))
	assert.Equal(t, "Decisions", view.ActiveTab)
	assert.Len(t, view.Events, 2)
}

func TestFeedSummary(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/feed/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var summary []struct {
		AgentID      string `json:"agent_id"`
		ActiveTasks  int    `json:"active_tasks"`
		LastActivity string `json:"last_activity"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	require.Len(t, summary, 10)
	assert.Equal(t, "jarvis", summary[0].AgentID)
	assert.Equal(t, "12m ago", summary[0].LastActivity)
}

func TestSearch(t *testing.T) {
	s, _ := newTestServer(t)

	empty := decode[SearchResponse](t, do(t, s, http.MethodGet, "/api/search?q=", ""))
	assert.True(t, empty.NoQuery)
	assert.Zero(t, empty.Total)
	assert.NotNil(t, empty.Tasks)

	miss := decode[SearchResponse](t, do(t, s, http.MethodGet, "/api/search?q=zed", ""))
	assert.False(t, miss.NoQuery)
	assert.Zero(t, miss.Total)

	hit := decode[SearchResponse](t, do(t, s, http.MethodGet, "/api/search?q=API", ""))
	require.NotEmpty(t, hit.Tasks)
	assert.Equal(t, "t1", hit.Tasks[0].ID)
	assert.Equal(t, len(hit.Agents)+len(hit.Tasks)+len(hit.Events), hit.Total)
}

func TestAgents(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/agents", "")
	require.Equal(t, http.StatusOK, w.Code)
	agents := decode[[]models.AgentDetail](t, w)
	assert.Len(t, agents, 10)

	w = do(t, s, http.MethodGet, "/api/agents/shuri", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Moonshot", decode[models.AgentDetail](t, w).LLMProvider)

	w = do(t, s, http.MethodGet, "/api/agents/ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAgent(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPut, "/api/agents/wong", `{"name":"Wong Sr.","status":"WORKING"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.AgentDetail](t, w)
	assert.Equal(t, "Wong Sr.", updated.Name)
	assert.Equal(t, "Documentation", updated.Role)

	dir := decode[DirectoryView](t, do(t, s, http.MethodGet, "/api/directory", ""))
	assert.Equal(t, 9, dir.ActiveCount)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown agent", "/api/agents/ghost", `{"name":"x"}`, http.StatusNotFound},
		{"bad json", "/api/agents/wong", `{`, http.StatusBadRequest},
		{"blank name", "/api/agents/wong", `{"name":"  "}`, http.StatusBadRequest},
		{"bad status", "/api/agents/wong", `{"status":"ASLEEP"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, decode[ErrorResponse](t, w).Error)
		})
	}
}

func TestStatusChecks(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/status", `{"client_name":"tui"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	check := decode[models.StatusCheck](t, w)
	assert.NotEmpty(t, check.ID)

	w = do(t, s, http.MethodPost, "/api/status", `{"client_name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	checks := decode[[]models.StatusCheck](t, do(t, s, http.MethodGet, "/api/status", ""))
	require.Len(t, checks, 1)
	assert.Equal(t, "tui", checks[0].ClientName)
}

func TestStandup(t *testing.T) {
	s, _ := newTestServer(t)

	view := decode[StandupView](t, do(t, s, http.MethodGet, "/api/standup", ""))
	assert.NotEmpty(t, view.Mission)
	assert.Equal(t, 7, view.Total)
}

func TestAuditLimit(t *testing.T) {
	s, _ := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/audit?limit=x", "").Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/audit?limit=5", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	do(t, s, http.MethodGet, "/api/search?q=api", "")
	do(t, s, http.MethodPost, "/api/board/move", `{"task_id":"t1","column":"done"}`)

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "missionctl_http_requests_total")
	assert.Contains(t, body, `missionctl_board_moves_total{outcome="moved"} 1`)
	assert.Contains(t, body, `missionctl_search_queries_total{result="hit"} 1`)
}
