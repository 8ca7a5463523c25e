package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banking-assistant/internal/bank"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/dialog"
	"banking-assistant/pkg/registry"
)

func newTestServer(t *testing.T) *Server {
	log := logger.NewTestLogger(t)
	engine := dialog.NewEngine(dialog.NewMemoryStore(0), bank.NewMemory(log, nil), nil, log)

	intents := &registry.IntentRegistry{
		Version: "1.0.0",
		Intents: []registry.Intent{
			{ID: "balance", DisplayName: "Balance Inquiry", Keywords: []string{"balance"}, MatchMode: "contains"},
		},
	}

	s, err := New(engine, Options{Intents: intents}, log)
	require.NoError(t, err)
	return s
}

func postChat(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestChatHappyPath(t *testing.T) {
	s := newTestServer(t)

	rec := postChat(t, s, `{"user_id":"user1","message":"balance"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Your savings account balance is INR 12500.75.", resp.Reply)
}

func TestChatMissingUserID(t *testing.T) {
	s := newTestServer(t)

	rec := postChat(t, s, `{"message":"hi"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "user_id")
}

func TestChatEmptyUserID(t *testing.T) {
	s := newTestServer(t)

	rec := postChat(t, s, `{"user_id":"","message":"hi"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatRejectsExtraFields(t *testing.T) {
	s := newTestServer(t)

	rec := postChat(t, s, `{"user_id":"user1","message":"hi","admin":true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin")
}

func TestChatRejectsNonJSON(t *testing.T) {
	s := newTestServer(t)

	rec := postChat(t, s, `user_id=user1`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatWrongFieldType(t *testing.T) {
	s := newTestServer(t)

	rec := postChat(t, s, `{"user_id":"user1","message":42}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIntentsEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/intents", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var reg registry.IntentRegistry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	require.Len(t, reg.Intents, 1)
	assert.Equal(t, "balance", reg.Intents[0].ID)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDEchoed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"user_id":"user1","message":"hi"}`))
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestMultiTurnOverHTTP(t *testing.T) {
	s := newTestServer(t)

	rec := postChat(t, s, `{"user_id":"user1","message":"block my debit card"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "last four digits")

	rec = postChat(t, s, `{"user_id":"user1","message":"4567"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Debit card ending in 4567 blocked.", resp.Reply)
}
