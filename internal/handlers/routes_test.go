package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcoach-api/internal/adapters/completion"
	"fitcoach-api/internal/logging"
	"fitcoach-api/internal/metrics"
	"fitcoach-api/internal/services"
)

func newTestRouter(client completion.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logging.Discard()
	m := metrics.New()

	router := gin.New()
	SetupMiddleware(router, logger)
	SetupRoutes(router, &RouterConfig{
		ChatService:    services.NewChatService(client, m, logger),
		SummaryService: services.NewSummaryService(time.UTC, logger),
		Metrics:        m,
		Logger:         logger,
	})
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRoutes_Chat(t *testing.T) {
	router := newTestRouter(completion.NewMockClient(contentReply))

	for _, path := range []string{"/api/v1/ai-chat", "/.netlify/functions/ai-chat"} {
		w := serve(router, http.MethodPost, path, `{"message":"hi"}`)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"reply":"Brace your core."}`, w.Body.String())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}

	w := serve(router, http.MethodOptions, "/api/v1/ai-chat", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(router, http.MethodGet, "/api/v1/ai-chat", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRoutes_Summary(t *testing.T) {
	router := newTestRouter(completion.NewMockClient(contentReply))

	w := serve(router, http.MethodPost, "/api/v1/summary", `{"memberId":"1","members":[{"id":"1","name":"Kim"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "no recorded sessions")

	w = serve(router, http.MethodOptions, "/api/v1/summary", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_RequestIDIsEchoed(t *testing.T) {
	router := newTestRouter(completion.NewMockClient(contentReply))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/summary", strings.NewReader(`{}`))
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestRoutes_HealthAndMetrics(t *testing.T) {
	router := newTestRouter(completion.NewMockClient(contentReply))

	w := serve(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"fitcoach-api","version":"1.0.0"}`, w.Body.String())

	serve(router, http.MethodPost, "/api/v1/ai-chat", `{"message":"hi"}`)

	w = serve(router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `fitcoach_requests_total{code="200",handler="chat"} 1`)
	assert.Contains(t, w.Body.String(), `fitcoach_reply_extraction_total{tier="content"} 1`)
}

func TestRoutes_RequestTooLarge(t *testing.T) {
	router := newTestRouter(completion.NewMockClient(contentReply))

	w := serve(router, http.MethodPost, "/api/v1/summary", `{"message":"`+strings.Repeat("a", maxRequestBytes)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRoutes_ChunkedBodyOverLimit(t *testing.T) {
	client := completion.NewMockClient(contentReply)
	router := newTestRouter(client)
	body := `{"message":"` + strings.Repeat("a", maxRequestBytes) + `"}`

	for _, path := range []string{"/api/v1/summary", "/api/v1/ai-chat"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, path)
	}
	assert.Empty(t, client.Requests())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai-chat", strings.NewReader(`{"message":"hi"}`))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
