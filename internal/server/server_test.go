package server

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/ideaforge/internal/config"
	"github.com/sakif/ideaforge/internal/metrics"
	"github.com/sakif/ideaforge/internal/repository/sqldb"
	"github.com/sakif/ideaforge/internal/service"
	"github.com/sakif/ideaforge/internal/validate"
)

func newTestServer(t *testing.T, mutate func(*config.ServerConfig), m *metrics.Collector) http.Handler {
	t.Helper()
	db, err := sqldb.Open(context.Background(), sqldb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	cfg := config.Default().Server
	if mutate != nil {
		mutate(&cfg)
	}
	svc := service.NewIdeaService(db, validate.New(), m, logger)
	return New(cfg, svc, m, logger).Handler()
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRoutes_MountedUnderPrefix(t *testing.T) {
	h := newTestServer(t, nil, nil)

	rr := serve(h, http.MethodGet, "/api/ideas", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rr.Body.String())

	rr = serve(h, http.MethodGet, "/ideas", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":false`)
}

func TestRoutes_EmptyPrefix(t *testing.T) {
	h := newTestServer(t, func(c *config.ServerConfig) { c.APIPrefix = "" }, nil)

	rr := serve(h, http.MethodPost, "/ideas", `{"originalIdea":"x","enhancedIdea":"y"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	h := newTestServer(t, nil, nil)

	rr := serve(h, http.MethodDelete, "/api/ideas", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Contains(t, rr.Body.String(), "Method not allowed")
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t, nil, nil)

	rr := serve(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok"}}`, rr.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New("ideaforge")
	h := newTestServer(t, nil, m)

	serve(h, http.MethodPost, "/api/ideas", `{"originalIdea":"x","enhancedIdea":"y"}`)

	rr := serve(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "ideaforge_ideas_created_total 1")
	assert.Contains(t, body, `ideaforge_http_requests_total{method="POST",route="/api/ideas",status="200"} 1`)
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	h := newTestServer(t, nil, nil)

	rr := serve(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, func(c *config.ServerConfig) {
		c.CORSOrigins = []string{"https://dashboard.example.com"}
	}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/ideas", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "https://dashboard.example.com", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/ideas", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
