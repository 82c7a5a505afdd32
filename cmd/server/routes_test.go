package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"logichain.backend/internal/interfaces/http/handlers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine() *gin.Engine {
	r := gin.New()
	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		contractHandler:  handlers.NewContractHandler(nil),
		activityHandler:  handlers.NewActivityHandler(nil),
		kpiHandler:       handlers.NewKPIHandler(nil),
		assistantHandler: handlers.NewAssistantHandler(nil),
		documentHandler:  handlers.NewDocumentHandler(nil),
		exportHandler:    handlers.NewExportHandler(nil),
	})
	return r
}

func TestRouteTable(t *testing.T) {
	r := newTestEngine()

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/contracts",
		"GET /api/v1/contracts",
		"GET /api/v1/contracts/export",
		"GET /api/v1/contracts/kanban",
		"GET /api/v1/contracts/next-number",
		"GET /api/v1/contracts/number/:number",
		"GET /api/v1/contracts/:id",
		"PATCH /api/v1/contracts/:id",
		"PATCH /api/v1/contracts/:id/status",
		"PATCH /api/v1/contracts/:id/activity",
		"PUT /api/v1/contracts/:id/compliance",
		"PUT /api/v1/contracts/:id/supplier-performance",
		"POST /api/v1/contracts/:id/additives",
		"GET /api/v1/contracts/:id/additives",
		"GET /api/v1/contracts/:id/events",
		"POST /api/v1/contracts/:id/document",
		"GET /api/v1/contracts/:id/document",
		"GET /api/v1/kpis",
		"POST /api/v1/assistant/ask",
		"GET /api/v1/assistant/history/:sessionId",
		"DELETE /api/v1/assistant/history/:sessionId",
		"GET /health",
	}
	for _, route := range expected {
		require.True(t, registered[route], "missing route %s", route)
	}
}

func TestHealthRoute(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/contracts", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
