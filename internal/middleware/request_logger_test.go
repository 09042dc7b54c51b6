package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/fintera-ledger/pkg/logger"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	previous := logger.Log
	logger.Log = slog.New(slog.NewJSONHandler(buf, nil))
	t.Cleanup(func() { logger.Log = previous })
	return buf
}

func TestRequestLogger_LinksEngineRun(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLog(t)

	router := gin.New()
	router.Use(RequestLogger())
	router.POST("/api/v1/tenants/:tenant_id/portfolio/run", func(c *gin.Context) {
		c.Set("userID", uint(42))
		c.Set("userRole", RoleManager)
		c.Set(RunIDKey, "run-123")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants/3/portfolio/run", nil)
	req.Header.Set(RequestIDHeader, "req-abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-abc", w.Header().Get(RequestIDHeader))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	assert.Equal(t, "req-abc", entry["request_id"])
	assert.Equal(t, "run-123", entry["run_id"])
	assert.Equal(t, "3", entry["tenant_id"])
	assert.Equal(t, RoleManager, entry["role"])
	assert.Equal(t, "/api/v1/tenants/:tenant_id/portfolio/run", entry["route"])
}

func TestRequestLogger_GeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLog(t)

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/api/v1/jobs/status", func(c *gin.Context) {
		c.Set("tenantID", uint(5))
		c.Status(http.StatusForbidden)
	})
	router.GET("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/jobs/status", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, w.Header().Get(RequestIDHeader), entry["request_id"])
	assert.Equal(t, float64(5), entry["tenant_id"])
	assert.NotContains(t, entry, "run_id")

	buf.Reset()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Empty(t, buf.String())
}
