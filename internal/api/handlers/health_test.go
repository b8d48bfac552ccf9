package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cropcraft/server/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statterPinger struct {
	stubPinger
}

func (statterPinger) PoolStats() metrics.PoolStats {
	return metrics.PoolStats{Open: 3, InUse: 1, Idle: 2, MaxOpen: 10}
}

func TestHealthCheck_AllHealthy(t *testing.T) {
	checker := NewHealthChecker(statterPinger{}, "0.1.0", "test-commit")

	w := httptest.NewRecorder()
	checker.Health().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response HealthCheck
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "0.1.0", response.Version)
	assert.Equal(t, "test-commit", response.GitCommit)
	assert.NotEmpty(t, response.Timestamp)

	db := response.Checks["database"]
	assert.Equal(t, "pass", db.Status)
	assert.EqualValues(t, 10, db.Details["max_connections"])

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.HealthStatus))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.HealthCheckStatus.WithLabelValues("database")))
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	checker := NewHealthChecker(stubPinger{err: errStore}, "0.1.0", "test-commit")

	w := httptest.NewRecorder()
	checker.Health().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var response HealthCheck
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "fail", response.Checks["database"].Status)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.HealthStatus))
}

func TestHealthCheck_NilStore(t *testing.T) {
	checker := NewHealthChecker(nil, "dev", "unknown")

	w := httptest.NewRecorder()
	checker.Health().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthCheck_ShuttingDown(t *testing.T) {
	checker := NewHealthChecker(stubPinger{}, "dev", "unknown")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := httptest.NewRecorder()
	checker.Health().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(ctx))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "shutting_down")
}

func TestHealthzAndReadyz(t *testing.T) {
	w := httptest.NewRecorder()
	Healthz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	Readyz(stubPinger{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())

	w = httptest.NewRecorder()
	Readyz(stubPinger{err: errStore}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"not_ready"}`, w.Body.String())
}
