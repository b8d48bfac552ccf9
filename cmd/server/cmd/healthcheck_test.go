package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPerformHealthCheck(t *testing.T) {
	healthcheckTimeout = 5

	tests := []struct {
		name           string
		statusCode     int
		responseBody   interface{}
		expectHealthy  bool
		expectError    bool
		expectedStatus string
	}{
		{
			name:       "healthy server",
			statusCode: http.StatusOK,
			responseBody: HealthResponse{
				Status: "healthy",
				Checks: map[string]CheckResult{"database": {Status: "pass"}},
			},
			expectHealthy:  true,
			expectedStatus: "healthy",
		},
		{
			name:           "degraded server",
			statusCode:     http.StatusOK,
			responseBody:   HealthResponse{Status: "degraded"},
			expectHealthy:  false,
			expectedStatus: "degraded",
		},
		{
			name:           "unhealthy server (503)",
			statusCode:     http.StatusServiceUnavailable,
			responseBody:   HealthResponse{Status: "unhealthy"},
			expectHealthy:  false,
			expectedStatus: "unhealthy",
		},
		{
			name:          "invalid response",
			statusCode:    http.StatusOK,
			responseBody:  "not json",
			expectHealthy: false,
			expectError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if str, ok := tt.responseBody.(string); ok {
					fmt.Fprint(w, str)
				} else {
					_ = json.NewEncoder(w).Encode(tt.responseBody)
				}
			}))
			defer server.Close()

			result := performHealthCheck(server.URL)

			if result.IsHealthy != tt.expectHealthy {
				t.Errorf("expected IsHealthy=%v, got %v", tt.expectHealthy, result.IsHealthy)
			}
			if tt.expectError && result.Error == "" {
				t.Error("expected error, got none")
			}
			if !tt.expectError && result.Status != tt.expectedStatus {
				t.Errorf("expected status=%s, got %s", tt.expectedStatus, result.Status)
			}
			if result.LatencyMs < 0 {
				t.Error("expected non-negative latency")
			}
		})
	}
}

func TestPerformHealthCheckTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(5 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	defer close(release)

	healthcheckTimeout = 1
	defer func() { healthcheckTimeout = 5 }()

	result := performHealthCheck(server.URL)

	if result.Error == "" {
		t.Error("expected timeout error, got none")
	}
	if result.IsHealthy {
		t.Error("expected unhealthy result on timeout")
	}
}

func TestDetermineHealthCheckURL(t *testing.T) {
	tests := []struct {
		name       string
		urlFlag    string
		serverPort string
		expected   string
	}{
		{name: "explicit URL", urlFlag: "http://example.com/health", expected: "http://example.com/health"},
		{name: "SERVER_PORT", serverPort: "9000", expected: "http://localhost:9000/health"},
		{name: "default", expected: "http://localhost:8080/health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			healthcheckURL = tt.urlFlag
			defer func() { healthcheckURL = "" }()
			t.Setenv("SERVER_PORT", tt.serverPort)

			if got := determineHealthCheckURL(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
