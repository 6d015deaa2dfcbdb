package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geowitness/geowitness/pkg/defaults"
)

func newTestServer(handlers map[string]http.HandlerFunc) *Server {
	cfg := NewConfig()
	cfg.Name = "geowitness-test"
	cfg.Version = "v0.0.0-test"
	cfg.Handlers = handlers
	return New(cfg)
}

func TestNewConfigTimeouts(t *testing.T) {
	cfg := NewConfig()
	if cfg.ReadTimeout != defaults.ServerReadTimeout {
		t.Errorf("ReadTimeout = %v, want %v", cfg.ReadTimeout, defaults.ServerReadTimeout)
	}
	if cfg.ReadHeaderTimeout != defaults.ServerReadHeaderTimeout {
		t.Errorf("ReadHeaderTimeout = %v, want %v", cfg.ReadHeaderTimeout, defaults.ServerReadHeaderTimeout)
	}
	if cfg.WriteTimeout != defaults.ServerWriteTimeout {
		t.Errorf("WriteTimeout = %v, want %v", cfg.WriteTimeout, defaults.ServerWriteTimeout)
	}
	if cfg.IdleTimeout != defaults.ServerIdleTimeout {
		t.Errorf("IdleTimeout = %v, want %v", cfg.IdleTimeout, defaults.ServerIdleTimeout)
	}

	s := New(cfg)
	if s.httpServer.ReadHeaderTimeout != defaults.ServerReadHeaderTimeout {
		t.Errorf("httpServer.ReadHeaderTimeout = %v, want %v",
			s.httpServer.ReadHeaderTimeout, defaults.ServerReadHeaderTimeout)
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Expected healthy status, got %s", resp.Status)
	}
}

func TestVersionEndpoint(t *testing.T) {
	s := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		Commit  string `json:"commit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Name != "geowitness-test" {
		t.Errorf("Expected geowitness-test, got %s", resp.Name)
	}
	if resp.Version != "v0.0.0-test" {
		t.Errorf("Expected v0.0.0-test, got %s", resp.Version)
	}
}

func TestHealthEndpoint_MethodNotAllowed(t *testing.T) {
	s := newTestServer(nil)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestReadyEndpoint(t *testing.T) {
	s := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 before SetReady, got %d", rec.Code)
	}

	s.SetReady(true)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 after SetReady, got %d", rec.Code)
	}
}

func TestInjectedHandlerGetsMiddleware(t *testing.T) {
	var gotRequestID, gotVersion string
	s := newTestServer(map[string]http.HandlerFunc{
		"/v1/echo": func(w http.ResponseWriter, r *http.Request) {
			gotRequestID = RequestIDFromContext(r.Context())
			gotVersion = APIVersionFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/echo", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if gotRequestID == "" {
		t.Error("Expected request ID in handler context")
	}
	if gotVersion != DefaultAPIVersion {
		t.Errorf("Expected default API version, got %q", gotVersion)
	}
	if rec.Header().Get("X-Request-Id") != gotRequestID {
		t.Error("Request ID header should match context value")
	}
	if rec.Header().Get("X-API-Version") != DefaultAPIVersion {
		t.Errorf("Expected version header %s, got %s",
			DefaultAPIVersion, rec.Header().Get("X-API-Version"))
	}
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer(map[string]http.HandlerFunc{
		"/v1/echo": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	})

	const id = "550e8400-e29b-41d4-a716-446655440000"
	req := httptest.NewRequest(http.MethodGet, "/v1/echo", nil)
	req.Header.Set("X-Request-Id", id)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") != id {
		t.Errorf("Expected request ID %s echoed, got %s", id, rec.Header().Get("X-Request-Id"))
	}

	// Invalid IDs get replaced, not echoed
	req = httptest.NewRequest(http.MethodGet, "/v1/echo", nil)
	req.Header.Set("X-Request-Id", "not-a-uuid")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got == "not-a-uuid" || got == "" {
		t.Errorf("Expected generated request ID, got %q", got)
	}
}

func TestRateLimiting(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1
	cfg.Handlers = map[string]http.HandlerFunc{
		"/v1/echo": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	}
	s := New(cfg)

	// First request consumes the burst
	req := httptest.NewRequest(http.MethodGet, "/v1/echo", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", rec.Code)
	}

	// Second request should be limited
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}
	if errResp.Code != ErrCodeRateLimitExceeded {
		t.Errorf("Expected code %s, got %s", ErrCodeRateLimitExceeded, errResp.Code)
	}
	if !errResp.Retryable {
		t.Error("Rate limit errors should be retryable")
	}
}

func TestPanicRecovery(t *testing.T) {
	s := newTestServer(map[string]http.HandlerFunc{
		"/v1/boom": func(w http.ResponseWriter, r *http.Request) {
			panic("handler exploded")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/boom", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	var errResp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}
	if errResp.Code != ErrCodeInternalError {
		t.Errorf("Expected code %s, got %s", ErrCodeInternalError, errResp.Code)
	}
	if errResp.RequestID == "" {
		t.Error("Error responses should carry a request ID")
	}
}

func TestDefaultRouteListsHandlers(t *testing.T) {
	s := newTestServer(map[string]http.HandlerFunc{
		"/v1/snapshots": func(w http.ResponseWriter, r *http.Request) {},
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp struct {
		Name   string   `json:"name"`
		Routes []string `json:"routes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Name != "geowitness-test" {
		t.Errorf("Expected server name, got %s", resp.Name)
	}
	found := false
	for _, route := range resp.Routes {
		if route == "/v1/snapshots" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected /v1/snapshots in routes, got %v", resp.Routes)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
}
