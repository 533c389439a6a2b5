package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mlb-splits-service/internal/metrics"
	"mlb-splits-service/internal/testutil"
)

func TestLoggingMiddlewarePropagatesRequestID(t *testing.T) {
	var captured string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	handler := LoggingMiddleware(testutil.DiscardLogger(), nil, next)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if captured != "abc-123" {
		t.Errorf("request id in context = %q, want abc-123", captured)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("response header = %q, want abc-123", got)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestLoggingMiddlewareGeneratesIDWhenInvalid(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := LoggingMiddleware(testutil.DiscardLogger(), nil, next)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "bad id with spaces")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	got := rec.Header().Get("X-Request-ID")
	if got == "" || got == "bad id with spaces" {
		t.Errorf("request id = %q, want freshly generated", got)
	}
}

func TestLoggingMiddlewareRecordsMetrics(t *testing.T) {
	recorder := metrics.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := LoggingMiddleware(testutil.DiscardLogger(), recorder, next)

	req := httptest.NewRequest(http.MethodPost, "/v1/messages", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	// A panic-free pass with a live recorder is the contract here; counter
	// internals are covered in the metrics package.
}

func TestRequestIDFromContextMissing(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext = %q, want empty", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/v1/messages", "/v1/messages"},
		{"/health", "/health"},
		{"/ready", "/ready"},
		{"/v1/messages?x=1", "/v1/messages"},
		{"/anything/else", "other"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
