package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/parkerjr2/seogen/internal/license"
	"github.com/parkerjr2/seogen/internal/server/ratelimit"
)

func TestHandleHealth(t *testing.T) {
	s := &Server{}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %s", body["status"])
	}
}

func TestJSONResponse(t *testing.T) {
	s := &Server{}
	w := httptest.NewRecorder()

	s.jsonResponse(w, http.StatusCreated, map[string]int{"value": 42})

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"value":42`) {
		t.Errorf("Unexpected body: %s", w.Body.String())
	}
}

func TestErrorResponse(t *testing.T) {
	s := &Server{}
	w := httptest.NewRecorder()

	s.errorResponse(w, http.StatusBadRequest, "something broke")

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["error"] != "something broke" {
		t.Errorf("Expected error message, got %s", body["error"])
	}
}

func TestHandleError_QuotaBodyCarriesUsage(t *testing.T) {
	s := &Server{}
	w := httptest.NewRecorder()

	s.handleError(w, &ErrQuotaExceeded{
		Reason: license.ReasonMonthlyLimit,
		Stats:  license.Stats{PeriodPages: 50, MonthlyLimit: 50},
	})

	if w.Code != http.StatusPaymentRequired {
		t.Errorf("Expected status 402, got %d", w.Code)
	}

	var body struct {
		Error string        `json:"error"`
		Usage license.Stats `json:"usage"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Error != license.ReasonMonthlyLimit {
		t.Errorf("Expected reason in error field, got %s", body.Error)
	}
	if body.Usage.PeriodPages != 50 || body.Usage.MonthlyLimit != 50 {
		t.Errorf("Expected usage snapshot in body, got %+v", body.Usage)
	}
}

func TestWithCORS(t *testing.T) {
	s := &Server{}
	nextCalled := false
	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if !nextCalled {
		t.Error("Expected next handler to be called")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected CORS origin header, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "X-License-Key") {
		t.Errorf("Expected X-License-Key in allowed headers, got %q", got)
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("Expected inner status to pass through, got %d", w.Code)
	}
}

func TestWithCORS_Preflight(t *testing.T) {
	s := &Server{}
	nextCalled := false
	handler := s.withCORS(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/generate-page", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if nextCalled {
		t.Error("Expected preflight to short-circuit")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestWithLogging(t *testing.T) {
	s := &Server{}
	handler := s.withLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	req := httptest.NewRequest(http.MethodPost, "/bulk-jobs", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Errorf("Expected inner status to pass through, got %d", w.Code)
	}
}

func TestWithRateLimit(t *testing.T) {
	s := &Server{
		rateLimiter: ratelimit.NewLimiter(&ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  1,
			DefaultWindow: time.Hour,
		}),
	}
	defer s.rateLimiter.Stop()

	handler := s.withRateLimit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "10.0.0.1:51234"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != "1" {
		t.Errorf("Expected X-RateLimit-Limit 1, got %q", got)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected second request to be limited, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header on 429")
	}
	if !strings.Contains(w.Body.String(), "rate_limit_exceeded") {
		t.Errorf("Unexpected 429 body: %s", w.Body.String())
	}
}

func TestExtractClientID(t *testing.T) {
	s := &Server{}

	tests := []struct {
		name       string
		target     string
		headerKey  string
		remoteAddr string
		expected   string
	}{
		{
			name:       "license key query parameter wins",
			target:     "/bulk-jobs/abc?licenseKey=sg_query",
			headerKey:  "sg_header",
			remoteAddr: "10.0.0.1:1234",
			expected:   "sg_query",
		},
		{
			name:       "header key second",
			target:     "/generate-page",
			headerKey:  "sg_header",
			remoteAddr: "10.0.0.1:1234",
			expected:   "sg_header",
		},
		{
			name:       "ip fallback strips port",
			target:     "/generate-page",
			remoteAddr: "10.0.0.1:1234",
			expected:   "10.0.0.1",
		},
		{
			name:       "ip fallback without port",
			target:     "/generate-page",
			remoteAddr: "10.0.0.1",
			expected:   "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.headerKey != "" {
				req.Header.Set("X-License-Key", tt.headerKey)
			}
			if got := s.extractClientID(req); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSetRateLimitHeaders(t *testing.T) {
	s := &Server{}

	w := httptest.NewRecorder()
	s.setRateLimitHeaders(w, ratelimit.Info{Limit: 30, Remaining: 12, ResetTime: time.Now().Add(time.Minute)})
	if w.Header().Get("X-RateLimit-Limit") != "30" {
		t.Errorf("Expected limit header 30, got %q", w.Header().Get("X-RateLimit-Limit"))
	}
	if w.Header().Get("X-RateLimit-Remaining") != "12" {
		t.Errorf("Expected remaining header 12, got %q", w.Header().Get("X-RateLimit-Remaining"))
	}
	if w.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("Expected reset header to be set")
	}

	// Unlimited endpoints get no headers.
	w = httptest.NewRecorder()
	s.setRateLimitHeaders(w, ratelimit.Info{Allowed: true})
	if w.Header().Get("X-RateLimit-Limit") != "" {
		t.Error("Expected no headers for unlimited endpoint")
	}
}

func TestRoutes(t *testing.T) {
	store := newMemStore()
	s := newTestServer(store, &stubGenerator{resp: testPage()})
	routes := s.routes()

	tests := []struct {
		method   string
		target   string
		expected int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodPost, "/health", http.StatusMethodNotAllowed},
		{http.MethodGet, "/generate-page", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", http.StatusNotFound},
		{http.MethodGet, "/admin/licenses", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.target, nil)
		w := httptest.NewRecorder()
		routes.ServeHTTP(w, req)
		if w.Code != tt.expected {
			t.Errorf("%s %s: expected %d, got %d", tt.method, tt.target, tt.expected, w.Code)
		}
	}
}

func TestExtractValidationErrors(t *testing.T) {
	v := validator.New()

	type payload struct {
		Name string `validate:"required"`
	}
	err := v.Struct(payload{})
	if err == nil {
		t.Fatal("Expected validation error")
	}

	msg := extractValidationErrors(err)
	if !strings.Contains(msg, "Name") || !strings.Contains(msg, "required") {
		t.Errorf("Unexpected message: %s", msg)
	}

	if got := extractValidationErrors(errors.New("plain")); got != "validation error: invalid request" {
		t.Errorf("Unexpected fallback message: %s", got)
	}
}
