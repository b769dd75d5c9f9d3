package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimiter_CheckIPLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	assert.True(t, rl.CheckIPLimit("10.0.0.1"))
	assert.True(t, rl.CheckIPLimit("10.0.0.1"))
	assert.False(t, rl.CheckIPLimit("10.0.0.1"))
	assert.Equal(t, 0, rl.GetIPRemaining("10.0.0.1"))

	assert.True(t, rl.CheckIPLimit("10.0.0.2"))
	assert.Equal(t, 1, rl.GetIPRemaining("10.0.0.2"))

	rl.Reset()
	assert.Equal(t, 2, rl.GetIPRemaining("10.0.0.1"))
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)
	defer rl.Stop()

	assert.True(t, rl.CheckIPLimit("10.0.0.1"))
	assert.False(t, rl.CheckIPLimit("10.0.0.1"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.CheckIPLimit("10.0.0.1"))

	time.Sleep(20 * time.Millisecond)
	rl.removeExpired(time.Now())
	rl.mu.RLock()
	assert.Empty(t, rl.ipLimits)
	rl.mu.RUnlock()
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	h := rl.Middleware(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/hello", nil)
	req.RemoteAddr = "192.0.2.1:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")

	// Stop is idempotent.
	rl.Stop()
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}

func TestAccessLog_PassesThrough(t *testing.T) {
	h := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{name: "wildcard", allowed: []string{"*"}, origin: "http://localhost:5173", want: "*"},
		{name: "listed origin", allowed: []string{"https://petween.app"}, origin: "https://petween.app", want: "https://petween.app"},
		{name: "unlisted origin", allowed: []string{"https://petween.app"}, origin: "https://evil.example", want: ""},
		{name: "no origin", allowed: []string{"*"}, origin: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCORS(tt.allowed).Handler(okHandler)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{name: "wildcard", allowed: []string{"*"}, origin: "http://localhost:5173", wantStatus: http.StatusNoContent, wantOrigin: "*"},
		{name: "listed origin", allowed: []string{"https://petween.app"}, origin: "https://petween.app", wantStatus: http.StatusNoContent, wantOrigin: "https://petween.app"},
		{name: "unlisted origin", allowed: []string{"https://petween.app"}, origin: "https://evil.example", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := NewCORS(tt.allowed).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodOptions, "/user/", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.False(t, called)
			if tt.wantStatus == http.StatusForbidden {
				assert.Contains(t, rec.Body.String(), "FORBIDDEN")
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	r := mux.NewRouter()
	r.Handle("/users/{user_id:[0-9]+}", okHandler).Methods(http.MethodGet)
	h := m.Instrument(r, r)

	requests := []struct {
		method string
		path   string
		want   int
	}{
		{method: http.MethodGet, path: "/users/1", want: http.StatusOK},
		{method: http.MethodGet, path: "/users/2", want: http.StatusOK},
		{method: http.MethodGet, path: "/nope", want: http.StatusNotFound},
		{method: http.MethodPost, path: "/users/1", want: http.StatusMethodNotAllowed},
	}
	for _, req := range requests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(req.method, req.path, nil))
		require.Equal(t, req.want, rec.Code, req.path)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body),
		`petween_http_requests_total{method="GET",path="/users/{user_id:[0-9]+}",status="200"} 2`)
	assert.Contains(t, string(body),
		`petween_http_requests_total{method="GET",path="unmatched",status="404"} 1`)
	assert.Contains(t, string(body),
		`petween_http_requests_total{method="POST",path="unmatched",status="405"} 1`)
}
