package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil))

	if rr.Code != http.StatusTeapot {
		t.Errorf("expected wrapped handler status, got %d", rr.Code)
	}

	expected := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"Cache-Control":          "no-store, no-cache, must-revalidate",
		"X-Frame-Options":        "DENY",
	}
	for header, want := range expected {
		if got := rr.Header().Get(header); got != want {
			t.Errorf("header %s: expected %q, got %q", header, want, got)
		}
	}
}

func TestLimitRequestBody(t *testing.T) {
	handler := LimitRequestBody(8, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short")))
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 for small body, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this body is too long")))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413 for large body, got %d", rr.Code)
	}
}

func TestCachedPromHandler(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cached_handler_test_total",
		Help: "test counter",
	})
	registry.MustRegister(counter)
	counter.Inc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := NewCachedPromHandler(ctx, registry, time.Hour)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rr.Body.String(), "cached_handler_test_total 1") {
		t.Fatalf("expected live gather before first refresh, got %q", rr.Body.String())
	}

	handler.refresh()
	counter.Inc()

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rr.Body.String(), "cached_handler_test_total 1") {
		t.Errorf("expected cached value 1 until the next refresh, got %q", rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text/plain content type, got %q", ct)
	}

	handler.refresh()
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rr.Body.String(), "cached_handler_test_total 2") {
		t.Errorf("expected refreshed value 2, got %q", rr.Body.String())
	}
}
