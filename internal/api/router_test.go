// MovieDepot - Movie Catalog Ingestion and Query Backend
// Copyright 2026 MovieDepot contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviedepot/moviedepot

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/moviedepot/moviedepot/internal/config"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := testConfig(t)
	cfg.Security = config.SecurityConfig{
		RateLimitReqs:     100,
		RateLimitWindow:   time.Minute,
		RateLimitDisabled: true,
		CORSOrigins:       []string{"*"},
	}
	handler := NewHandler(cfg, &stubStore{}, &stubIngestor{})
	return NewRouter(handler, NewMiddleware(&cfg.Security))
}

func TestRouter(t *testing.T) {
	router := testRouter(t)

	routes := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/movies", http.StatusOK},
		{http.MethodGet, "/api/movies/filters", http.StatusOK},
		{http.MethodGet, "/api/movies/debug", http.StatusOK},
		{http.MethodGet, "/api/upload/status", http.StatusOK},
		{http.MethodPost, "/api/upload", http.StatusBadRequest}, // no multipart body
		{http.MethodGet, "/api/nonexistent", http.StatusNotFound},
		{http.MethodDelete, "/api/movies", http.StatusMethodNotAllowed},
	}

	for _, tt := range routes {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.status {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.status)
		}
	}
}

func TestRouterRequestID(t *testing.T) {
	router := testRouter(t)

	t.Run("generates a request ID", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies", nil))

		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header missing")
		}
	})

	t.Run("echoes an inbound request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
		req.Header.Set("X-Request-ID", "upstream-id")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got != "upstream-id" {
			t.Errorf("X-Request-ID = %q, want upstream-id", got)
		}
	})
}

func TestRouterCORS(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/movies", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
