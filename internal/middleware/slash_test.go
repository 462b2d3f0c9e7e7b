package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"docpress/internal/middleware"
)

func TestTrimSlash(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantLocation string
	}{
		{"trailing slash redirects", "/posts/history/", http.StatusMovedPermanently, "/posts/history"},
		{"no trailing slash passes", "/posts/history", http.StatusOK, ""},
		{"root preserved", "/", http.StatusOK, ""},
	}

	handler := middleware.TrimSlash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantLocation != "" && rec.Header().Get("Location") != tt.wantLocation {
				t.Errorf("location = %q, want %q", rec.Header().Get("Location"), tt.wantLocation)
			}
		})
	}
}

func TestTrimSlash_PreservesQuery(t *testing.T) {
	handler := middleware.TrimSlash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts/history/?status=failed", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Location"); got != "/posts/history?status=failed" {
		t.Errorf("location = %q, want /posts/history?status=failed", got)
	}
}
