package mw

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ========================================
// DefaultCacheConfig Tests
// ========================================

func TestCache_DefaultPolicies(t *testing.T) {
	longPolicy := fmt.Sprintf("private, max-age=%d", int(CacheMaxAgeLong.Seconds()))

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/health", fmt.Sprintf("private, max-age=%d", int(CacheMaxAgeShort.Seconds()))},
		{http.MethodGet, "/healthz", "no-store"},
		{http.MethodGet, "/api/link-factory/presets", longPolicy},
		{http.MethodGet, "/api/docs/catalog", longPolicy},
		{http.MethodGet, "/api/profiles", "no-store"},
		{http.MethodGet, "/api/profiles/01HZX", "no-store"},
		{http.MethodGet, "/api/dashboard/usage", "private, no-cache"},
		{http.MethodGet, "/api/scrapers/download", "private, no-cache"},
		{http.MethodGet, "/api/projects", "private, no-cache"},
		{http.MethodHead, "/api/docs/catalog", longPolicy},
		{http.MethodPost, "/api/link-factory/generate", "no-store"},
		{http.MethodDelete, "/api/projects/01HZX", "no-store"},
	}

	handler := Cache(DefaultCacheConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCache_NoDefaultPolicy(t *testing.T) {
	handler := Cache(CacheConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Cache-Control"); got != "" {
		t.Errorf("Cache-Control = %q, want empty", got)
	}
}

// ========================================
// matchesPattern Tests
// ========================================

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"/api/profiles", "/api/profiles", true},
		{"/api/profiles/abc", "/api/profiles", true},
		{"/api/profilesx", "/api/profiles", false},
		{"/api/docs/catalog", "/api/docs/", true},
		{"/api", "/api/profiles", false},
	}

	for _, tt := range tests {
		t.Run(tt.path+"~"+tt.pattern, func(t *testing.T) {
			if got := matchesPattern(tt.path, tt.pattern); got != tt.want {
				t.Errorf("matchesPattern(%q, %q) = %v, want %v", tt.path, tt.pattern, got, tt.want)
			}
		})
	}
}
