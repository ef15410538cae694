// Package mw provides HTTP middleware for the Crawldesk API.
package mw

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Cache lifetimes for static API data.
const (
	CacheMaxAgeShort = 30 * time.Second
	CacheMaxAgeLong  = time.Hour
)

// CachePolicy defines caching behavior for a route pattern.
type CachePolicy struct {
	// Pattern is the route pattern to match (prefix match by default).
	Pattern string
	// CacheControl is the Cache-Control header value to set.
	CacheControl string
}

// CacheConfig holds the cache middleware configuration.
type CacheConfig struct {
	// Policies are the cache policies to apply, matched in order.
	Policies []CachePolicy
	// DefaultPolicy is applied when no policy matches (empty = no header set).
	DefaultPolicy string
}

// DefaultCacheConfig returns the cache policies of the API. Presets and the
// docs catalog are compiled in and safe to cache; profile data, usage and
// workbooks are always revalidated.
func DefaultCacheConfig() CacheConfig {
	shortSecs := int(CacheMaxAgeShort.Seconds())
	longSecs := int(CacheMaxAgeLong.Seconds())

	return CacheConfig{
		DefaultPolicy: "private, no-cache",
		Policies: []CachePolicy{
			{Pattern: "/api/health", CacheControl: fmt.Sprintf("private, max-age=%d", shortSecs)},
			{Pattern: "/healthz", CacheControl: "no-store"},
			{Pattern: "/readyz", CacheControl: "no-store"},

			{Pattern: "/api/link-factory/presets", CacheControl: fmt.Sprintf("private, max-age=%d", longSecs)},
			{Pattern: "/api/docs/catalog", CacheControl: fmt.Sprintf("private, max-age=%d", longSecs)},

			// Profiles carry decrypted tokens.
			{Pattern: "/api/profiles", CacheControl: "no-store"},
			{Pattern: "/api/dashboard", CacheControl: "private, no-cache"},
			{Pattern: "/api/scrapers/download", CacheControl: "private, no-cache"},
		},
	}
}

// Cache returns middleware that sets Cache-Control headers based on route patterns.
// For non-GET/HEAD requests, it sets "no-store" to prevent caching of mutations.
// For GET/HEAD requests, it matches against configured policies in order.
func Cache(cfg CacheConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				w.Header().Set("Cache-Control", "no-store")
				next.ServeHTTP(w, r)
				return
			}

			path := r.URL.Path
			for _, policy := range cfg.Policies {
				if matchesPattern(path, policy.Pattern) {
					w.Header().Set("Cache-Control", policy.CacheControl)
					next.ServeHTTP(w, r)
					return
				}
			}

			if cfg.DefaultPolicy != "" {
				w.Header().Set("Cache-Control", cfg.DefaultPolicy)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// matchesPattern reports whether path equals pattern or continues it as a
// sub-path. "/api/profiles" matches "/api/profiles/01J..." but not
// "/api/profilesx".
func matchesPattern(path, pattern string) bool {
	if path == pattern {
		return true
	}
	if !strings.HasPrefix(path, pattern) {
		return false
	}
	return strings.HasSuffix(pattern, "/") || path[len(pattern)] == '/'
}
