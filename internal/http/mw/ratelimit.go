package mw

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitConfig holds configuration for rate limiting.
type RateLimitConfig struct {
	// IPRequestsPerMinute limits every client address. 0 disables it.
	IPRequestsPerMinute int
	// UpstreamRequestsPerMinute limits, across all clients, the requests
	// to paths that spend Crawlbase credits. 0 disables it.
	UpstreamRequestsPerMinute int
	// UpstreamPatterns selects the upstream paths.
	UpstreamPatterns []string
}

// RateLimit returns a middleware that applies both limits of cfg.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	ipLimit := RateLimitByIP(cfg.IPRequestsPerMinute)
	upstreamLimit := RateLimitGlobal(cfg.UpstreamRequestsPerMinute)

	return func(next http.Handler) http.Handler {
		upstream := ipLimit(upstreamLimit(next))
		other := ipLimit(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if matchesAny(r.URL.Path, cfg.UpstreamPatterns) {
				upstream.ServeHTTP(w, r)
				return
			}
			other.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP returns a middleware that rate limits by IP address.
// A non-positive limit means unlimited.
func RateLimitByIP(requestsPerMinute int) func(http.Handler) http.Handler {
	if requestsPerMinute <= 0 {
		return passthrough
	}
	return httprate.LimitByIP(requestsPerMinute, time.Minute)
}

// RateLimitGlobal returns a middleware that applies one shared limit to all
// clients. A non-positive limit means unlimited.
func RateLimitGlobal(requestsPerMinute int) func(http.Handler) http.Handler {
	if requestsPerMinute <= 0 {
		return passthrough
	}
	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return "global", nil
		}),
	)
}

func passthrough(next http.Handler) http.Handler {
	return next
}
