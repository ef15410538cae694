package mw

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// ExtendWriteDeadline is middleware that extends the HTTP write deadline of
// requests whose path contains one of patterns. A bulk scrape answers only
// once every URL was fetched, so it outlives the server's WriteTimeout.
// A non-positive d leaves the deadline untouched.
func ExtendWriteDeadline(d time.Duration, patterns ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d > 0 && matchesAny(r.URL.Path, patterns) {
				rc := http.NewResponseController(w)
				if err := rc.SetWriteDeadline(time.Now().Add(d)); err != nil {
					// Recorders and some proxies do not support deadlines.
					slog.Debug("could not extend write deadline", "path", r.URL.Path, "error", err)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func matchesAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}
