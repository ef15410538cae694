package mw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// waitForContext blocks until the request context ends or d passes, then
// answers the way a huma handler would.
func waitForContext(d time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			// Mirror a handler that gives up without writing.
		case <-time.After(d):
			w.WriteHeader(http.StatusOK)
		}
	}
}

// ========================================
// Timeout Middleware Tests
// ========================================

func TestTimeout_Paths(t *testing.T) {
	cfg := TimeoutConfig{
		Default:          20 * time.Millisecond,
		Extended:         500 * time.Millisecond,
		ExtendedPatterns: []string{"/api/dashboard", "/api/docs/run-example"},
		SkipPatterns:     []string{"/api/scrapers/scrape"},
	}

	tests := []struct {
		path string
		want int
	}{
		{"/api/projects", http.StatusGatewayTimeout},
		{"/api/dashboard/usage", http.StatusOK},
		{"/api/docs/run-example/crawling-api-hello-world", http.StatusOK},
		{"/api/scrapers/scrape", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			handler := Timeout(cfg)(waitForContext(80 * time.Millisecond))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestTimeout_FastHandler(t *testing.T) {
	handler := Timeout(TimeoutConfig{Default: time.Second})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/profiles", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestTimeout_SetsDeadline(t *testing.T) {
	var hasDeadline bool
	handler := Timeout(TimeoutConfig{Default: time.Second})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !hasDeadline {
		t.Error("expected request context to carry a deadline")
	}
}

func TestTimeout_ZeroDefaultDisables(t *testing.T) {
	var ctxErr error
	handler := Timeout(TimeoutConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Deadline(); ok {
			ctxErr = context.DeadlineExceeded
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if ctxErr != nil {
		t.Error("zero timeout should not set a deadline")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestTimeout_AlreadyWritten(t *testing.T) {
	handler := Timeout(TimeoutConfig{Default: 10 * time.Millisecond})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		<-r.Context().Done()
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}
}
