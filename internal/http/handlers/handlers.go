// Package handlers contains HTTP handlers for the API.
package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jmylchreest/crawldesk-api/internal/version"
)

// HealthCheckOutput represents health check response.
type HealthCheckOutput struct {
	Body struct {
		Status      string `json:"status" doc:"Always ok while the server is up"`
		Environment string `json:"environment" doc:"APP_ENV of the server"`
		Version     string `json:"version" doc:"Server version"`
	}
}

// HealthHandler reports liveness to the desktop shell.
type HealthHandler struct {
	environment string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{environment: environment}
}

// HealthCheck returns the health status of the API.
func (h *HealthHandler) HealthCheck(ctx context.Context, input *struct{}) (*HealthCheckOutput, error) {
	out := &HealthCheckOutput{}
	out.Body.Status = "ok"
	out.Body.Environment = h.environment
	out.Body.Version = version.Get().Short()
	return out, nil
}

// LivezOutput represents the liveness check response.
type LivezOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

// Livez is a dependency-free liveness check.
func Livez(ctx context.Context, input *struct{}) (*LivezOutput, error) {
	out := &LivezOutput{}
	out.Body.Status = "ok"
	return out, nil
}

// DBPinger is the database handle checked by the readiness check.
type DBPinger interface {
	Ping() error
}

// ReadyzOutput represents the readiness check response.
type ReadyzOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

// ReadyzHandler reports readiness once the database answers.
type ReadyzHandler struct {
	db DBPinger
}

// NewReadyzHandler creates a new readiness handler. A nil db is always ready.
func NewReadyzHandler(db DBPinger) *ReadyzHandler {
	return &ReadyzHandler{db: db}
}

// Readyz pings the database.
func (h *ReadyzHandler) Readyz(ctx context.Context, input *struct{}) (*ReadyzOutput, error) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			return nil, huma.Error503ServiceUnavailable("database unavailable")
		}
	}
	out := &ReadyzOutput{}
	out.Body.Status = "ok"
	return out, nil
}
