package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jmylchreest/crawldesk-api/internal/apperr"
)

// toHumaError maps an error from the service layer to an HTTP error.
// NotFound is 404, Validation is 400, Upstream keeps the upstream status
// when it is an error status and is 502 otherwise. Anything else is logged
// and hidden behind a 500.
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	var statusErr huma.StatusError
	if errors.As(err, &statusErr) {
		return err
	}

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return huma.Error404NotFound(apperr.Message(err, "not found"))
	case errors.Is(err, apperr.ErrValidation):
		return huma.Error400BadRequest(apperr.Message(err, "invalid request"))
	case errors.Is(err, apperr.ErrUpstream):
		status := apperr.StatusCode(err)
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		slog.Warn("upstream request failed", "status", status, "error", err)
		return huma.NewError(status, apperr.Message(err, "failed to query Crawlbase"))
	}

	slog.Error("request failed", "error", err)
	return huma.Error500InternalServerError("internal server error")
}
