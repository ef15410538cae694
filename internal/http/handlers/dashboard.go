package handlers

import (
	"context"

	"github.com/jmylchreest/crawldesk-api/internal/analytics"
	"github.com/jmylchreest/crawldesk-api/internal/service"
)

// UsageService produces usage snapshots.
type UsageService interface {
	Snapshot(ctx context.Context, req service.UsageRequest) (analytics.Snapshot, error)
}

// DashboardHandler handles the usage dashboard endpoint.
type DashboardHandler struct {
	svc UsageService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(svc UsageService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GetUsageInput represents usage snapshot request.
type GetUsageInput struct {
	ProfileID       string `query:"profile_id" required:"true" doc:"Profile to query"`
	Product         string `query:"product" default:"crawling-api" doc:"Crawlbase product"`
	IncludePrevious bool   `query:"include_previous" default:"false" doc:"Include the previous month for the trend"`
	ForceRefresh    bool   `query:"force_refresh" default:"false" doc:"Skip the cache and query Crawlbase"`
}

// GetUsageOutput represents usage snapshot response.
type GetUsageOutput struct {
	Body analytics.Snapshot
}

// GetUsage returns the usage snapshot of a profile.
func (h *DashboardHandler) GetUsage(ctx context.Context, input *GetUsageInput) (*GetUsageOutput, error) {
	snap, err := h.svc.Snapshot(ctx, service.UsageRequest{
		ProfileID:       input.ProfileID,
		Product:         input.Product,
		IncludePrevious: input.IncludePrevious,
		ForceRefresh:    input.ForceRefresh,
	})
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GetUsageOutput{Body: snap}, nil
}
