package handlers

import (
	"context"

	"github.com/jmylchreest/crawldesk-api/internal/docs"
	"github.com/jmylchreest/crawldesk-api/internal/service"
)

// DocsService serves and runs the documentation catalog.
type DocsService interface {
	Catalog() []docs.Node
	RunExample(ctx context.Context, exampleID, profileID string, overrides map[string]any) (*service.ExampleRun, error)
}

// DocsHandler handles documentation endpoints.
type DocsHandler struct {
	svc DocsService
}

// NewDocsHandler creates a new docs handler.
func NewDocsHandler(svc DocsService) *DocsHandler {
	return &DocsHandler{svc: svc}
}

// CatalogOutput represents catalog response.
type CatalogOutput struct {
	Body struct {
		Sections []docs.Node `json:"sections" doc:"Section tree"`
	}
}

// GetCatalog returns the documentation tree.
func (h *DocsHandler) GetCatalog(ctx context.Context, input *struct{}) (*CatalogOutput, error) {
	out := &CatalogOutput{}
	out.Body.Sections = h.svc.Catalog()
	return out, nil
}

// RunExampleBody carries optional parameter overrides.
type RunExampleBody struct {
	Overrides map[string]any `json:"overrides,omitempty" doc:"Parameters that replace the example's"`
}

// RunExampleInput represents run example request.
type RunExampleInput struct {
	ExampleID string          `path:"example_id" doc:"Catalog example ID"`
	ProfileID string          `query:"profile_id" required:"true" doc:"Profile whose tokens are used"`
	Body      *RunExampleBody `required:"false"`
}

// RunExampleOutput represents run example response.
type RunExampleOutput struct {
	Body *service.ExampleRun
}

// RunExample runs a catalog example against Crawlbase.
func (h *DocsHandler) RunExample(ctx context.Context, input *RunExampleInput) (*RunExampleOutput, error) {
	var overrides map[string]any
	if input.Body != nil {
		overrides = input.Body.Overrides
	}
	run, err := h.svc.RunExample(ctx, input.ExampleID, input.ProfileID, overrides)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &RunExampleOutput{Body: run}, nil
}
