package handlers

import (
	"context"
	"time"

	"github.com/jmylchreest/crawldesk-api/internal/models"
	"github.com/jmylchreest/crawldesk-api/internal/service"
)

// ProjectService is the project store used by ProjectHandler.
type ProjectService interface {
	Create(ctx context.Context, in service.ProjectInput) (*models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context, profileID string) ([]*models.Project, error)
	Update(ctx context.Context, id string, upd service.ProjectUpdate) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	svc ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(svc ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// ListProjectsInput represents list projects request.
type ListProjectsInput struct {
	ProfileID string `query:"profile_id" doc:"Only list projects of this profile"`
}

// ListProjectsOutput represents list projects response.
type ListProjectsOutput struct {
	Body []*models.Project
}

// ListProjects returns projects, optionally filtered by profile.
func (h *ProjectHandler) ListProjects(ctx context.Context, input *ListProjectsInput) (*ListProjectsOutput, error) {
	projects, err := h.svc.List(ctx, input.ProfileID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ListProjectsOutput{Body: projects}, nil
}

// CreateProjectBody is the payload of a new project.
type CreateProjectBody struct {
	ProfileID     string         `json:"profile_id" doc:"Owning profile"`
	Name          string         `json:"name" doc:"Project name"`
	Description   string         `json:"description,omitempty"`
	ScraperKey    string         `json:"scraper_key,omitempty" doc:"Crawlbase scraper identifier, e.g. amazon-product-details"`
	Status        string         `json:"status,omitempty" enum:"draft,active,paused,archived" doc:"Defaults to draft"`
	Settings      map[string]any `json:"settings,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	OutputFormats []string       `json:"output_formats,omitempty" doc:"Defaults to [\"xlsx\"]"`
	LinkBlueprint map[string]any `json:"link_blueprint,omitempty"`
}

// CreateProjectInput represents create project request.
type CreateProjectInput struct {
	Body CreateProjectBody
}

// ProjectOutput is a single project response.
type ProjectOutput struct {
	Body *models.Project
}

// CreateProject creates a project.
func (h *ProjectHandler) CreateProject(ctx context.Context, input *CreateProjectInput) (*ProjectOutput, error) {
	b := input.Body
	p, err := h.svc.Create(ctx, service.ProjectInput{
		ProfileID:     b.ProfileID,
		Name:          b.Name,
		Description:   b.Description,
		ScraperKey:    b.ScraperKey,
		Status:        models.ProjectStatus(b.Status),
		Settings:      b.Settings,
		Tags:          b.Tags,
		OutputFormats: b.OutputFormats,
		LinkBlueprint: b.LinkBlueprint,
	})
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ProjectOutput{Body: p}, nil
}

// GetProjectInput represents get project request.
type GetProjectInput struct {
	ProjectID string `path:"project_id" doc:"Project ID"`
}

// GetProject returns one project.
func (h *ProjectHandler) GetProject(ctx context.Context, input *GetProjectInput) (*ProjectOutput, error) {
	p, err := h.svc.Get(ctx, input.ProjectID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ProjectOutput{Body: p}, nil
}

// UpdateProjectBody lists the fields a PATCH may change.
type UpdateProjectBody struct {
	ProfileID     *string        `json:"profile_id,omitempty"`
	Name          *string        `json:"name,omitempty"`
	Description   *string        `json:"description,omitempty"`
	ScraperKey    *string        `json:"scraper_key,omitempty"`
	Status        *string        `json:"status,omitempty" enum:"draft,active,paused,archived"`
	Settings      map[string]any `json:"settings,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	OutputFormats []string       `json:"output_formats,omitempty"`
	LinkBlueprint map[string]any `json:"link_blueprint,omitempty"`
	LastRunAt     *time.Time     `json:"last_run_at,omitempty"`
}

// UpdateProjectInput represents update project request.
type UpdateProjectInput struct {
	ProjectID string `path:"project_id" doc:"Project ID"`
	Body      UpdateProjectBody
}

// UpdateProject applies a partial update.
func (h *ProjectHandler) UpdateProject(ctx context.Context, input *UpdateProjectInput) (*ProjectOutput, error) {
	b := input.Body
	upd := service.ProjectUpdate{
		ProfileID:   b.ProfileID,
		Name:        b.Name,
		Description: b.Description,
		ScraperKey:  b.ScraperKey,
		LastRunAt:   b.LastRunAt,
	}
	if b.Status != nil {
		status := models.ProjectStatus(*b.Status)
		upd.Status = &status
	}
	if b.Settings != nil {
		upd.Settings = &b.Settings
	}
	if b.Tags != nil {
		upd.Tags = &b.Tags
	}
	if b.OutputFormats != nil {
		upd.OutputFormats = &b.OutputFormats
	}
	if b.LinkBlueprint != nil {
		upd.LinkBlueprint = &b.LinkBlueprint
	}

	p, err := h.svc.Update(ctx, input.ProjectID, upd)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ProjectOutput{Body: p}, nil
}

// DeleteProjectInput represents delete project request.
type DeleteProjectInput struct {
	ProjectID string `path:"project_id" doc:"Project ID"`
}

// DeleteProject removes a project.
func (h *ProjectHandler) DeleteProject(ctx context.Context, input *DeleteProjectInput) (*struct{}, error) {
	if err := h.svc.Delete(ctx, input.ProjectID); err != nil {
		return nil, toHumaError(err)
	}
	return nil, nil
}
