package routes

import (
	"context"

	"github.com/jmylchreest/crawldesk-api/internal/http/handlers"
)

// ProfileHandlers defines the interface for profile operations.
type ProfileHandlers interface {
	ListProfiles(ctx context.Context, input *handlers.ListProfilesInput) (*handlers.ListProfilesOutput, error)
	CreateProfile(ctx context.Context, input *handlers.CreateProfileInput) (*handlers.ProfileOutput, error)
	GetProfile(ctx context.Context, input *handlers.GetProfileInput) (*handlers.ProfileOutput, error)
	UpdateProfile(ctx context.Context, input *handlers.UpdateProfileInput) (*handlers.ProfileOutput, error)
	DeleteProfile(ctx context.Context, input *handlers.DeleteProfileInput) (*struct{}, error)
}

// ProjectHandlers defines the interface for project operations.
type ProjectHandlers interface {
	ListProjects(ctx context.Context, input *handlers.ListProjectsInput) (*handlers.ListProjectsOutput, error)
	CreateProject(ctx context.Context, input *handlers.CreateProjectInput) (*handlers.ProjectOutput, error)
	GetProject(ctx context.Context, input *handlers.GetProjectInput) (*handlers.ProjectOutput, error)
	UpdateProject(ctx context.Context, input *handlers.UpdateProjectInput) (*handlers.ProjectOutput, error)
	DeleteProject(ctx context.Context, input *handlers.DeleteProjectInput) (*struct{}, error)
}

// DashboardHandlers defines the interface for usage dashboard operations.
type DashboardHandlers interface {
	GetUsage(ctx context.Context, input *handlers.GetUsageInput) (*handlers.GetUsageOutput, error)
}

// DocsHandlers defines the interface for documentation operations.
type DocsHandlers interface {
	GetCatalog(ctx context.Context, input *struct{}) (*handlers.CatalogOutput, error)
	RunExample(ctx context.Context, input *handlers.RunExampleInput) (*handlers.RunExampleOutput, error)
}

// LinkFactoryHandlers defines the interface for link generation.
type LinkFactoryHandlers interface {
	ListPresets(ctx context.Context, input *struct{}) (*handlers.ListPresetsOutput, error)
	GenerateLinks(ctx context.Context, input *handlers.GenerateLinksInput) (*handlers.GenerateLinksOutput, error)
}

// ScraperHandlers defines the interface for bulk scraping.
type ScraperHandlers interface {
	Scrape(ctx context.Context, input *handlers.ScrapeInput) (*handlers.ScrapeOutput, error)
	Download(ctx context.Context, input *handlers.DownloadInput) (*handlers.DownloadOutput, error)
}

// Handlers holds all handler implementations needed for route registration.
type Handlers struct {
	HealthCheck func(ctx context.Context, input *struct{}) (*handlers.HealthCheckOutput, error)

	// Health checks
	Livez  func(ctx context.Context, input *struct{}) (*handlers.LivezOutput, error)
	Readyz func(ctx context.Context, input *struct{}) (*handlers.ReadyzOutput, error)

	Profile     ProfileHandlers
	Project     ProjectHandlers
	Dashboard   DashboardHandlers
	Docs        DocsHandlers
	LinkFactory LinkFactoryHandlers
	Scraper     ScraperHandlers
}
