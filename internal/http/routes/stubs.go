package routes

import (
	"context"

	"github.com/jmylchreest/crawldesk-api/internal/http/handlers"
)

// StubHandlers returns a Handlers instance with stub implementations.
// All handlers return nil responses - these are only used for OpenAPI generation
// where Huma extracts type information from function signatures.
func StubHandlers() *Handlers {
	return &Handlers{
		HealthCheck: stubHealthCheck,
		Livez:       stubLivez,
		Readyz:      stubReadyz,

		Profile:     &stubProfileHandlers{},
		Project:     &stubProjectHandlers{},
		Dashboard:   &stubDashboardHandlers{},
		Docs:        &stubDocsHandlers{},
		LinkFactory: &stubLinkFactoryHandlers{},
		Scraper:     &stubScraperHandlers{},
	}
}

func stubHealthCheck(_ context.Context, _ *struct{}) (*handlers.HealthCheckOutput, error) {
	return nil, nil
}

func stubLivez(_ context.Context, _ *struct{}) (*handlers.LivezOutput, error) {
	return nil, nil
}

func stubReadyz(_ context.Context, _ *struct{}) (*handlers.ReadyzOutput, error) {
	return nil, nil
}

// --- Profile handlers stub ---

type stubProfileHandlers struct{}

func (s *stubProfileHandlers) ListProfiles(_ context.Context, _ *handlers.ListProfilesInput) (*handlers.ListProfilesOutput, error) {
	return nil, nil
}

func (s *stubProfileHandlers) CreateProfile(_ context.Context, _ *handlers.CreateProfileInput) (*handlers.ProfileOutput, error) {
	return nil, nil
}

func (s *stubProfileHandlers) GetProfile(_ context.Context, _ *handlers.GetProfileInput) (*handlers.ProfileOutput, error) {
	return nil, nil
}

func (s *stubProfileHandlers) UpdateProfile(_ context.Context, _ *handlers.UpdateProfileInput) (*handlers.ProfileOutput, error) {
	return nil, nil
}

func (s *stubProfileHandlers) DeleteProfile(_ context.Context, _ *handlers.DeleteProfileInput) (*struct{}, error) {
	return nil, nil
}

// --- Project handlers stub ---

type stubProjectHandlers struct{}

func (s *stubProjectHandlers) ListProjects(_ context.Context, _ *handlers.ListProjectsInput) (*handlers.ListProjectsOutput, error) {
	return nil, nil
}

func (s *stubProjectHandlers) CreateProject(_ context.Context, _ *handlers.CreateProjectInput) (*handlers.ProjectOutput, error) {
	return nil, nil
}

func (s *stubProjectHandlers) GetProject(_ context.Context, _ *handlers.GetProjectInput) (*handlers.ProjectOutput, error) {
	return nil, nil
}

func (s *stubProjectHandlers) UpdateProject(_ context.Context, _ *handlers.UpdateProjectInput) (*handlers.ProjectOutput, error) {
	return nil, nil
}

func (s *stubProjectHandlers) DeleteProject(_ context.Context, _ *handlers.DeleteProjectInput) (*struct{}, error) {
	return nil, nil
}

// --- Dashboard handlers stub ---

type stubDashboardHandlers struct{}

func (s *stubDashboardHandlers) GetUsage(_ context.Context, _ *handlers.GetUsageInput) (*handlers.GetUsageOutput, error) {
	return nil, nil
}

// --- Docs handlers stub ---

type stubDocsHandlers struct{}

func (s *stubDocsHandlers) GetCatalog(_ context.Context, _ *struct{}) (*handlers.CatalogOutput, error) {
	return nil, nil
}

func (s *stubDocsHandlers) RunExample(_ context.Context, _ *handlers.RunExampleInput) (*handlers.RunExampleOutput, error) {
	return nil, nil
}

// --- Link factory handlers stub ---

type stubLinkFactoryHandlers struct{}

func (s *stubLinkFactoryHandlers) ListPresets(_ context.Context, _ *struct{}) (*handlers.ListPresetsOutput, error) {
	return nil, nil
}

func (s *stubLinkFactoryHandlers) GenerateLinks(_ context.Context, _ *handlers.GenerateLinksInput) (*handlers.GenerateLinksOutput, error) {
	return nil, nil
}

// --- Scraper handlers stub ---

type stubScraperHandlers struct{}

func (s *stubScraperHandlers) Scrape(_ context.Context, _ *handlers.ScrapeInput) (*handlers.ScrapeOutput, error) {
	return nil, nil
}

func (s *stubScraperHandlers) Download(_ context.Context, _ *handlers.DownloadInput) (*handlers.DownloadOutput, error) {
	return nil, nil
}
