package routes

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jmylchreest/crawldesk-api/internal/http/mw"
)

// Register registers all API routes with the given Huma API instance.
// Pass real handler implementations for the main server, or stub implementations
// for OpenAPI generation.
func Register(api huma.API, h *Handlers) {
	mw.Get(api, "/api/health", h.HealthCheck,
		mw.WithTags("Health"),
		mw.WithSummary("Health check"),
		mw.WithOperationID("healthCheck"))

	// Health checks for the desktop shell's process supervisor
	mw.HiddenGet(api, "/healthz", h.Livez)
	mw.HiddenGet(api, "/readyz", h.Readyz)

	// --- Profiles ---
	mw.Get(api, "/api/profiles", h.Profile.ListProfiles,
		mw.WithTags("Profiles"),
		mw.WithSummary("List profiles"),
		mw.WithOperationID("listProfiles"))
	mw.Post(api, "/api/profiles", h.Profile.CreateProfile,
		mw.WithTags("Profiles"),
		mw.WithSummary("Create profile"),
		mw.WithDefaultStatus(http.StatusCreated),
		mw.WithOperationID("createProfile"))
	mw.Get(api, "/api/profiles/{profile_id}", h.Profile.GetProfile,
		mw.WithTags("Profiles"),
		mw.WithSummary("Get profile"),
		mw.WithOperationID("getProfile"))
	mw.Patch(api, "/api/profiles/{profile_id}", h.Profile.UpdateProfile,
		mw.WithTags("Profiles"),
		mw.WithSummary("Update profile"),
		mw.WithDescription("Partial update. Omitted fields are kept; an empty optional token clears it."),
		mw.WithOperationID("updateProfile"))
	mw.Delete(api, "/api/profiles/{profile_id}", h.Profile.DeleteProfile,
		mw.WithTags("Profiles"),
		mw.WithSummary("Delete profile"),
		mw.WithDescription("Deletes the profile and all of its projects."),
		mw.WithOperationID("deleteProfile"))

	// --- Projects ---
	mw.Get(api, "/api/projects", h.Project.ListProjects,
		mw.WithTags("Projects"),
		mw.WithSummary("List projects"),
		mw.WithOperationID("listProjects"))
	mw.Post(api, "/api/projects", h.Project.CreateProject,
		mw.WithTags("Projects"),
		mw.WithSummary("Create project"),
		mw.WithDefaultStatus(http.StatusCreated),
		mw.WithOperationID("createProject"))
	mw.Get(api, "/api/projects/{project_id}", h.Project.GetProject,
		mw.WithTags("Projects"),
		mw.WithSummary("Get project"),
		mw.WithOperationID("getProject"))
	mw.Patch(api, "/api/projects/{project_id}", h.Project.UpdateProject,
		mw.WithTags("Projects"),
		mw.WithSummary("Update project"),
		mw.WithOperationID("updateProject"))
	mw.Delete(api, "/api/projects/{project_id}", h.Project.DeleteProject,
		mw.WithTags("Projects"),
		mw.WithSummary("Delete project"),
		mw.WithOperationID("deleteProject"))

	// --- Dashboard ---
	mw.Get(api, "/api/dashboard/usage", h.Dashboard.GetUsage,
		mw.WithTags("Dashboard"),
		mw.WithSummary("Get usage snapshot"),
		mw.WithDescription("Queries the Crawlbase account endpoint and normalizes the answer. Snapshots are cached per profile, product and comparison flag."),
		mw.WithUpstream(),
		mw.WithOperationID("getUsage"))

	// --- Docs ---
	mw.Get(api, "/api/docs/catalog", h.Docs.GetCatalog,
		mw.WithTags("Docs"),
		mw.WithSummary("Get documentation catalog"),
		mw.WithOperationID("getDocsCatalog"))
	mw.Post(api, "/api/docs/run-example/{example_id}", h.Docs.RunExample,
		mw.WithTags("Docs"),
		mw.WithSummary("Run documentation example"),
		mw.WithDescription("Sends the example request with the profile's tokens. Non-2xx upstream answers are returned as data."),
		mw.WithUpstream(),
		mw.WithOperationID("runDocsExample"))

	// --- Link Factory ---
	mw.Get(api, "/api/link-factory/presets", h.LinkFactory.ListPresets,
		mw.WithTags("Link Factory"),
		mw.WithSummary("List presets"),
		mw.WithOperationID("listPresets"))
	mw.Post(api, "/api/link-factory/generate", h.LinkFactory.GenerateLinks,
		mw.WithTags("Link Factory"),
		mw.WithSummary("Generate links"),
		mw.WithDescription("Expands a preset over its variable values. The body maps variable names to replacement values."),
		mw.WithOperationID("generateLinks"))

	// --- Scrapers ---
	mw.Post(api, "/api/scrapers/scrape", h.Scraper.Scrape,
		mw.WithTags("Scrapers"),
		mw.WithSummary("Bulk scrape"),
		mw.WithDescription("Fetches the URLs one after another and writes the results to an Excel workbook."),
		mw.WithUpstream(),
		mw.WithOperationID("bulkScrape"))
	mw.Get(api, "/api/scrapers/download", h.Scraper.Download,
		mw.WithTags("Scrapers"),
		mw.WithSummary("Download workbook"),
		mw.WithOperationID("downloadWorkbook"),
		func(op *huma.Operation) {
			op.Responses = map[string]*huma.Response{
				"200": {
					Description: "Excel workbook",
					Content: map[string]*huma.MediaType{
						"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {
							Schema: &huma.Schema{Type: "string", Format: "binary"},
						},
					},
				},
			}
		})
}
