// Package routes provides shared route registration for the Crawldesk API.
// The server and the OpenAPI generator both register through Register,
// so the generated document always matches the served routes.
package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/jmylchreest/crawldesk-api/internal/version"
)

// NewHumaConfig creates the shared Huma configuration for the API.
func NewHumaConfig(baseURL string) huma.Config {
	cfg := huma.DefaultConfig("Crawldesk API", version.Get().Short())
	cfg.Info.Description = "Local backend of the Crawldesk desktop app: Crawlbase account profiles, projects, usage dashboards, link generation and bulk scraping."

	// Disable $schema field in responses - the desktop client rejects unknown fields
	cfg.CreateHooks = nil

	cfg.OpenAPIPath = "/api/openapi"
	cfg.DocsPath = "/api/reference"
	cfg.SchemasPath = "/api/schemas"

	if baseURL != "" {
		cfg.Servers = []*huma.Server{
			{URL: baseURL, Description: "Local API Server"},
		}
	}

	cfg.Tags = []*huma.Tag{
		{Name: "Health", Description: "Server liveness", Extensions: map[string]any{"x-displayName": "Health"}},
		{Name: "Profiles", Description: "Crawlbase account profiles and their tokens", Extensions: map[string]any{"x-displayName": "Profiles"}},
		{Name: "Projects", Description: "Scraping projects owned by a profile", Extensions: map[string]any{"x-displayName": "Projects"}},
		{Name: "Dashboard", Description: "Normalized Crawlbase usage snapshots", Extensions: map[string]any{"x-displayName": "Dashboard"}},
		{Name: "Docs", Description: "Crawlbase documentation catalog and runnable examples", Extensions: map[string]any{"x-displayName": "Docs"}},
		{Name: "Link Factory", Description: "URL presets, link generation and export", Extensions: map[string]any{"x-displayName": "Link Factory"}},
		{Name: "Scrapers", Description: "Sequential bulk scraping into Excel workbooks", Extensions: map[string]any{"x-displayName": "Scrapers"}},
	}

	return cfg
}
