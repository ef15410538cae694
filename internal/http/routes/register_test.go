package routes

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
)

func operation(item *huma.PathItem, method string) *huma.Operation {
	switch method {
	case http.MethodGet:
		return item.Get
	case http.MethodPost:
		return item.Post
	case http.MethodPatch:
		return item.Patch
	case http.MethodDelete:
		return item.Delete
	}
	return nil
}

func TestRegister_OpenAPIPaths(t *testing.T) {
	_, api := humatest.New(t, NewHumaConfig("http://localhost:8000"))
	Register(api, StubHandlers())

	tests := []struct {
		path       string
		method     string
		operation  string
		wantStatus string
	}{
		{"/api/health", "GET", "healthCheck", "200"},
		{"/api/profiles", "GET", "listProfiles", "200"},
		{"/api/profiles", "POST", "createProfile", "201"},
		{"/api/profiles/{profile_id}", "GET", "getProfile", "200"},
		{"/api/profiles/{profile_id}", "PATCH", "updateProfile", "200"},
		{"/api/profiles/{profile_id}", "DELETE", "deleteProfile", "204"},
		{"/api/projects", "GET", "listProjects", "200"},
		{"/api/projects", "POST", "createProject", "201"},
		{"/api/projects/{project_id}", "DELETE", "deleteProject", "204"},
		{"/api/dashboard/usage", "GET", "getUsage", "200"},
		{"/api/docs/catalog", "GET", "getDocsCatalog", "200"},
		{"/api/docs/run-example/{example_id}", "POST", "runDocsExample", "200"},
		{"/api/link-factory/presets", "GET", "listPresets", "200"},
		{"/api/link-factory/generate", "POST", "generateLinks", "200"},
		{"/api/scrapers/scrape", "POST", "bulkScrape", "200"},
		{"/api/scrapers/download", "GET", "downloadWorkbook", "200"},
	}

	paths := api.OpenAPI().Paths
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			item, ok := paths[tt.path]
			if !ok {
				t.Fatalf("path %s not registered", tt.path)
			}
			op := operation(item, tt.method)
			if op == nil {
				t.Fatalf("no %s on %s", tt.method, tt.path)
			}

			if op.OperationID != tt.operation {
				t.Errorf("OperationID = %q, want %q", op.OperationID, tt.operation)
			}
			if _, ok := op.Responses[tt.wantStatus]; !ok {
				t.Errorf("responses do not include %s", tt.wantStatus)
			}
		})
	}
}

func TestRegister_HealthChecksHidden(t *testing.T) {
	_, api := humatest.New(t, NewHumaConfig(""))
	Register(api, StubHandlers())

	for _, p := range []string{"/healthz", "/readyz"} {
		if item, ok := api.OpenAPI().Paths[p]; ok && item.Get != nil && !item.Get.Hidden {
			t.Errorf("%s should be hidden from OpenAPI", p)
		}
	}
}

func TestNewHumaConfig(t *testing.T) {
	cfg := NewHumaConfig("http://localhost:8000")

	if cfg.OpenAPIPath != "/api/openapi" {
		t.Errorf("OpenAPIPath = %q, want %q", cfg.OpenAPIPath, "/api/openapi")
	}
	if cfg.DocsPath != "/api/reference" {
		t.Errorf("DocsPath = %q, want %q", cfg.DocsPath, "/api/reference")
	}
	if len(cfg.Servers) != 1 || cfg.Servers[0].URL != "http://localhost:8000" {
		t.Errorf("Servers = %+v", cfg.Servers)
	}
	if cfg.CreateHooks != nil {
		t.Error("CreateHooks should be nil so responses carry no $schema")
	}
	if len(NewHumaConfig("").Servers) != 0 {
		t.Error("empty base URL should not add a server")
	}
}
