package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/crawldesk-api/internal/linkfactory"
)

func testRegistry() *linkfactory.Registry {
	return linkfactory.NewRegistry(linkfactory.Preset{
		ID:         "shop",
		Label:      "Shop",
		ScraperKey: "shop-serp",
		Pattern:    "https://shop.example/{q}/{page}",
		Variables: []linkfactory.Variable{
			{Name: "q", Defaults: []string{"a", "b"}},
			{Name: "page", Defaults: []string{"1", "2", "3"}},
		},
		Notes: "test preset",
	})
}

func overridesBody(t *testing.T, data string) *OverridesBody {
	t.Helper()
	var body OverridesBody
	if err := json.Unmarshal([]byte(data), &body); err != nil {
		t.Fatalf("decode overrides: %v", err)
	}
	return &body
}

// ========================================
// ListPresets Tests
// ========================================

func TestLinkFactoryHandler_ListPresets(t *testing.T) {
	handler := NewLinkFactoryHandler(testRegistry())

	output, err := handler.ListPresets(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []PresetSummary{{
		ID:                "shop",
		Label:             "Shop",
		ScraperKey:        "shop-serp",
		RecommendedFormat: linkfactory.FormatXLSX,
		Notes:             "test preset",
	}}
	if diff := cmp.Diff(want, output.Body); diff != "" {
		t.Errorf("presets mismatch (-want +got):\n%s", diff)
	}
}

func TestNewLinkFactoryHandler_DefaultRegistry(t *testing.T) {
	handler := NewLinkFactoryHandler(nil)

	output, err := handler.ListPresets(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Body) != len(linkfactory.Default().List()) {
		t.Errorf("got %d presets, want %d", len(output.Body), len(linkfactory.Default().List()))
	}
}

// ========================================
// GenerateLinks Tests
// ========================================

func TestLinkFactoryHandler_GenerateLinks_Preview(t *testing.T) {
	handler := NewLinkFactoryHandler(testRegistry())

	output, err := handler.GenerateLinks(context.Background(), &GenerateLinksInput{PresetID: "shop", PreviewLimit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Body.Total != 6 {
		t.Errorf("Total = %d, want 6", output.Body.Total)
	}
	want := []string{"https://shop.example/a/1", "https://shop.example/a/2"}
	if diff := cmp.Diff(want, output.Body.Preview); diff != "" {
		t.Errorf("preview mismatch (-want +got):\n%s", diff)
	}
	if output.Body.Export != nil {
		t.Error("Export should be nil without export_format")
	}
	if output.Body.Preset.ScraperKey != "shop-serp" {
		t.Errorf("ScraperKey = %q, want %q", output.Body.Preset.ScraperKey, "shop-serp")
	}
}

func TestLinkFactoryHandler_GenerateLinks_OverridesAndExport(t *testing.T) {
	handler := NewLinkFactoryHandler(testRegistry())

	input := &GenerateLinksInput{
		PresetID:     "shop",
		ExportFormat: "txt",
		PreviewLimit: 25,
		Body:         overridesBody(t, `{"q": ["z"], "page": ["9"]}`),
	}
	output, err := handler.GenerateLinks(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"https://shop.example/z/9"}, output.Body.Preview); diff != "" {
		t.Errorf("preview mismatch (-want +got):\n%s", diff)
	}
	if output.Body.Export == nil {
		t.Fatal("expected export")
	}
	if output.Body.Export.Filename != "links.txt" {
		t.Errorf("Filename = %q, want %q", output.Body.Export.Filename, "links.txt")
	}
	content, err := base64.StdEncoding.DecodeString(output.Body.Export.ContentBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	if string(content) != "https://shop.example/z/9" {
		t.Errorf("content = %q", content)
	}
}

func TestLinkFactoryHandler_GenerateLinks_Errors(t *testing.T) {
	tests := []struct {
		name       string
		input      *GenerateLinksInput
		wantStatus int
	}{
		{
			name:       "unknown preset",
			input:      &GenerateLinksInput{PresetID: "nope", PreviewLimit: 25},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unsupported format",
			input:      &GenerateLinksInput{PresetID: "shop", ExportFormat: "pdf", PreviewLimit: 25},
			wantStatus: http.StatusBadRequest,
		},
	}

	handler := NewLinkFactoryHandler(testRegistry())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.GenerateLinks(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := statusOf(t, err); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestOverridesBody_KeepsSuppliedOrder(t *testing.T) {
	body := overridesBody(t, `{"zone": ["eu"], "page": ["1"], "alpha": ["x"]}`)
	if diff := cmp.Diff([]string{"zone", "page", "alpha"}, body.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestLinkFactoryHandler_GenerateLinks_HTTP(t *testing.T) {
	_, api := humatest.New(t)
	huma.Register(api, huma.Operation{
		OperationID: "generate-links",
		Method:      http.MethodPost,
		Path:        "/generate",
	}, NewLinkFactoryHandler(testRegistry()).GenerateLinks)

	t.Run("overrides", func(t *testing.T) {
		resp := api.Post("/generate?preset_id=shop", map[string]any{"q": []string{"z"}, "page": []string{"9"}})
		if resp.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", resp.Code, resp.Body.String())
		}
		var out struct {
			Total   int      `json:"total"`
			Preview []string `json:"preview"`
		}
		if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if diff := cmp.Diff([]string{"https://shop.example/z/9"}, out.Preview); diff != "" {
			t.Errorf("preview mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no body uses defaults", func(t *testing.T) {
		resp := api.Post("/generate?preset_id=shop")
		if resp.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", resp.Code, resp.Body.String())
		}
		var out struct {
			Total int `json:"total"`
		}
		if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if out.Total != 6 {
			t.Errorf("total = %d, want 6", out.Total)
		}
	})

	t.Run("non-list value rejected", func(t *testing.T) {
		resp := api.Post("/generate?preset_id=shop", map[string]any{"q": 5})
		if resp.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", resp.Code)
		}
	})
}
