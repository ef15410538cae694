package handlers

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/samber/lo"

	"github.com/jmylchreest/crawldesk-api/internal/linkfactory"
)

// LinkFactoryHandler handles preset listing and link generation.
type LinkFactoryHandler struct {
	registry *linkfactory.Registry
}

// NewLinkFactoryHandler creates a new link factory handler.
func NewLinkFactoryHandler(registry *linkfactory.Registry) *LinkFactoryHandler {
	if registry == nil {
		registry = linkfactory.Default()
	}
	return &LinkFactoryHandler{registry: registry}
}

// PresetSummary is a preset without its pattern and variables.
type PresetSummary struct {
	ID                string `json:"id"`
	Label             string `json:"label"`
	Description       string `json:"description"`
	ScraperKey        string `json:"scraper_key"`
	RecommendedFormat string `json:"recommended_format"`
	Notes             string `json:"notes,omitempty"`
}

// ListPresetsOutput represents list presets response.
type ListPresetsOutput struct {
	Body []PresetSummary
}

// ListPresets returns the registered presets.
func (h *LinkFactoryHandler) ListPresets(ctx context.Context, input *struct{}) (*ListPresetsOutput, error) {
	presets := lo.Map(h.registry.List(), func(p linkfactory.Preset, _ int) PresetSummary {
		return PresetSummary{
			ID:                p.ID,
			Label:             p.Label,
			Description:       p.Description,
			ScraperKey:        p.ScraperKey,
			RecommendedFormat: p.RecommendedFormat,
			Notes:             p.Notes,
		}
	})
	return &ListPresetsOutput{Body: presets}, nil
}

// OverridesBody maps a variable name to the values that replace its
// defaults. Variables the preset does not declare expand in the order they
// appear in the body.
type OverridesBody struct {
	linkfactory.Overrides
}

// Schema implements huma.SchemaProvider.
func (*OverridesBody) Schema(huma.Registry) *huma.Schema {
	values := &huma.Schema{
		Type:  huma.TypeArray,
		Items: &huma.Schema{Type: huma.TypeString},
	}
	values.PrecomputeMessages()
	return &huma.Schema{
		Type:                 huma.TypeObject,
		Description:          "Variable name to the values that replace its defaults",
		AdditionalProperties: values,
	}
}

// GenerateLinksInput represents link generation request.
type GenerateLinksInput struct {
	PresetID     string         `query:"preset_id" required:"true" doc:"Preset to expand"`
	ExportFormat string         `query:"export_format" doc:"xlsx, csv, md, txt or json; omit for no export"`
	PreviewLimit int            `query:"preview_limit" default:"25" minimum:"1" maximum:"200" doc:"Number of links in the preview"`
	Body         *OverridesBody `required:"false"`
}

// GeneratedPreset identifies the preset a batch was generated from.
type GeneratedPreset struct {
	ID                string `json:"id"`
	Label             string `json:"label"`
	ScraperKey        string `json:"scraper_key"`
	RecommendedFormat string `json:"recommended_format"`
	Notes             string `json:"notes,omitempty"`
}

// GenerateLinksOutput represents link generation response.
type GenerateLinksOutput struct {
	Body struct {
		Preset  GeneratedPreset            `json:"preset"`
		Total   int                        `json:"total" doc:"Number of generated links"`
		Preview []string                   `json:"preview" doc:"First preview_limit links"`
		Export  *linkfactory.EncodedExport `json:"export,omitempty" doc:"Present when export_format is set"`
	}
}

// GenerateLinks expands a preset and optionally encodes the full batch.
func (h *LinkFactoryHandler) GenerateLinks(ctx context.Context, input *GenerateLinksInput) (*GenerateLinksOutput, error) {
	var overrides *linkfactory.Overrides
	if input.Body != nil {
		overrides = &input.Body.Overrides
	}

	result, err := h.registry.Generate(input.PresetID, overrides)
	if err != nil {
		return nil, toHumaError(err)
	}

	limit := input.PreviewLimit
	if limit <= 0 {
		limit = 25
	}

	out := &GenerateLinksOutput{}
	out.Body.Preset = GeneratedPreset{
		ID:                result.Preset.ID,
		Label:             result.Preset.Label,
		ScraperKey:        result.Preset.ScraperKey,
		RecommendedFormat: result.Preset.RecommendedFormat,
		Notes:             result.Preset.Notes,
	}
	out.Body.Total = len(result.Links)
	out.Body.Preview = result.Links[:min(limit, len(result.Links))]

	if format := strings.TrimSpace(input.ExportFormat); format != "" {
		export, err := linkfactory.EncodeBase64(result.Links, format)
		if err != nil {
			return nil, toHumaError(err)
		}
		out.Body.Export = export
	}
	return out, nil
}
