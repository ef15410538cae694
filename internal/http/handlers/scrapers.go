package handlers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jmylchreest/crawldesk-api/internal/scraper"
	"github.com/jmylchreest/crawldesk-api/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ScrapeService runs bulk scrapes.
type ScrapeService interface {
	Scrape(ctx context.Context, req service.ScrapeRequest) (*scraper.Report, error)
}

// ScraperHandler handles bulk scrape and workbook download endpoints.
type ScraperHandler struct {
	svc       ScrapeService
	outputDir string
}

// NewScraperHandler creates a new scraper handler. Downloads are served from outputDir.
func NewScraperHandler(svc ScrapeService, outputDir string) *ScraperHandler {
	return &ScraperHandler{svc: svc, outputDir: outputDir}
}

// ScrapeBody is a bulk scrape request.
type ScrapeBody struct {
	ProfileID string   `json:"profile_id" doc:"Profile whose tokens are used"`
	ProjectID string   `json:"project_id,omitempty" doc:"Project to record the run against"`
	URLs      []string `json:"urls" doc:"Pages to scrape, in order"`
	ExcelPath string   `json:"excel_path,omitempty" doc:"Workbook to append to; a new one is created when omitted"`
	SheetName string   `json:"sheet_name,omitempty" doc:"Sheet to write; defaults to a timestamped name"`
}

// ScrapeInput represents bulk scrape request.
type ScrapeInput struct {
	Body ScrapeBody
}

// ScrapeOutput represents bulk scrape response.
type ScrapeOutput struct {
	Body *scraper.Report
}

// Scrape fetches every URL one after another and writes the results to a workbook.
func (h *ScraperHandler) Scrape(ctx context.Context, input *ScrapeInput) (*ScrapeOutput, error) {
	report, err := h.svc.Scrape(ctx, service.ScrapeRequest{
		ProfileID: input.Body.ProfileID,
		ProjectID: input.Body.ProjectID,
		URLs:      input.Body.URLs,
		ExcelPath: input.Body.ExcelPath,
		SheetName: input.Body.SheetName,
	})
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ScrapeOutput{Body: report}, nil
}

// DownloadInput represents workbook download request.
type DownloadInput struct {
	Path string `query:"path" required:"true" doc:"Workbook path as returned in excel_path"`
}

// DownloadOutput is a raw workbook.
type DownloadOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// Download serves a workbook from the output directory.
func (h *ScraperHandler) Download(ctx context.Context, input *DownloadInput) (*DownloadOutput, error) {
	resolved, err := scraper.ResolvePath(h.outputDir, input.Path)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid path")
	}
	if !strings.EqualFold(filepath.Ext(resolved), ".xlsx") {
		return nil, huma.Error400BadRequest("only .xlsx files can be downloaded")
	}

	info, err := os.Stat(resolved)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, huma.Error404NotFound("file not found")
	}
	if err != nil {
		return nil, toHumaError(err)
	}
	if !info.Mode().IsRegular() {
		return nil, huma.Error400BadRequest("path is not a file")
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		return nil, toHumaError(fmt.Errorf("failed to read workbook: %w", err))
	}

	return &DownloadOutput{
		ContentType:        xlsxContentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", filepath.Base(resolved)),
		Body:               content,
	}, nil
}
