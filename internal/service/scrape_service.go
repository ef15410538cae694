package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jmylchreest/crawldesk-api/internal/apperr"
	"github.com/jmylchreest/crawldesk-api/internal/scraper"
)

// WorkbookStore uploads finished workbooks. StorageService implements it.
type WorkbookStore interface {
	IsEnabled() bool
	UploadWorkbook(ctx context.Context, file string) (string, error)
}

// ScrapeRequest is a bulk scrape of urls with a profile's tokens.
type ScrapeRequest struct {
	ProfileID string
	ProjectID string
	URLs      []string
	ExcelPath string
	SheetName string
}

// ScrapeService runs bulk scrapes and stores their workbooks.
type ScrapeService struct {
	profiles *ProfileService
	projects *ProjectService
	clients  ClientFactory
	scraper  *scraper.Scraper
	store    WorkbookStore
	logger   *slog.Logger

	running atomic.Int32
}

// NewScrapeService creates a new scrape service.
func NewScrapeService(profiles *ProfileService, projects *ProjectService, clients ClientFactory, s *scraper.Scraper, store WorkbookStore, logger *slog.Logger) *ScrapeService {
	return &ScrapeService{
		profiles: profiles,
		projects: projects,
		clients:  clients,
		scraper:  s,
		store:    store,
		logger:   logger,
	}
}

// Busy reports whether a scrape is in progress.
func (s *ScrapeService) Busy() bool {
	return s.running.Load() > 0
}

// Scrape fetches every valid URL in order and writes one workbook. Per-URL
// failures land in the report; a missing profile, a client that cannot be
// built or a workbook that cannot be saved fail the whole batch.
func (s *ScrapeService) Scrape(ctx context.Context, req ScrapeRequest) (*scraper.Report, error) {
	s.running.Add(1)
	defer s.running.Add(-1)

	if _, _, err := scraper.ValidateURLs(req.URLs); err != nil {
		return nil, err
	}

	profile, err := s.profiles.WithTokens(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}
	if req.ProjectID != "" {
		project, err := s.projects.Get(ctx, req.ProjectID)
		if err != nil {
			return nil, err
		}
		if project.ProfileID != profile.ID {
			return nil, apperr.Validation("project %q does not belong to profile %q", project.ID, profile.ID)
		}
	}

	client, err := s.clients(*profile.Tokens)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	report, err := s.scraper.Run(ctx, client, req.URLs, scraper.Options{
		ExcelPath: req.ExcelPath,
		SheetName: req.SheetName,
	})
	if err != nil {
		return nil, err
	}

	if s.store != nil && s.store.IsEnabled() {
		key, err := s.store.UploadWorkbook(ctx, report.ExcelPath)
		if err != nil {
			// The workbook is on disk; a failed mirror does not fail the scrape.
			s.logger.Warn("failed to upload scrape workbook", "path", report.ExcelPath, "error", err)
		} else {
			report.StorageKey = key
		}
	}

	if req.ProjectID != "" {
		if err := s.projects.MarkRun(ctx, req.ProjectID, started); err != nil {
			s.logger.Warn("failed to record project run", "project_id", req.ProjectID, "error", err)
		}
	}

	s.logger.Info("bulk scrape finished",
		"profile_id", profile.ID,
		"total", report.TotalURLs,
		"successful", report.Successful,
		"failed", report.Failed,
		"duration", time.Since(started),
	)
	return report, nil
}
