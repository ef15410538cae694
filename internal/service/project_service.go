package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmylchreest/crawldesk-api/internal/apperr"
	"github.com/jmylchreest/crawldesk-api/internal/models"
	"github.com/jmylchreest/crawldesk-api/internal/repository"
)

// ProjectService manages projects attached to profiles.
type ProjectService struct {
	repos  *repository.Repositories
	logger *slog.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(repos *repository.Repositories, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		repos:  repos,
		logger: logger,
	}
}

// ProjectInput is the data needed to create a project.
type ProjectInput struct {
	ProfileID     string
	Name          string
	Description   string
	ScraperKey    string
	Status        models.ProjectStatus
	Settings      map[string]any
	Tags          []string
	OutputFormats []string
	LinkBlueprint map[string]any
}

// ProjectUpdate is a partial update; nil fields are left unchanged.
type ProjectUpdate struct {
	ProfileID     *string
	Name          *string
	Description   *string
	ScraperKey    *string
	Status        *models.ProjectStatus
	Settings      *map[string]any
	Tags          *[]string
	OutputFormats *[]string
	LinkBlueprint *map[string]any
	LastRunAt     *time.Time
}

// Create validates and stores a new project.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("the project name is required")
	}
	if err := s.requireProfile(ctx, in.ProfileID); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.ProjectStatusDraft
	}
	if !status.Valid() {
		return nil, apperr.Validation("unknown project status %q", status)
	}
	formats := in.OutputFormats
	if len(formats) == 0 {
		formats = append([]string(nil), models.DefaultOutputFormats...)
	}

	p := &models.Project{
		ProfileID:     in.ProfileID,
		Name:          name,
		Description:   in.Description,
		ScraperKey:    in.ScraperKey,
		Status:        status,
		Settings:      in.Settings,
		Tags:          in.Tags,
		OutputFormats: formats,
		LinkBlueprint: in.LinkBlueprint,
	}
	if err := s.repos.Project.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	s.logger.Info("project created", "project_id", p.ID, "profile_id", p.ProfileID)
	return p, nil
}

// Get returns a project by ID.
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	p, err := s.repos.Project.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if p == nil {
		return nil, apperr.NotFound("project %q not found", id)
	}
	return p, nil
}

// List returns all projects, or only those of profileID when it is set.
func (s *ProjectService) List(ctx context.Context, profileID string) ([]*models.Project, error) {
	projects, err := s.repos.Project.List(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		projects = []*models.Project{}
	}
	return projects, nil
}

// Update applies a partial update.
func (s *ProjectService) Update(ctx context.Context, id string, upd ProjectUpdate) (*models.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.ProfileID != nil && *upd.ProfileID != p.ProfileID {
		if err := s.requireProfile(ctx, *upd.ProfileID); err != nil {
			return nil, err
		}
		p.ProfileID = *upd.ProfileID
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperr.Validation("the project name cannot be empty")
		}
		p.Name = name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.ScraperKey != nil {
		p.ScraperKey = *upd.ScraperKey
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, apperr.Validation("unknown project status %q", *upd.Status)
		}
		p.Status = *upd.Status
	}
	if upd.Settings != nil {
		p.Settings = *upd.Settings
	}
	if upd.Tags != nil {
		p.Tags = *upd.Tags
	}
	if upd.OutputFormats != nil {
		p.OutputFormats = *upd.OutputFormats
	}
	if upd.LinkBlueprint != nil {
		p.LinkBlueprint = *upd.LinkBlueprint
	}
	if upd.LastRunAt != nil {
		at := upd.LastRunAt.UTC()
		p.LastRunAt = &at
	}

	if err := s.repos.Project.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return p, nil
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repos.Project.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if !deleted {
		return apperr.NotFound("project %q not found", id)
	}
	s.logger.Info("project deleted", "project_id", id)
	return nil
}

// MarkRun records a scrape run against the project.
func (s *ProjectService) MarkRun(ctx context.Context, id string, at time.Time) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repos.Project.MarkRun(ctx, id, at); err != nil {
		return fmt.Errorf("failed to record project run: %w", err)
	}
	return nil
}

func (s *ProjectService) requireProfile(ctx context.Context, profileID string) error {
	if strings.TrimSpace(profileID) == "" {
		return apperr.Validation("the profile_id is required")
	}
	rec, err := s.repos.Profile.GetByID(ctx, profileID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	if rec == nil {
		return apperr.NotFound("profile %q not found", profileID)
	}
	return nil
}
