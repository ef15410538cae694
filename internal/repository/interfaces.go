// Package repository defines repository interfaces for data access.
// Get methods return (nil, nil) when the row does not exist.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmylchreest/crawldesk-api/internal/models"
)

// ProfileRepository defines methods for profile data access.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.ProfileRecord) error
	GetByID(ctx context.Context, id string) (*models.ProfileRecord, error)
	List(ctx context.Context) ([]*models.ProfileRecord, error)
	Update(ctx context.Context, profile *models.ProfileRecord) error
	Delete(ctx context.Context, id string) (bool, error)
}

// ProjectRepository defines methods for project data access.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id string) (*models.Project, error)
	// List returns all projects, or only those of profileID when it is non-empty.
	List(ctx context.Context, profileID string) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	MarkRun(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) (bool, error)
}

// Repositories holds all repository instances.
type Repositories struct {
	Profile ProfileRepository
	Project ProjectRepository
}

// NewRepositories creates all repository instances.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Profile: NewSQLiteProfileRepository(db),
		Project: NewSQLiteProjectRepository(db),
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
