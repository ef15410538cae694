package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/crawldesk-api/internal/models"
)

const projectColumns = `id, profile_id, name, description, scraper_key, status,
	settings, tags, output_formats, link_blueprint, created_at, updated_at, last_run_at`

// SQLiteProjectRepository implements ProjectRepository for SQLite/libsql.
type SQLiteProjectRepository struct {
	db *sql.DB
}

// NewSQLiteProjectRepository creates a new SQLite project repository.
func NewSQLiteProjectRepository(db *sql.DB) *SQLiteProjectRepository {
	return &SQLiteProjectRepository{db: db}
}

// Create inserts a project, assigning an ID and timestamps.
func (r *SQLiteProjectRepository) Create(ctx context.Context, p *models.Project) error {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = ulid.Make().String()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	cols, err := encodeProjectJSON(p)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.ProfileID,
		p.Name,
		nullString(p.Description),
		nullString(p.ScraperKey),
		string(p.Status),
		cols.settings,
		cols.tags,
		cols.outputFormats,
		cols.linkBlueprint,
		formatTime(now),
		formatTime(now),
		nullTime(p.LastRunAt),
	)
	return err
}

// GetByID retrieves a project by ID.
func (r *SQLiteProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)

	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// List returns projects oldest first, optionally limited to one profile.
func (r *SQLiteProjectRepository) List(ctx context.Context, profileID string) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if profileID != "" {
		query += ` WHERE profile_id = ?`
		args = append(args, profileID)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update writes every mutable column and bumps updated_at.
func (r *SQLiteProjectRepository) Update(ctx context.Context, p *models.Project) error {
	p.UpdatedAt = time.Now().UTC()

	cols, err := encodeProjectJSON(p)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE projects SET
			profile_id = ?,
			name = ?,
			description = ?,
			scraper_key = ?,
			status = ?,
			settings = ?,
			tags = ?,
			output_formats = ?,
			link_blueprint = ?,
			updated_at = ?,
			last_run_at = ?
		WHERE id = ?
	`,
		p.ProfileID,
		p.Name,
		nullString(p.Description),
		nullString(p.ScraperKey),
		string(p.Status),
		cols.settings,
		cols.tags,
		cols.outputFormats,
		cols.linkBlueprint,
		formatTime(p.UpdatedAt),
		nullTime(p.LastRunAt),
		p.ID,
	)
	return err
}

// MarkRun records the time of the latest scrape run of a project.
func (r *SQLiteProjectRepository) MarkRun(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE projects SET last_run_at = ?, updated_at = ? WHERE id = ?`,
		formatTime(at), formatTime(time.Now()), id,
	)
	return err
}

// Delete removes a project and reports whether a row was deleted.
func (r *SQLiteProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

type projectJSON struct {
	settings, tags, outputFormats, linkBlueprint string
}

func encodeProjectJSON(p *models.Project) (projectJSON, error) {
	var out projectJSON
	for _, f := range []struct {
		dst *string
		v   any
	}{
		{&out.settings, nonNilMap(p.Settings)},
		{&out.tags, nonNilStrings(p.Tags)},
		{&out.outputFormats, nonNilStrings(p.OutputFormats)},
		{&out.linkBlueprint, nonNilMap(p.LinkBlueprint)},
	} {
		data, err := json.Marshal(f.v)
		if err != nil {
			return out, err
		}
		*f.dst = string(data)
	}
	return out, nil
}

func scanProject(s rowScanner) (*models.Project, error) {
	var p models.Project
	var description, scraperKey, lastRunAt sql.NullString
	var status, settings, tags, outputFormats, linkBlueprint, createdAt, updatedAt string

	if err := s.Scan(
		&p.ID,
		&p.ProfileID,
		&p.Name,
		&description,
		&scraperKey,
		&status,
		&settings,
		&tags,
		&outputFormats,
		&linkBlueprint,
		&createdAt,
		&updatedAt,
		&lastRunAt,
	); err != nil {
		return nil, err
	}

	p.Description = description.String
	p.ScraperKey = scraperKey.String
	p.Status = models.ProjectStatus(status)
	p.Settings = decodeMap(settings)
	p.Tags = decodeStrings(tags)
	p.OutputFormats = decodeStrings(outputFormats)
	p.LinkBlueprint = decodeMap(linkBlueprint)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	if lastRunAt.Valid {
		t := parseTime(lastRunAt.String)
		p.LastRunAt = &t
	}
	return &p, nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func nonNilMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func decodeMap(raw string) map[string]any {
	out := map[string]any{}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &out)
	}
	return out
}
