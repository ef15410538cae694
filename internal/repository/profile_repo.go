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

const profileColumns = `id, name, description, is_active, default_product, tags,
	token_normal_enc, token_javascript_enc, token_proxy_enc, token_storage_enc, metadata_enc,
	created_at, updated_at`

// SQLiteProfileRepository implements ProfileRepository for SQLite/libsql.
type SQLiteProfileRepository struct {
	db *sql.DB
}

// NewSQLiteProfileRepository creates a new SQLite profile repository.
func NewSQLiteProfileRepository(db *sql.DB) *SQLiteProfileRepository {
	return &SQLiteProfileRepository{db: db}
}

// Create inserts a profile, assigning an ID and timestamps.
func (r *SQLiteProfileRepository) Create(ctx context.Context, p *models.ProfileRecord) error {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = ulid.Make().String()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	tagsJSON, err := json.Marshal(nonNilStrings(p.Tags))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.Name,
		nullString(p.Description),
		boolToInt(p.IsActive),
		p.DefaultProduct,
		string(tagsJSON),
		p.TokenNormalEnc,
		p.TokenJavaScriptEnc,
		p.TokenProxyEnc,
		p.TokenStorageEnc,
		p.MetadataEnc,
		formatTime(now),
		formatTime(now),
	)
	return err
}

// GetByID retrieves a profile by ID.
func (r *SQLiteProfileRepository) GetByID(ctx context.Context, id string) (*models.ProfileRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// List returns all profiles, oldest first.
func (r *SQLiteProfileRepository) List(ctx context.Context) ([]*models.ProfileRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.ProfileRecord
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Update writes every mutable column of the profile and bumps updated_at.
func (r *SQLiteProfileRepository) Update(ctx context.Context, p *models.ProfileRecord) error {
	p.UpdatedAt = time.Now().UTC()

	tagsJSON, err := json.Marshal(nonNilStrings(p.Tags))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE profiles SET
			name = ?,
			description = ?,
			is_active = ?,
			default_product = ?,
			tags = ?,
			token_normal_enc = ?,
			token_javascript_enc = ?,
			token_proxy_enc = ?,
			token_storage_enc = ?,
			metadata_enc = ?,
			updated_at = ?
		WHERE id = ?
	`,
		p.Name,
		nullString(p.Description),
		boolToInt(p.IsActive),
		p.DefaultProduct,
		string(tagsJSON),
		p.TokenNormalEnc,
		p.TokenJavaScriptEnc,
		p.TokenProxyEnc,
		p.TokenStorageEnc,
		p.MetadataEnc,
		formatTime(p.UpdatedAt),
		p.ID,
	)
	return err
}

// Delete removes a profile and, through the foreign key, its projects.
// It reports whether a row was deleted.
func (r *SQLiteProfileRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func scanProfile(s rowScanner) (*models.ProfileRecord, error) {
	var p models.ProfileRecord
	var isActive int
	var description sql.NullString
	var tagsJSON, createdAt, updatedAt string

	if err := s.Scan(
		&p.ID,
		&p.Name,
		&description,
		&isActive,
		&p.DefaultProduct,
		&tagsJSON,
		&p.TokenNormalEnc,
		&p.TokenJavaScriptEnc,
		&p.TokenProxyEnc,
		&p.TokenStorageEnc,
		&p.MetadataEnc,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	p.IsActive = isActive != 0
	p.Description = description.String
	p.Tags = decodeStrings(tagsJSON)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func decodeStrings(raw string) []string {
	out := []string{}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &out)
	}
	return out
}
