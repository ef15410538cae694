package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmylchreest/crawldesk-api/internal/apperr"
	"github.com/jmylchreest/crawldesk-api/internal/crypto"
	"github.com/jmylchreest/crawldesk-api/internal/models"
	"github.com/jmylchreest/crawldesk-api/internal/repository"
)

// ProfileService manages Crawlbase credential profiles. Tokens and metadata
// are sealed before they reach the repository.
type ProfileService struct {
	repos  *repository.Repositories
	cipher *crypto.Cipher
	logger *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(repos *repository.Repositories, cipher *crypto.Cipher, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		repos:  repos,
		cipher: cipher,
		logger: logger,
	}
}

// ProfileInput is the data needed to create a profile.
type ProfileInput struct {
	Name           string         `json:"name" yaml:"name"`
	Description    string         `json:"description,omitempty" yaml:"description"`
	IsActive       *bool          `json:"is_active,omitempty" yaml:"is_active"`
	DefaultProduct string         `json:"default_product,omitempty" yaml:"default_product"`
	Tags           []string       `json:"tags,omitempty" yaml:"tags"`
	TokenNormal    string         `json:"token_normal" yaml:"token_normal"`
	TokenJS        string         `json:"token_js,omitempty" yaml:"token_js"`
	TokenProxy     string         `json:"token_proxy,omitempty" yaml:"token_proxy"`
	TokenStorage   string         `json:"token_storage,omitempty" yaml:"token_storage"`
	Metadata       map[string]any `json:"metadata,omitempty" yaml:"metadata"`
}

// ProfileUpdate is a partial update; nil fields are left unchanged. An
// empty optional token clears it.
type ProfileUpdate struct {
	Name           *string
	Description    *string
	IsActive       *bool
	DefaultProduct *string
	Tags           *[]string
	TokenNormal    *string
	TokenJS        *string
	TokenProxy     *string
	TokenStorage   *string
	Metadata       *map[string]any
}

// Create validates and stores a new profile. The result includes tokens.
func (s *ProfileService) Create(ctx context.Context, in ProfileInput) (*models.Profile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("the profile name is required")
	}
	tokens := models.ProfileTokens{
		Normal:     strings.TrimSpace(in.TokenNormal),
		JavaScript: strings.TrimSpace(in.TokenJS),
		Proxy:      strings.TrimSpace(in.TokenProxy),
		Storage:    strings.TrimSpace(in.TokenStorage),
	}
	if tokens.Normal == "" {
		return nil, apperr.Validation("the normal token is required")
	}

	rec := &models.ProfileRecord{
		Name:           name,
		Description:    in.Description,
		IsActive:       in.IsActive == nil || *in.IsActive,
		DefaultProduct: orDefault(in.DefaultProduct, models.DefaultProduct),
		Tags:           in.Tags,
	}
	if err := s.sealTokens(rec, tokens); err != nil {
		return nil, err
	}
	if err := s.sealMetadata(rec, in.Metadata); err != nil {
		return nil, err
	}

	if err := s.repos.Profile.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	s.logger.Info("profile created", "profile_id", rec.ID, "name", rec.Name)
	return s.toModel(rec, true)
}

// Get returns a profile, with tokens only when includeTokens is set.
func (s *ProfileService) Get(ctx context.Context, id string, includeTokens bool) (*models.Profile, error) {
	rec, err := s.record(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toModel(rec, includeTokens)
}

// List returns all profiles ordered by creation.
func (s *ProfileService) List(ctx context.Context, includeTokens bool) ([]*models.Profile, error) {
	recs, err := s.repos.Profile.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	out := make([]*models.Profile, 0, len(recs))
	for _, rec := range recs {
		p, err := s.toModel(rec, includeTokens)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Update applies a partial update. The result includes tokens.
func (s *ProfileService) Update(ctx context.Context, id string, upd ProfileUpdate) (*models.Profile, error) {
	rec, err := s.record(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperr.Validation("the profile name cannot be empty")
		}
		rec.Name = name
	}
	if upd.Description != nil {
		rec.Description = *upd.Description
	}
	if upd.IsActive != nil {
		rec.IsActive = *upd.IsActive
	}
	if upd.DefaultProduct != nil {
		rec.DefaultProduct = orDefault(strings.TrimSpace(*upd.DefaultProduct), models.DefaultProduct)
	}
	if upd.Tags != nil {
		rec.Tags = *upd.Tags
	}

	if upd.TokenNormal != nil || upd.TokenJS != nil || upd.TokenProxy != nil || upd.TokenStorage != nil {
		tokens, err := s.openTokens(rec)
		if err != nil {
			return nil, err
		}
		if upd.TokenNormal != nil {
			tokens.Normal = strings.TrimSpace(*upd.TokenNormal)
			if tokens.Normal == "" {
				return nil, apperr.Validation("the normal token cannot be empty")
			}
		}
		applyToken(&tokens.JavaScript, upd.TokenJS)
		applyToken(&tokens.Proxy, upd.TokenProxy)
		applyToken(&tokens.Storage, upd.TokenStorage)
		if err := s.sealTokens(rec, tokens); err != nil {
			return nil, err
		}
	}
	if upd.Metadata != nil {
		if err := s.sealMetadata(rec, *upd.Metadata); err != nil {
			return nil, err
		}
	}

	if err := s.repos.Profile.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	s.logger.Info("profile updated", "profile_id", rec.ID)
	return s.toModel(rec, true)
}

// Delete removes a profile and, through the foreign key, its projects.
func (s *ProfileService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repos.Profile.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if !deleted {
		return apperr.NotFound("profile %q not found", id)
	}
	s.logger.Info("profile deleted", "profile_id", id)
	return nil
}

// WithTokens returns a profile with its decrypted tokens set.
func (s *ProfileService) WithTokens(ctx context.Context, id string) (*models.Profile, error) {
	return s.Get(ctx, id, true)
}

func (s *ProfileService) record(ctx context.Context, id string) (*models.ProfileRecord, error) {
	rec, err := s.repos.Profile.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if rec == nil {
		return nil, apperr.NotFound("profile %q not found", id)
	}
	return rec, nil
}

func (s *ProfileService) toModel(rec *models.ProfileRecord, includeTokens bool) (*models.Profile, error) {
	p := &models.Profile{
		ID:             rec.ID,
		Name:           rec.Name,
		Description:    rec.Description,
		IsActive:       rec.IsActive,
		DefaultProduct: rec.DefaultProduct,
		Tags:           rec.Tags,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if rec.MetadataEnc != "" {
		if err := s.cipher.OpenJSON(rec.MetadataEnc, &p.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decrypt profile metadata: %w", err)
		}
	}
	if includeTokens {
		tokens, err := s.openTokens(rec)
		if err != nil {
			return nil, err
		}
		p.Tokens = &tokens
	}
	return p, nil
}

func (s *ProfileService) openTokens(rec *models.ProfileRecord) (models.ProfileTokens, error) {
	var t models.ProfileTokens
	fields := []struct {
		sealed string
		dst    *string
	}{
		{rec.TokenNormalEnc, &t.Normal},
		{rec.TokenJavaScriptEnc, &t.JavaScript},
		{rec.TokenProxyEnc, &t.Proxy},
		{rec.TokenStorageEnc, &t.Storage},
	}
	for _, f := range fields {
		v, err := s.cipher.Open(f.sealed)
		if err != nil {
			return models.ProfileTokens{}, fmt.Errorf("failed to decrypt profile token: %w", err)
		}
		*f.dst = v
	}
	return t, nil
}

func (s *ProfileService) sealTokens(rec *models.ProfileRecord, t models.ProfileTokens) error {
	fields := []struct {
		plain string
		dst   *string
	}{
		{t.Normal, &rec.TokenNormalEnc},
		{t.JavaScript, &rec.TokenJavaScriptEnc},
		{t.Proxy, &rec.TokenProxyEnc},
		{t.Storage, &rec.TokenStorageEnc},
	}
	for _, f := range fields {
		v, err := s.cipher.Seal(f.plain)
		if err != nil {
			return fmt.Errorf("failed to encrypt profile token: %w", err)
		}
		*f.dst = v
	}
	return nil
}

func (s *ProfileService) sealMetadata(rec *models.ProfileRecord, metadata map[string]any) error {
	if len(metadata) == 0 {
		rec.MetadataEnc = ""
		return nil
	}
	sealed, err := s.cipher.SealJSON(metadata)
	if err != nil {
		return fmt.Errorf("failed to encrypt profile metadata: %w", err)
	}
	rec.MetadataEnc = sealed
	return nil
}

func applyToken(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
