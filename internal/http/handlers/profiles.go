package handlers

import (
	"context"

	"github.com/jmylchreest/crawldesk-api/internal/models"
	"github.com/jmylchreest/crawldesk-api/internal/service"
)

// ProfileService is the profile store used by ProfileHandler.
type ProfileService interface {
	Create(ctx context.Context, in service.ProfileInput) (*models.Profile, error)
	Get(ctx context.Context, id string, includeTokens bool) (*models.Profile, error)
	List(ctx context.Context, includeTokens bool) ([]*models.Profile, error)
	Update(ctx context.Context, id string, upd service.ProfileUpdate) (*models.Profile, error)
	Delete(ctx context.Context, id string) error
}

// ProfileHandler handles profile endpoints.
type ProfileHandler struct {
	svc ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(svc ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// ListProfilesInput represents list profiles request.
type ListProfilesInput struct {
	IncludeTokens bool `query:"include_tokens" default:"false" doc:"Include decrypted tokens"`
}

// ListProfilesOutput represents list profiles response.
type ListProfilesOutput struct {
	Body []*models.Profile
}

// ListProfiles returns all profiles.
func (h *ProfileHandler) ListProfiles(ctx context.Context, input *ListProfilesInput) (*ListProfilesOutput, error) {
	profiles, err := h.svc.List(ctx, input.IncludeTokens)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ListProfilesOutput{Body: profiles}, nil
}

// CreateProfileInput represents create profile request.
type CreateProfileInput struct {
	Body service.ProfileInput
}

// ProfileOutput is a single profile response.
type ProfileOutput struct {
	Body *models.Profile
}

// CreateProfile creates a profile.
func (h *ProfileHandler) CreateProfile(ctx context.Context, input *CreateProfileInput) (*ProfileOutput, error) {
	p, err := h.svc.Create(ctx, input.Body)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ProfileOutput{Body: p}, nil
}

// GetProfileInput represents get profile request.
type GetProfileInput struct {
	ProfileID     string `path:"profile_id" doc:"Profile ID"`
	IncludeTokens bool   `query:"include_tokens" default:"true" doc:"Include decrypted tokens"`
}

// GetProfile returns one profile.
func (h *ProfileHandler) GetProfile(ctx context.Context, input *GetProfileInput) (*ProfileOutput, error) {
	p, err := h.svc.Get(ctx, input.ProfileID, input.IncludeTokens)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ProfileOutput{Body: p}, nil
}

// UpdateProfileBody lists the fields a PATCH may change. Omitted fields stay
// as they are; an empty optional token clears it.
type UpdateProfileBody struct {
	Name           *string        `json:"name,omitempty"`
	Description    *string        `json:"description,omitempty"`
	IsActive       *bool          `json:"is_active,omitempty"`
	DefaultProduct *string        `json:"default_product,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
	TokenNormal    *string        `json:"token_normal,omitempty"`
	TokenJS        *string        `json:"token_js,omitempty" doc:"Empty string clears the token"`
	TokenProxy     *string        `json:"token_proxy,omitempty" doc:"Empty string clears the token"`
	TokenStorage   *string        `json:"token_storage,omitempty" doc:"Empty string clears the token"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// UpdateProfileInput represents update profile request.
type UpdateProfileInput struct {
	ProfileID string `path:"profile_id" doc:"Profile ID"`
	Body      UpdateProfileBody
}

// UpdateProfile applies a partial update.
func (h *ProfileHandler) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*ProfileOutput, error) {
	b := input.Body
	upd := service.ProfileUpdate{
		Name:           b.Name,
		Description:    b.Description,
		IsActive:       b.IsActive,
		DefaultProduct: b.DefaultProduct,
		TokenNormal:    b.TokenNormal,
		TokenJS:        b.TokenJS,
		TokenProxy:     b.TokenProxy,
		TokenStorage:   b.TokenStorage,
	}
	if b.Tags != nil {
		upd.Tags = &b.Tags
	}
	if b.Metadata != nil {
		upd.Metadata = &b.Metadata
	}

	p, err := h.svc.Update(ctx, input.ProfileID, upd)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ProfileOutput{Body: p}, nil
}

// DeleteProfileInput represents delete profile request.
type DeleteProfileInput struct {
	ProfileID string `path:"profile_id" doc:"Profile ID"`
}

// DeleteProfile removes a profile and its projects.
func (h *ProfileHandler) DeleteProfile(ctx context.Context, input *DeleteProfileInput) (*struct{}, error) {
	if err := h.svc.Delete(ctx, input.ProfileID); err != nil {
		return nil, toHumaError(err)
	}
	return nil, nil
}
