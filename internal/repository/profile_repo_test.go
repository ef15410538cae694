package repository

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/crawldesk-api/internal/models"
)

// ========================================
// ProfileRepository Tests
// ========================================

func TestProfileRepository_Create(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	p := &models.ProfileRecord{
		Name:               "Main account",
		Description:        "Production tokens",
		IsActive:           true,
		DefaultProduct:     "crawling-api",
		Tags:               []string{"prod", "ecommerce"},
		TokenNormalEnc:     "enc-normal",
		TokenJavaScriptEnc: "enc-js",
		MetadataEnc:        "enc-meta",
	}
	if err := repos.Profile.Create(ctx, p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	if p.ID == "" {
		t.Error("expected ID to be generated")
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	fetched, err := repos.Profile.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("failed to fetch profile: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected profile, got nil")
	}

	if diff := cmp.Diff(p, fetched); diff != "" {
		t.Errorf("fetched profile mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileRepository_GetByID_NotFound(t *testing.T) {
	repos := setupTestRepos(t)

	p, err := repos.Profile.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil profile, got %+v", p)
	}
}

func TestProfileRepository_List(t *testing.T) {
	repos := setupTestRepos(t)

	first := createTestProfile(t, repos, "first")
	second := createTestProfile(t, repos, "second")

	profiles, err := repos.Profile.List(context.Background())
	if err != nil {
		t.Fatalf("failed to list profiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if profiles[0].ID != first.ID || profiles[1].ID != second.ID {
		t.Errorf("profiles not in creation order: %s, %s", profiles[0].Name, profiles[1].Name)
	}
	if profiles[0].Tags == nil {
		t.Error("Tags should decode to an empty slice, not nil")
	}
}

func TestProfileRepository_Update(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	p := createTestProfile(t, repos, "before")
	createdAt := p.CreatedAt

	p.Name = "after"
	p.IsActive = false
	p.Tags = []string{"paused"}
	p.TokenProxyEnc = "enc-proxy"
	if err := repos.Profile.Update(ctx, p); err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}

	fetched, _ := repos.Profile.GetByID(ctx, p.ID)
	if fetched.Name != "after" {
		t.Errorf("Name = %q, want %q", fetched.Name, "after")
	}
	if fetched.IsActive {
		t.Error("IsActive should be false")
	}
	if fetched.TokenProxyEnc != "enc-proxy" {
		t.Errorf("TokenProxyEnc = %q, want %q", fetched.TokenProxyEnc, "enc-proxy")
	}
	if !fetched.CreatedAt.Equal(createdAt) {
		t.Error("CreatedAt should not change on update")
	}
	if !fetched.UpdatedAt.After(createdAt) && !fetched.UpdatedAt.Equal(createdAt) {
		t.Error("UpdatedAt should not go backwards")
	}
}

func TestProfileRepository_Delete_CascadesProjects(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	p := createTestProfile(t, repos, "to delete")
	project := &models.Project{ProfileID: p.ID, Name: "child", Status: models.ProjectStatusDraft}
	if err := repos.Project.Create(ctx, project); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	deleted, err := repos.Profile.Delete(ctx, p.ID)
	if err != nil {
		t.Fatalf("failed to delete profile: %v", err)
	}
	if !deleted {
		t.Error("Delete() = false, want true")
	}

	if got, _ := repos.Project.GetByID(ctx, project.ID); got != nil {
		t.Error("project should be deleted with its profile")
	}

	deleted, err = repos.Profile.Delete(ctx, p.ID)
	if err != nil || deleted {
		t.Errorf("second Delete() = %v, %v; want false, nil", deleted, err)
	}
}
