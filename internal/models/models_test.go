package models

import "testing"

func TestProfileTokens_Fallbacks(t *testing.T) {
	only := ProfileTokens{Normal: "n"}
	if only.JSOrNormal() != "n" || only.ProxyOrNormal() != "n" || only.StorageOrNormal() != "n" {
		t.Errorf("fallbacks should return the normal token, got %q %q %q",
			only.JSOrNormal(), only.ProxyOrNormal(), only.StorageOrNormal())
	}

	full := ProfileTokens{Normal: "n", JavaScript: "js", Proxy: "px", Storage: "st"}
	if full.JSOrNormal() != "js" {
		t.Errorf("JSOrNormal() = %q, want %q", full.JSOrNormal(), "js")
	}
	if full.ProxyOrNormal() != "px" {
		t.Errorf("ProxyOrNormal() = %q, want %q", full.ProxyOrNormal(), "px")
	}
	if full.StorageOrNormal() != "st" {
		t.Errorf("StorageOrNormal() = %q, want %q", full.StorageOrNormal(), "st")
	}
}

func TestProjectStatus_Valid(t *testing.T) {
	for _, s := range []ProjectStatus{ProjectStatusDraft, ProjectStatusActive, ProjectStatusPaused, ProjectStatusArchived} {
		if !s.Valid() {
			t.Errorf("%q.Valid() = false, want true", s)
		}
	}
	for _, s := range []ProjectStatus{"", "running", "DRAFT"} {
		if s.Valid() {
			t.Errorf("%q.Valid() = true, want false", s)
		}
	}
}
