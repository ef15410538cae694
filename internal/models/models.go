// Package models defines the domain models for the application.
package models

import "time"

// DefaultProduct is the Crawlbase product used when none is given.
const DefaultProduct = "crawling-api"

// ========================================
// Profiles
// ========================================

// ProfileTokens are the Crawlbase credentials of a profile. Only Normal is required;
// the others fall back to Normal where a request needs them.
type ProfileTokens struct {
	Normal     string `json:"normal" doc:"Normal (TCP) token"`
	JavaScript string `json:"javascript,omitempty" doc:"JavaScript (headless browser) token"`
	Proxy      string `json:"proxy,omitempty" doc:"Smart proxy token"`
	Storage    string `json:"storage,omitempty" doc:"Cloud storage token"`
}

// JSOrNormal returns the JavaScript token, or the normal token when unset.
func (t ProfileTokens) JSOrNormal() string { return orDefault(t.JavaScript, t.Normal) }

// ProxyOrNormal returns the proxy token, or the normal token when unset.
func (t ProfileTokens) ProxyOrNormal() string { return orDefault(t.Proxy, t.Normal) }

// StorageOrNormal returns the storage token, or the normal token when unset.
func (t ProfileTokens) StorageOrNormal() string { return orDefault(t.Storage, t.Normal) }

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// Profile is a named set of Crawlbase credentials with decrypted fields.
type Profile struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	IsActive       bool           `json:"is_active"`
	DefaultProduct string         `json:"default_product"`
	Tags           []string       `json:"tags"`
	Tokens         *ProfileTokens `json:"tokens,omitempty"`
	Metadata       map[string]any `json:"metadata"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ProfileRecord is the persisted form of a profile: secrets are sealed strings.
type ProfileRecord struct {
	ID                 string
	Name               string
	Description        string
	IsActive           bool
	DefaultProduct     string
	Tags               []string
	TokenNormalEnc     string
	TokenJavaScriptEnc string
	TokenProxyEnc      string
	TokenStorageEnc    string
	MetadataEnc        string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ========================================
// Projects
// ========================================

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusDraft    ProjectStatus = "draft"
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusPaused   ProjectStatus = "paused"
	ProjectStatusArchived ProjectStatus = "archived"
)

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusActive, ProjectStatusPaused, ProjectStatusArchived:
		return true
	}
	return false
}

// DefaultOutputFormats is used when a project is created without output formats.
var DefaultOutputFormats = []string{"xlsx"}

// Project groups scraping settings and a link blueprint under a profile.
type Project struct {
	ID            string         `json:"id"`
	ProfileID     string         `json:"profile_id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	ScraperKey    string         `json:"scraper_key,omitempty"`
	Status        ProjectStatus  `json:"status"`
	Settings      map[string]any `json:"settings"`
	Tags          []string       `json:"tags"`
	OutputFormats []string       `json:"output_formats"`
	LinkBlueprint map[string]any `json:"link_blueprint"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	LastRunAt     *time.Time     `json:"last_run_at,omitempty"`
}
