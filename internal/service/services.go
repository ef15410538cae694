// Package service contains the business logic layer.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/crawldesk-api/internal/config"
	"github.com/jmylchreest/crawldesk-api/internal/crawlbase"
	"github.com/jmylchreest/crawldesk-api/internal/crypto"
	"github.com/jmylchreest/crawldesk-api/internal/docs"
	"github.com/jmylchreest/crawldesk-api/internal/models"
	"github.com/jmylchreest/crawldesk-api/internal/repository"
	"github.com/jmylchreest/crawldesk-api/internal/scraper"
	"github.com/jmylchreest/crawldesk-api/internal/version"
)

// CrawlbaseAPI is the part of the Crawlbase client the services depend on.
type CrawlbaseAPI interface {
	Get(ctx context.Context, path string, params map[string]string) (*crawlbase.Response, error)
	Post(ctx context.Context, path string, form map[string]string) (*crawlbase.Response, error)
	AccountSnapshot(ctx context.Context, product string, includePrevious bool) (*crawlbase.Response, error)
	Scrape(ctx context.Context, pageURL string) (*crawlbase.Response, error)
}

// ClientFactory builds an upstream client bound to a profile's tokens.
type ClientFactory func(tokens models.ProfileTokens) (CrawlbaseAPI, error)

// NewClientFactory returns a factory producing real Crawlbase clients.
func NewClientFactory(cfg crawlbase.Config) ClientFactory {
	return func(tokens models.ProfileTokens) (CrawlbaseAPI, error) {
		return crawlbase.New(cfg, tokens)
	}
}

// Services holds all service instances.
type Services struct {
	Profile *ProfileService
	Project *ProjectService
	Usage   *UsageService
	Docs    *DocsService
	Scrape  *ScrapeService
	Storage *StorageService
}

// NewServices creates all service instances.
func NewServices(cfg *config.Config, repos *repository.Repositories, logger *slog.Logger) (*Services, error) {
	cipher, err := crypto.NewCipher(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	if cfg.UsesDevSecret() {
		logger.Warn("using the development secret to encrypt profile tokens - set APP_SECRET_KEY")
	}

	storageSvc, err := NewStorageService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage service: %w", err)
	}

	clients := NewClientFactory(crawlbase.Config{
		BaseURL:   cfg.CrawlbaseBaseURL,
		Timeout:   cfg.CrawlbaseTimeout,
		UserAgent: version.Get().UserAgent(),
		Logger:    logger,
	})

	profileSvc := NewProfileService(repos, cipher, logger)
	projectSvc := NewProjectService(repos, logger)
	usageSvc := NewUsageService(profileSvc, clients, NewUsageCache(cfg.DashboardCacheTTL), logger)
	docsSvc := NewDocsService(docs.Default(), profileSvc, clients, logger)

	writer := scraper.NewXLSXWriter(cfg.OutputDir)
	scrapeSvc := NewScrapeService(profileSvc, projectSvc, clients, scraper.New(writer, logger), storageSvc, logger)

	return &Services{
		Profile: profileSvc,
		Project: projectSvc,
		Usage:   usageSvc,
		Docs:    docsSvc,
		Scrape:  scrapeSvc,
		Storage: storageSvc,
	}, nil
}
