// Package main is the entry point for the crawldesk-api server, the local
// backend the Crawldesk desktop app talks to.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jmylchreest/crawldesk-api/internal/config"
	"github.com/jmylchreest/crawldesk-api/internal/database"
	"github.com/jmylchreest/crawldesk-api/internal/http/handlers"
	"github.com/jmylchreest/crawldesk-api/internal/http/mw"
	"github.com/jmylchreest/crawldesk-api/internal/http/routes"
	"github.com/jmylchreest/crawldesk-api/internal/linkfactory"
	"github.com/jmylchreest/crawldesk-api/internal/logging"
	"github.com/jmylchreest/crawldesk-api/internal/repository"
	"github.com/jmylchreest/crawldesk-api/internal/service"
	"github.com/jmylchreest/crawldesk-api/internal/shutdown"
	"github.com/jmylchreest/crawldesk-api/internal/version"
)

const (
	defaultRequestTimeout  = 30 * time.Second
	upstreamRequestTimeout = 90 * time.Second
	scrapeWriteTimeout     = 2 * time.Hour
)

// Paths whose handlers call Crawlbase.
var upstreamPaths = []string{"/api/dashboard", "/api/docs/run-example", "/api/scrapers/scrape"}

func main() {
	logger := logging.SetDefault()

	v := version.Get()
	logger.Info("starting crawldesk-api",
		"version", v.Version,
		"commit", v.Commit,
		"built", v.Date,
		"go_version", v.GoVersion,
	)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := database.Migrate(db, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	schemaVersion, migrationCount, err := database.SchemaVersion(db)
	if err != nil {
		logger.Warn("failed to get schema version", "error", err)
	} else if schemaVersion != "" {
		logger.Info("database schema ready", "schema_version", schemaVersion, "migrations_applied", migrationCount)
	}

	repos := repository.NewRepositories(db)

	services, err := service.NewServices(cfg, repos, logger)
	if err != nil {
		logger.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}

	idle := shutdown.NewIdleMonitor(shutdown.IdleMonitorConfig{
		Timeout:      cfg.IdleTimeout,
		Logger:       logger,
		ExcludePaths: []string{"/healthz", "/readyz", "/api/health"},
		Busy:         services.Scrape.Busy,
	})

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(idle.Middleware)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(mw.APIVersion())
	router.Use(mw.Cache(mw.DefaultCacheConfig()))
	router.Use(mw.Timeout(mw.TimeoutConfig{
		Default:          defaultRequestTimeout,
		Extended:         upstreamRequestTimeout,
		ExtendedPatterns: []string{"/api/dashboard", "/api/docs/run-example"},
		// A bulk scrape runs until every URL was fetched
		SkipPatterns: []string{"/api/scrapers/scrape"},
	}))
	router.Use(mw.ExtendWriteDeadline(scrapeWriteTimeout, "/api/scrapers/scrape"))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID", "X-API-Version", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Request size limit (1MB)
	router.Use(middleware.RequestSize(1 * 1024 * 1024))

	router.Use(mw.RateLimit(mw.RateLimitConfig{
		IPRequestsPerMinute:       cfg.RateLimitPerMinute,
		UpstreamRequestsPerMinute: cfg.UpstreamRateLimitPerMinute,
		UpstreamPatterns:          upstreamPaths,
	}))

	api := humachi.New(router, routes.NewHumaConfig(cfg.BaseURL))

	routes.Register(api, &routes.Handlers{
		HealthCheck: handlers.NewHealthHandler(cfg.Environment).HealthCheck,
		Livez:       handlers.Livez,
		Readyz:      handlers.NewReadyzHandler(db).Readyz,

		Profile:     handlers.NewProfileHandler(services.Profile),
		Project:     handlers.NewProjectHandler(services.Project),
		Dashboard:   handlers.NewDashboardHandler(services.Usage),
		Docs:        handlers.NewDocsHandler(services.Docs),
		LinkFactory: handlers.NewLinkFactoryHandler(linkfactory.Default()),
		Scraper:     handlers.NewScraperHandler(services.Scrape, cfg.OutputDir),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      upstreamRequestTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on signal or once idle
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-sigChan:
			logger.Info("shutting down server", "signal", sig.String())
		case <-idle.ShutdownChan():
			logger.Info("shutting down idle server")
		}
		idle.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	idle.Start()

	logger.Info("starting server",
		"port", cfg.Port,
		"base_url", cfg.BaseURL,
		"environment", cfg.Environment,
		"storage_enabled", services.Storage.IsEnabled(),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
