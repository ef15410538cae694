// Package main is the crawldesk admin CLI. It works directly against the
// local database, so it can prepare a data directory before the desktop app
// starts crawldesk-api for the first time.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/crawldesk-api/internal/config"
	"github.com/jmylchreest/crawldesk-api/internal/database"
	"github.com/jmylchreest/crawldesk-api/internal/linkfactory"
	"github.com/jmylchreest/crawldesk-api/internal/logging"
	"github.com/jmylchreest/crawldesk-api/internal/repository"
	"github.com/jmylchreest/crawldesk-api/internal/service"
	"github.com/jmylchreest/crawldesk-api/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "crawldesk",
		Short:         "crawldesk manages the local Crawldesk database and generates link lists.",
		Version:       version.Get().Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.SetDefault()
		},
	}

	root.AddCommand(newInitCommand())
	root.AddCommand(newSeedCommand())
	root.AddCommand(newProfilesCommand())
	root.AddCommand(newProjectsCommand())
	root.AddCommand(newLinksCommand(linkfactory.Default()))
	root.AddCommand(newKeygenCommand())

	return root
}

// app is the wiring shared by the commands that touch the database.
type app struct {
	cfg      *config.Config
	services *service.Services
	close    func()
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	logger := slog.Default()
	if err := database.Migrate(db, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	services, err := service.NewServices(cfg, repository.NewRepositories(db), logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init services: %w", err)
	}

	return &app{
		cfg:      cfg,
		services: services,
		close:    func() { _ = db.Close() },
	}, nil
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or migrate the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			db, err := database.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			if err := database.Migrate(db, slog.Default()); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}

			schemaVersion, count, err := database.SchemaVersion(db)
			if err != nil {
				return fmt.Errorf("read schema version: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "database ready at %s (schema %s, %d migrations)\n", cfg.DatabaseURL, schemaVersion, count)
			return nil
		},
	}
}
