// Package database opens the libsql store and applies migrations.
package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tursodatabase/go-libsql"

	"github.com/jmylchreest/crawldesk-api/internal/database/migrations"
)

// New opens a libsql database.
// Supports:
//   - Local files: DATABASE_URL="file:data/crawldesk.db" (parent directory is created)
//   - In-memory: DATABASE_URL=":memory:"
//   - Embedded replica: set TURSO_URL + TURSO_AUTH_TOKEN to sync profiles across machines
func New(dsn string) (*sql.DB, error) {
	tursoURL := os.Getenv("TURSO_URL")
	tursoToken := os.Getenv("TURSO_AUTH_TOKEN")

	path := localPath(dsn)
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	var db *sql.DB
	if tursoURL != "" && tursoToken != "" && path != "" {
		connector, err := libsql.NewEmbeddedReplicaConnector(path, tursoURL,
			libsql.WithAuthToken(tursoToken),
			libsql.WithReadYourWrites(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Turso connector: %w", err)
		}
		db = sql.OpenDB(connector)
	} else {
		var err error
		db, err = sql.Open("libsql", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	}

	// Pragmas and :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	// Projects cascade on profile delete.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// localPath extracts the file path from a "file:" DSN, or "" for anything else.
func localPath(dsn string) string {
	if !strings.HasPrefix(dsn, "file:") {
		return ""
	}
	path := strings.TrimPrefix(dsn, "file:")
	path, _, _ = strings.Cut(path, "?")
	if path == "" || path == ":memory:" {
		return ""
	}
	return path
}

// Migrate applies pending migrations, logging each one.
func Migrate(db *sql.DB, logger *slog.Logger) error {
	return migrations.Run(db, logger)
}

// SchemaVersion returns the latest applied migration and the count applied.
func SchemaVersion(db *sql.DB) (string, int, error) {
	applied, err := migrations.Applied(db)
	if err != nil {
		return "", 0, err
	}
	if len(applied) == 0 {
		return "", 0, nil
	}
	return applied[len(applied)-1].Timestamp, len(applied), nil
}
