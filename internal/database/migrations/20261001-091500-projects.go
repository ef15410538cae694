package migrations

func init() {
	Register(Migration{
		Timestamp:   "20261001-091500",
		Description: "Projects attached to profiles",
		Up: []string{
			`CREATE TABLE IF NOT EXISTS projects (
				id TEXT PRIMARY KEY,
				profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
				name TEXT NOT NULL,
				description TEXT,
				scraper_key TEXT,
				status TEXT NOT NULL DEFAULT 'draft',
				settings TEXT NOT NULL DEFAULT '{}',
				tags TEXT NOT NULL DEFAULT '[]',
				output_formats TEXT NOT NULL DEFAULT '["xlsx"]',
				link_blueprint TEXT NOT NULL DEFAULT '{}',
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL,
				last_run_at TEXT
			)`,
			`CREATE INDEX IF NOT EXISTS idx_projects_profile_id ON projects(profile_id)`,
			`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,
		},
	})
}
