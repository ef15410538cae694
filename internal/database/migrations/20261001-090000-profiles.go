package migrations

func init() {
	Register(Migration{
		Timestamp:   "20261001-090000",
		Description: "Profiles with encrypted Crawlbase tokens",
		Up: []string{
			// Token columns hold AES-GCM sealed values; empty string means unset.
			`CREATE TABLE IF NOT EXISTS profiles (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				description TEXT,
				is_active INTEGER NOT NULL DEFAULT 1,
				default_product TEXT NOT NULL DEFAULT 'crawling-api',
				tags TEXT NOT NULL DEFAULT '[]',
				token_normal_enc TEXT NOT NULL,
				token_javascript_enc TEXT NOT NULL DEFAULT '',
				token_proxy_enc TEXT NOT NULL DEFAULT '',
				token_storage_enc TEXT NOT NULL DEFAULT '',
				metadata_enc TEXT NOT NULL DEFAULT '',
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_profiles_name ON profiles(name)`,
		},
	})
}
