package store

import "database/sql"

// Migrate brings the schema up to the current version, tracked via
// PRAGMA user_version.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS scrape_runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  started_at TEXT NOT NULL,
  completed_at TEXT,
  status TEXT NOT NULL DEFAULT 'running',
  sites_scraped INTEGER NOT NULL DEFAULT 0,
  jobs_found INTEGER NOT NULL DEFAULT 0,
  jobs_excluded INTEGER NOT NULL DEFAULT 0,
  jobs_new INTEGER NOT NULL DEFAULT 0,
  errors TEXT,
  trigger_source TEXT NOT NULL DEFAULT 'manual'
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id INTEGER REFERENCES scrape_runs(id),
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  salary TEXT NOT NULL DEFAULT '',
  job_type TEXT NOT NULL DEFAULT '',
  remote TEXT NOT NULL DEFAULT '',
  posted_date TEXT,
  source_site TEXT NOT NULL,
  extraction_method TEXT NOT NULL DEFAULT 'css',
  raw_data TEXT,
  created_at TEXT NOT NULL,
  is_bookmarked INTEGER NOT NULL DEFAULT 0,
  is_hidden INTEGER NOT NULL DEFAULT 0,
  notes TEXT NOT NULL DEFAULT '',
  applied_at TEXT,
  status TEXT NOT NULL DEFAULT 'new',
  refined_at TEXT
);
`); err != nil {
		return err
	}

	for _, stmt := range []string{
		`CREATE INDEX IF NOT EXISTS idx_jobs_source ON jobs(source_site);`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_created ON jobs(created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}
