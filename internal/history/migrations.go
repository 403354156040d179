package history

import "fmt"

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		case_name TEXT NOT NULL,
		compset TEXT NOT NULL,
		resolution TEXT NOT NULL,
		machine TEXT NOT NULL,
		project TEXT,
		status TEXT NOT NULL DEFAULT 'running',
		failing_step TEXT,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		finished_at DATETIME
	)`,

	`CREATE TABLE IF NOT EXISTS run_steps (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		step_id TEXT NOT NULL,
		status TEXT NOT NULL,
		detail TEXT,
		started_at DATETIME,
		finished_at DATETIME,
		PRIMARY KEY (run_id, seq),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_case_name ON runs(case_name)`,
}

// migrate applies all schema statements. Every statement is idempotent, so
// re-running against an existing ledger is safe.
func (s *Store) migrate() error {
	for i, stmt := range migrations {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("history migration %d failed: %w", i, err)
		}
	}
	return nil
}
