// Package history persists a ledger of configuration runs in SQLite: one
// row per run plus one row per executed step. The ledger is optional; when
// it is disabled the pipeline executes without a recorder.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	// SQLite driver for database/sql
	_ "github.com/mattn/go-sqlite3"

	"github.com/norclim/caserig/internal/config"
	"github.com/norclim/caserig/internal/pipeline"
)

// ErrRunNotFound is returned when a run id is not in the ledger.
var ErrRunNotFound = errors.New("run not found")

// Run statuses.
const (
	StatusRunning = "running"
	StatusOK      = "ok"
	StatusFailed  = "failed"
)

// Store wraps the SQLite connection holding the run ledger.
type Store struct {
	db *sql.DB
}

// Open creates the parent directory if needed, opens the database, and runs
// the migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to history db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run is one recorded configuration run.
type Run struct {
	ID          string
	CaseName    string
	Compset     string
	Resolution  string
	Machine     string
	Project     string
	Status      string
	FailingStep string
	StartedAt   time.Time
	FinishedAt  *time.Time
}

// StepRecord is one executed step of a recorded run.
type StepRecord struct {
	RunID      string
	Seq        int
	StepID     string
	Status     string
	Detail     string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// BeginRun inserts a new running entry for the given case and returns its id.
func (s *Store) BeginRun(ctx context.Context, run *config.RunConfig) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, case_name, compset, resolution, machine, project, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, run.CaseName, run.Compset, run.Resolution, run.Machine, run.Project, StatusRunning,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run start: %w", err)
	}
	return id, nil
}

// FinishRun marks the run as finished, successful or not.
func (s *Store) FinishRun(ctx context.Context, id string, runErr error) error {
	status := StatusOK
	if runErr != nil {
		status = StatusFailed
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to record run finish: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// GetRun fetches one run by id.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, case_name, compset, resolution, machine, project, status,
		        COALESCE(failing_step, ''), started_at, finished_at
		 FROM runs WHERE id = ?`, id)

	var run Run
	var finishedAt sql.NullTime
	err := row.Scan(&run.ID, &run.CaseName, &run.Compset, &run.Resolution, &run.Machine,
		&run.Project, &run.Status, &run.FailingStep, &run.StartedAt, &finishedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}
	return &run, nil
}

// RunIDs returns the ids of all recorded runs, newest first.
func (s *Store) RunIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM runs ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Steps returns the recorded steps of a run in execution order.
func (s *Store) Steps(ctx context.Context, runID string) ([]StepRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, seq, step_id, status, COALESCE(detail, ''), started_at, finished_at
		 FROM run_steps WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []StepRecord
	for rows.Next() {
		var rec StepRecord
		var finishedAt sql.NullTime
		if err := rows.Scan(&rec.RunID, &rec.Seq, &rec.StepID, &rec.Status,
			&rec.Detail, &rec.StartedAt, &finishedAt); err != nil {
			return nil, err
		}
		if finishedAt.Valid {
			rec.FinishedAt = &finishedAt.Time
		}
		steps = append(steps, rec)
	}
	return steps, rows.Err()
}

// Recorder returns a pipeline recorder bound to one run.
func (s *Store) Recorder(runID string) pipeline.Recorder {
	return &runRecorder{store: s, runID: runID}
}

// runRecorder feeds step lifecycle events into the ledger. The ledger is
// best effort: recording errors are ignored so that they can never abort
// the configuration run itself.
type runRecorder struct {
	store *Store
	runID string
}

func (r *runRecorder) StepStarted(ctx context.Context, seq int, id string) {
	_, _ = r.store.db.ExecContext(ctx,
		`INSERT INTO run_steps (run_id, seq, step_id, status, started_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		r.runID, seq, id, StatusRunning,
	)
}

func (r *runRecorder) StepFinished(ctx context.Context, seq int, id string, runErr error) {
	status := StatusOK
	detail := ""
	if runErr != nil {
		status = StatusFailed
		detail = runErr.Error()
		_, _ = r.store.db.ExecContext(ctx,
			`UPDATE runs SET failing_step = ? WHERE id = ?`, id, r.runID)
	}
	_, _ = r.store.db.ExecContext(ctx,
		`UPDATE run_steps SET status = ?, detail = ?, finished_at = CURRENT_TIMESTAMP
		 WHERE run_id = ? AND seq = ?`,
		status, detail, r.runID, seq,
	)
}
