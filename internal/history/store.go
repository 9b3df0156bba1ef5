// Package history persists run results to a SQLite database so repeated
// executions of a workplan can be numbered and inspected later.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/taskwave/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// Run is one recorded execution of a workplan.
type Run struct {
	ID           string
	WorkplanFile string
	RunNumber    int
	StartedAt    time.Time
	Duration     time.Duration
	TotalTasks   int
	Completed    int
	Failed       int
	Waves        int
	Success      bool
}

// TaskRecord is one task outcome within a recorded run.
type TaskRecord struct {
	RunID    string
	TaskID   int
	Name     string
	Wave     int
	Status   string
	Error    string
	Duration time.Duration
}

// Store manages the SQLite run-history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (and if needed creates) the history database. Pass
// ":memory:" for an ephemeral store.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetRunCount returns how many runs are recorded for a workplan file.
func (s *Store) GetRunCount(ctx context.Context, workplanFile string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM runs WHERE workplan_file = ?`, workplanFile).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}

// RecordRun stores one execution with its per-task outcomes and returns
// the generated run ID. The run number is derived from the existing
// record count for the same workplan file.
func (s *Store) RecordRun(ctx context.Context, workplanFile string, startedAt time.Time,
	summary *models.ExecutionResult, results []models.TaskResult) (string, error) {

	count, err := s.GetRunCount(ctx, workplanFile)
	if err != nil {
		return "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, workplan_file, run_number, started_at, duration_ms,
		                   total_tasks, completed, failed, waves, success)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, workplanFile, count+1, startedAt, summary.Duration.Milliseconds(),
		summary.TotalTasks, summary.Completed, summary.Failed, summary.Waves, summary.Success())
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, result := range results {
		errMsg := ""
		if result.Error != nil {
			errMsg = result.Error.Error()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO task_results (run_id, task_id, name, wave, status, error_message, duration_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, result.TaskID, result.Name, result.Wave, result.Status, errMsg,
			result.Duration.Milliseconds())
		if err != nil {
			return "", fmt.Errorf("insert task result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// RecentRuns returns the most recent runs for a workplan file, newest
// first.
func (s *Store) RecentRuns(ctx context.Context, workplanFile string, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, workplan_file, run_number, started_at, duration_ms,
		        total_tasks, completed, failed, waves, success
		 FROM runs WHERE workplan_file = ?
		 ORDER BY started_at DESC, run_number DESC LIMIT ?`,
		workplanFile, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var durationMS int64
		if err := rows.Scan(&run.ID, &run.WorkplanFile, &run.RunNumber, &run.StartedAt,
			&durationMS, &run.TotalTasks, &run.Completed, &run.Failed, &run.Waves,
			&run.Success); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// TaskResults returns the per-task records of one run in task ID order.
func (s *Store) TaskResults(ctx context.Context, runID string) ([]TaskRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, task_id, name, wave, status, error_message, duration_ms
		 FROM task_results WHERE run_id = ? ORDER BY task_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query task results: %w", err)
	}
	defer rows.Close()

	var records []TaskRecord
	for rows.Next() {
		var rec TaskRecord
		var durationMS int64
		if err := rows.Scan(&rec.RunID, &rec.TaskID, &rec.Name, &rec.Wave, &rec.Status,
			&rec.Error, &durationMS); err != nil {
			return nil, fmt.Errorf("scan task result: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}
