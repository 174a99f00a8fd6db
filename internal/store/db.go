// Package store keeps run history and generated artifacts in SQLite so they can
// be listed and downloaded after the request that produced them.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-order-pipeline/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned for unknown runs and artifacts.
var ErrNotFound = errors.New("not found")

// DB is the run store.
type DB struct {
	db *sql.DB
}

// RunInfo is one stored run.
type RunInfo struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Status    string          `json:"status"`
	Summary   json.RawMessage `json:"summary,omitempty" swaggertype:"object"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RunError is one recorded run error.
type RunError struct {
	FileName  string    `json:"file_name,omitempty"`
	ErrorType string    `json:"error_type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Open connects to dbPath and creates the schema.
func Open(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// In-memory databases exist per connection.
	if strings.Contains(dbPath, ":memory:") {
		sqlDB.SetMaxOpenConns(1)
	}

	runTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		kind TEXT,
		status TEXT,
		summary TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS run_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		file_name TEXT,
		error_type TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`
	artifactTable := `
	CREATE TABLE IF NOT EXISTS artifacts (
		run_id TEXT,
		file_name TEXT,
		kind TEXT,
		content BLOB,
		created_at DATETIME,
		PRIMARY KEY (run_id, file_name)
	);
	`
	for _, stmt := range []string{runTable, errorTable, artifactTable} {
		if _, err := sqlDB.Exec(stmt); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &DB{db: sqlDB}, nil
}

// Close closes the database.
func (s *DB) Close() error { return s.db.Close() }

// CreateRun stores a new pending run.
func (s *DB) CreateRun(runID, kind string) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(`INSERT INTO runs (id, kind, status, summary, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, kind, "pending", "", now, now)
	return err
}

// UpdateRunStatus updates the status of a run.
func (s *DB) UpdateRunStatus(runID, status string) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// SaveRunSummary stores the JSON form of summary on the run.
func (s *DB) SaveRunSummary(runID string, summary interface{}) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = s.db.Exec(`UPDATE runs SET summary = ?, updated_at = ? WHERE id = ?`, string(summaryJSON), now, runID)
	return err
}

// SaveRunError records an error for a run.
func (s *DB) SaveRunError(runID, fileName, errorType, message string) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(`INSERT INTO run_errors (run_id, file_name, error_type, error_message, created_at) VALUES (?, ?, ?, ?, ?)`,
		runID, fileName, errorType, message, now)
	return err
}

// ListRuns returns all runs, newest first, without summaries.
func (s *DB) ListRuns() ([]RunInfo, error) {
	rows, err := s.db.Query(`SELECT id, kind, status, created_at, updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []RunInfo{}
	for rows.Next() {
		var r RunInfo
		if err := rows.Scan(&r.ID, &r.Kind, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun fetches a run with its summary.
func (s *DB) GetRun(runID string) (*RunInfo, error) {
	var (
		r       RunInfo
		summary string
	)
	err := s.db.QueryRow(`SELECT id, kind, status, summary, created_at, updated_at FROM runs WHERE id = ?`, runID).
		Scan(&r.ID, &r.Kind, &r.Status, &summary, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if summary != "" {
		r.Summary = json.RawMessage(summary)
	}
	return &r, nil
}

// GetRunErrors lists the errors of a run in the order they were recorded.
func (s *DB) GetRunErrors(runID string) ([]RunError, error) {
	rows, err := s.db.Query(`SELECT file_name, error_type, error_message, created_at FROM run_errors WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RunError{}
	for rows.Next() {
		var e RunError
		if err := rows.Scan(&e.FileName, &e.ErrorType, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SaveArtifact stores a generated file, replacing one of the same name.
func (s *DB) SaveArtifact(runID string, a model.Artifact) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(`INSERT OR REPLACE INTO artifacts (run_id, file_name, kind, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		runID, a.FileName, a.Kind, a.Content, now)
	return err
}

// GetArtifact fetches a stored file.
func (s *DB) GetArtifact(runID, fileName string) (*model.Artifact, error) {
	var a model.Artifact
	err := s.db.QueryRow(`SELECT file_name, kind, content FROM artifacts WHERE run_id = ? AND file_name = ?`, runID, fileName).
		Scan(&a.FileName, &a.Kind, &a.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("artifact %s/%s: %w", runID, fileName, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListArtifacts lists the files of a run without their content.
func (s *DB) ListArtifacts(runID string) ([]model.Artifact, error) {
	rows, err := s.db.Query(`SELECT file_name, kind FROM artifacts WHERE run_id = ? ORDER BY created_at, file_name`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Artifact{}
	for rows.Next() {
		var a model.Artifact
		if err := rows.Scan(&a.FileName, &a.Kind); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
