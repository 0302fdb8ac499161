// Package store persists run history in SQLite so the CLI and the
// control-plane API can list past generation results.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Vasishta03/DataForge/internal/generator"
)

// RunStore records sealed generation results.
type RunStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// RunRecord is one persisted run.
type RunRecord struct {
	ID             string
	Keyword        string
	ReferenceFile  string
	Outcome        string
	ElapsedSeconds float64
	GeneratedFiles []string
	CreatedAt      time.Time
}

// NewRunStore opens (and initializes) the SQLite database at path.
// Use ":memory:" in tests.
func NewRunStore(path string) (*RunStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &RunStore{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *RunStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		keyword TEXT NOT NULL,
		reference_file TEXT,
		outcome TEXT NOT NULL,
		elapsed_seconds REAL NOT NULL,
		error TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_runs_keyword ON runs(keyword);

	CREATE TABLE IF NOT EXISTS run_files (
		run_id TEXT NOT NULL REFERENCES runs(id),
		position INTEGER NOT NULL,
		path TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *RunStore) Close() error { return s.db.Close() }

// SaveResult persists one sealed result with its ordered file list.
func (s *RunStore) SaveResult(res *generator.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, keyword, reference_file, outcome, elapsed_seconds, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.ID, res.Keyword, res.ReferenceFile, string(res.Outcome),
		res.Elapsed.Seconds(), res.Err,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, path := range res.GeneratedFiles {
		if _, err := tx.Exec(
			`INSERT INTO run_files (run_id, position, path) VALUES (?, ?, ?)`,
			res.ID, i, path,
		); err != nil {
			return fmt.Errorf("insert run file: %w", err)
		}
	}
	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(limit int) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, keyword, reference_file, outcome, elapsed_seconds, created_at
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.ID, &rec.Keyword, &rec.ReferenceFile,
			&rec.Outcome, &rec.ElapsedSeconds, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		files, err := s.runFiles(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].GeneratedFiles = files
	}
	return out, nil
}

// GetRun fetches one run by ID.
func (s *RunStore) GetRun(id string) (*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec RunRecord
	err := s.db.QueryRow(
		`SELECT id, keyword, reference_file, outcome, elapsed_seconds, created_at
		 FROM runs WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Keyword, &rec.ReferenceFile, &rec.Outcome,
			&rec.ElapsedSeconds, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	files, err := s.runFiles(id)
	if err != nil {
		return nil, err
	}
	rec.GeneratedFiles = files
	return &rec, nil
}

func (s *RunStore) runFiles(runID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT path FROM run_files WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		files = append(files, p)
	}
	return files, rows.Err()
}
