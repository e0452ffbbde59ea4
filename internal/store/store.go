// Package store handles SQLite persistence of viewer runs.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Kinds of recorded runs.
const (
	KindLoad   = "load"
	KindReplay = "replay"
)

// Run records one completed model load or event log replay.
type Run struct {
	ID         int64
	StartedAt  time.Time
	Kind       string
	ModelFile  string
	Triangles  int
	Layers     int
	Segments   int
	Events     int
	DurationMs int64
}

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			kind TEXT NOT NULL,
			model_file TEXT NOT NULL,
			triangles INTEGER NOT NULL,
			layers INTEGER NOT NULL,
			segments INTEGER NOT NULL,
			events INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores one completed run.
func (s *Store) InsertRun(ctx context.Context, run Run) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, kind, model_file, triangles, layers, segments, events, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Kind,
		run.ModelFile,
		run.Triangles,
		run.Layers,
		run.Segments,
		run.Events,
		run.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns runs newest first, up to limit. A limit of zero returns
// everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, kind, model_file, triangles, layers, segments, events, duration_ms
		FROM runs
		ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += `
		LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Kind, &r.ModelFile, &r.Triangles, &r.Layers, &r.Segments, &r.Events, &r.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, err
		}
		r.StartedAt = parsed
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
