// Package ledger records check, build, and capture runs in a local
// SQLite database so warning counts can be compared across runs.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	kind        TEXT NOT NULL,
	started_at  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	warnings    INTEGER NOT NULL,
	criticals   INTEGER NOT NULL,
	missing_screenshots INTEGER NOT NULL DEFAULT 0,
	pages_not_in_nav    INTEGER NOT NULL DEFAULT 0,
	captured    INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS runs_started_at ON runs(started_at);
`

// Run is one recorded toolchain run.
type Run struct {
	ID        int64
	Kind      string // check, build, capture
	StartedAt time.Time
	Duration  time.Duration
	Warnings  int
	Criticals int

	// Breakdown columns worth tracking over time.
	MissingScreenshots int
	PagesNotInNav      int

	// Capture-only counters.
	Captured int
	Failed   int
}

// Store is the run-history database.
type Store struct {
	db *sql.DB
}

// Open opens (and creates, if needed) the ledger database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 10000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply ledger schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a run and returns it with its assigned id.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
			(kind, started_at, duration_ms, warnings, criticals,
			 missing_screenshots, pages_not_in_nav, captured, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Kind,
		run.StartedAt.UnixMilli(),
		run.Duration.Milliseconds(),
		run.Warnings,
		run.Criticals,
		run.MissingScreenshots,
		run.PagesNotInNav,
		run.Captured,
		run.Failed,
	)
	if err != nil {
		return run, fmt.Errorf("record run: %w", err)
	}
	run.ID, err = res.LastInsertId()
	if err != nil {
		return run, err
	}
	return run, nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, started_at, duration_ms, warnings, criticals,
		       missing_screenshots, pages_not_in_nav, captured, failed
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		var startedMs, durationMs int64
		err := rows.Scan(&run.ID, &run.Kind, &startedMs, &durationMs,
			&run.Warnings, &run.Criticals,
			&run.MissingScreenshots, &run.PagesNotInNav,
			&run.Captured, &run.Failed)
		if err != nil {
			return nil, err
		}
		run.StartedAt = time.UnixMilli(startedMs)
		run.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, run)
	}
	return out, rows.Err()
}
