// Package runlog persists the statistics of every cleaning run in a small
// SQLite database, so operators can audit what a given export looked like
// before and after cleaning.
package runlog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/crmclean/pkg/clean"
)

// Run is one row of the clean_runs table.
type Run struct {
	ID                int64
	Kind              string
	Input             string
	Output            string
	Original          int
	InvalidFiltered   int
	DuplicatesRemoved int
	Final             int
	StartedAt         int64
	DurationMs        int64
}

// DB manages the clean_runs SQLite table.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the run database at path and ensures the
// clean_runs table exists.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open run db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS clean_runs (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		kind               TEXT NOT NULL,
		input              TEXT NOT NULL,
		output             TEXT NOT NULL,
		original           INTEGER NOT NULL,
		invalid_filtered   INTEGER NOT NULL,
		duplicates_removed INTEGER NOT NULL,
		final              INTEGER NOT NULL,
		started_at         INTEGER NOT NULL,
		duration_ms        INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create clean_runs table: %w", err)
	}

	return &DB{db: db}, nil
}

// Close ferme la base des runs.
func (d *DB) Close() error {
	return d.db.Close()
}

// Record persists one finished run.
func (d *DB) Record(kind, input, output string, stats clean.Stats, startedAt time.Time, duration time.Duration) error {
	const q = `INSERT INTO clean_runs
		(kind, input, output, original, invalid_filtered, duplicates_removed, final, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := d.db.Exec(q, kind, input, output,
		stats.Original, stats.InvalidFiltered, stats.DuplicatesRemoved, stats.Final,
		startedAt.Unix(), duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (d *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.Query(`SELECT id, kind, input, output, original, invalid_filtered,
		duplicates_removed, final, started_at, duration_ms
		FROM clean_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Kind, &r.Input, &r.Output, &r.Original, &r.InvalidFiltered,
			&r.DuplicatesRemoved, &r.Final, &r.StartedAt, &r.DurationMs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LastRun returns the most recent run for a dataset kind, or nil when the
// kind has never been cleaned.
func (d *DB) LastRun(kind string) (*Run, error) {
	var r Run
	err := d.db.QueryRow(`SELECT id, kind, input, output, original, invalid_filtered,
		duplicates_removed, final, started_at, duration_ms
		FROM clean_runs WHERE kind = ? ORDER BY id DESC LIMIT 1`, kind).
		Scan(&r.ID, &r.Kind, &r.Input, &r.Output, &r.Original, &r.InvalidFiltered,
			&r.DuplicatesRemoved, &r.Final, &r.StartedAt, &r.DurationMs)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last run for %s: %w", kind, err)
	}
	return &r, nil
}
