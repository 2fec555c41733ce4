// Package capture persists extraction attempts to SQLite so rejection
// patterns can be inspected after the fact. One row per attempt: where the
// text came from, how large it was, whether it was accepted, and why not.
//
// Import the driver in the binary:
//
//	import _ "modernc.org/sqlite"
package capture

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Schema for the attempts table, applied by Open.
const Schema = `
CREATE TABLE IF NOT EXISTS attempts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at INTEGER NOT NULL,
	source TEXT NOT NULL,
	raw_len INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	reason TEXT NOT NULL DEFAULT '',
	result_json TEXT NOT NULL DEFAULT '',
	duration_us INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_attempts_ts ON attempts(created_at);
CREATE INDEX IF NOT EXISTS idx_attempts_outcome ON attempts(outcome);
`

// Outcome values for an Attempt.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Attempt is one extraction attempt.
type Attempt struct {
	ID         int64  `json:"id"`
	CreatedAt  int64  `json:"created_at"`
	Source     string `json:"source"` // "text", "html", "manual"
	RawLen     int    `json:"raw_len"`
	Outcome    string `json:"outcome"`
	Reason     string `json:"reason,omitempty"`
	ResultJSON string `json:"result_json,omitempty"`
	DurationUs int64  `json:"duration_us"`
}

// Stats aggregates attempt counts.
type Stats struct {
	Total    int64 `json:"total"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}

// Store is the attempt log.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the attempt database at path, applies the
// production pragmas, and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("capture: open %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("capture: %s: %w", p, err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("capture: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts an attempt. CreatedAt is filled when zero.
func (s *Store) Record(ctx context.Context, a *Attempt) error {
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().Unix()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts (created_at, source, raw_len, outcome, reason, result_json, duration_us)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.CreatedAt, a.Source, a.RawLen, a.Outcome, a.Reason, a.ResultJSON, a.DurationUs)
	if err != nil {
		return fmt.Errorf("capture: insert attempt: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		a.ID = id
	}
	return nil
}

// Recent returns the most recent attempts, newest first. limit <= 0 means 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, source, raw_len, outcome, reason, result_json, duration_us
		FROM attempts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("capture: query attempts: %w", err)
	}
	defer rows.Close()

	var out []*Attempt
	for rows.Next() {
		a := &Attempt{}
		if err := rows.Scan(&a.ID, &a.CreatedAt, &a.Source, &a.RawLen,
			&a.Outcome, &a.Reason, &a.ResultJSON, &a.DurationUs); err != nil {
			return nil, fmt.Errorf("capture: scan attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Counts returns aggregate attempt statistics.
func (s *Store) Counts(ctx context.Context) (*Stats, error) {
	st := &Stats{}
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0)
		FROM attempts`, OutcomeAccepted, OutcomeRejected).
		Scan(&st.Total, &st.Accepted, &st.Rejected)
	if err != nil {
		return nil, fmt.Errorf("capture: count attempts: %w", err)
	}
	return st, nil
}
