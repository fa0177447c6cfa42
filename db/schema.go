// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The statements are written to run unchanged on both sqlite and
// postgres: no NOW(), no serial columns. Timestamps are always supplied
// by the application, and row IDs are generated hex/uuid strings.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// The control row is a singleton; every other operation assumes it
	// exists.
	_, err = db.Exec(`
		INSERT INTO control (id, published) VALUES (1, 0)
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to seed control row: %w", err)
	}

	return nil
}

const schema = `
-- Students: a row exists iff that student has voted. The primary key
-- doubles as the atomic double-vote guard.
CREATE TABLE IF NOT EXISTS students (
    student_id TEXT PRIMARY KEY,
    has_voted INTEGER NOT NULL DEFAULT 0,
    vote_timestamp TIMESTAMP
);

-- Candidates
CREATE TABLE IF NOT EXISTS candidates (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    added_at TIMESTAMP NOT NULL,
    UNIQUE (name, category)
);

CREATE INDEX IF NOT EXISTS idx_candidates_category ON candidates(category);

-- Votes: append-only. One row per (student, category), enforced.
CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    student_id TEXT NOT NULL,
    category TEXT NOT NULL,
    candidate TEXT NOT NULL,
    voted_at TIMESTAMP NOT NULL,
    UNIQUE (student_id, category)
);

CREATE INDEX IF NOT EXISTS idx_votes_tally ON votes(category, candidate);

-- Control: singleton row (id=1). published only ever moves 0 -> 1
-- outside of a full reset.
CREATE TABLE IF NOT EXISTS control (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    published INTEGER NOT NULL DEFAULT 0,
    published_at TIMESTAMP,
    publish_admin TEXT
);

-- Admin logs: append-only audit trail. Survives election resets.
CREATE TABLE IF NOT EXISTS admin_logs (
    id TEXT PRIMARY KEY,
    admin_user TEXT NOT NULL,
    action TEXT NOT NULL,
    details TEXT,
    timestamp TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_admin_logs_timestamp ON admin_logs(timestamp);
`
