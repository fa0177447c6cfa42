// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Connection

Open selects the driver by database type and verifies the connection:

	conn, err := db.Open("sqlite", "election.db")

Supported types are "sqlite" (modernc.org/sqlite, the default) and
"postgres" (lib/pq). For sqlite, Open builds a DSN that enables WAL
journaling, a 30s busy timeout, and immediate write-transaction
locking. The settings ride in the DSN because they are per-connection:
every connection the pool opens needs them, not just the first.

# Schema Creation

CreateSchema initializes all required tables and seeds the control row:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for tables and indexes
and ON CONFLICT DO NOTHING for the control row.

# Tables

The schema includes:

  - students: one row per student who has voted (the double-vote guard)
  - candidates: unique (name, category) pairs
  - votes: append-only ballots, one row per (student, category)
  - control: singleton publish flag (id=1)
  - admin_logs: append-only audit trail, untouched by resets

# Constraints

The vote-integrity rules live in the schema, not in pre-checks:

  - students.student_id PRIMARY KEY: a plain INSERT is the atomic
    "has this student already voted" compare-and-swap
  - votes UNIQUE (student_id, category): at most one vote per category
  - candidates UNIQUE (name, category): duplicate adds fail at insert

All SQL in this repository uses $1-style placeholders, which both
drivers accept.
*/
package db
