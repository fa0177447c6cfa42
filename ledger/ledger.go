// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/class-ballot/models"
)

// Conflict and validation errors. Handlers match these with errors.Is
// to pick status codes; anything else is a storage error.
var (
	ErrInvalidStudentID   = errors.New("invalid student ID")
	ErrIncompleteBallot   = errors.New("ballot must select one candidate per category")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrUnknownCandidate   = errors.New("unknown candidate")
	ErrAlreadyVoted       = errors.New("student has already voted")
	ErrInvalidCandidate   = errors.New("invalid candidate name")
	ErrDuplicateCandidate = errors.New("candidate already exists in this category")
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrCandidateHasVotes  = errors.New("candidate has recorded votes")
)

// Ledger is the election core: a set of invariant-preserving operations
// over the shared store. It holds no state beyond the connection pool
// and the injected election configuration.
type Ledger struct {
	db       *sql.DB
	election models.Election
}

func New(db *sql.DB, election models.Election) *Ledger {
	return &Ledger{db: db, election: election}
}

// Election returns the injected election configuration.
func (l *Ledger) Election() models.Election {
	return l.election
}

// HasVoted reports whether the student has a recorded ballot.
func (l *Ledger) HasVoted(ctx context.Context, studentID string) (bool, error) {
	sid := l.election.IDScheme.Normalize(studentID)

	var hasVoted int
	err := l.db.QueryRowContext(ctx, `
		SELECT has_voted FROM students WHERE student_id = $1
	`, sid).Scan(&hasVoted)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query student: %w", err)
	}
	return hasVoted == 1, nil
}

// isUniqueViolation matches the constraint error text of both drivers.
// Uniqueness is enforced by constraints rather than pre-checks so
// concurrent writers cannot race past each other.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // modernc.org/sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") // lib/pq
}
