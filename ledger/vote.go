// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SubmitVotes records a complete ballot for a student as a single
// atomic unit: one vote row per category, then the student's voted
// mark. Either everything persists or nothing does.
//
// The already-voted guard runs inside the transaction, not just at the
// caller's login gate. Two interleaved submissions for the same ID
// cannot both commit: the students primary key makes the final INSERT a
// compare-and-swap, and votes carries UNIQUE (student_id, category) as
// a second line of defense. A failed submission is therefore safe to
// replay.
func (l *Ledger) SubmitVotes(ctx context.Context, studentID string, selections map[string]string) error {
	sid := l.election.IDScheme.Normalize(studentID)
	if !l.election.IDScheme.Valid(sid) {
		return fmt.Errorf("%w: expected %s", ErrInvalidStudentID, l.election.IDScheme.Describe())
	}

	if err := l.checkBallot(selections); err != nil {
		return err
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Friendly pre-check for the common case. The constraint below is
	// what actually closes the race.
	var hasVoted int
	err = tx.QueryRowContext(ctx, `
		SELECT has_voted FROM students WHERE student_id = $1
	`, sid).Scan(&hasVoted)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to query student: %w", err)
	}
	if err == nil && hasVoted == 1 {
		return ErrAlreadyVoted
	}

	now := time.Now()
	for _, category := range l.election.Categories {
		candidate := selections[category]

		// The votes table does not foreign-key candidate names, so the
		// ballot is checked against the register here, in the same
		// transaction as the insert.
		var exists bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM candidates WHERE name = $1 AND category = $2)
		`, candidate, category).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check candidate: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: %q is not standing for %s", ErrUnknownCandidate, candidate, category)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO votes (id, student_id, category, candidate, voted_at)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.NewString(), sid, category, candidate, now)
		if isUniqueViolation(err) {
			return ErrAlreadyVoted
		}
		if err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}
	}

	// A students row exists iff that student voted, so a plain INSERT is
	// the atomic state transition. INSERT OR REPLACE would reopen the race.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO students (student_id, has_voted, vote_timestamp)
		VALUES ($1, 1, $2)
	`, sid, now)
	if isUniqueViolation(err) {
		return ErrAlreadyVoted
	}
	if err != nil {
		return fmt.Errorf("failed to mark student voted: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ballot: %w", err)
	}
	return nil
}

// checkBallot rejects incomplete or mislabeled ballots before any
// store access.
func (l *Ledger) checkBallot(selections map[string]string) error {
	for category := range selections {
		if !l.election.ValidCategory(category) {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
		}
	}
	for _, category := range l.election.Categories {
		if selections[category] == "" {
			return fmt.Errorf("%w: missing %s", ErrIncompleteBallot, category)
		}
	}
	return nil
}
