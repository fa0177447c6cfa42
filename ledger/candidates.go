// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/class-ballot/auth"
	"github.com/danielhkuo/class-ballot/models"
)

// AddCandidate registers a candidate for a category. Uniqueness of
// (name, category) is enforced by the schema constraint rather than a
// pre-check, so two admin sessions adding the same name cannot race.
// The action is written to the audit log in the same transaction.
func (l *Ledger) AddCandidate(ctx context.Context, admin, name, category string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCandidate)
	}
	if !l.election.ValidCategory(category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	id, err := auth.GenerateID(12)
	if err != nil {
		return fmt.Errorf("failed to generate candidate ID: %w", err)
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO candidates (id, name, category, added_at)
		VALUES ($1, $2, $3, $4)
	`, id, name, category, time.Now())
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q in %s", ErrDuplicateCandidate, name, category)
	}
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}

	if err := logAction(ctx, tx, admin, models.ActionAddCandidate, map[string]string{
		"name": name, "category": category,
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// DeleteCandidate removes a candidate, but only if nobody has voted for
// them. The count check and the delete share one transaction so a vote
// recorded concurrently cannot slip past the guard.
func (l *Ledger) DeleteCandidate(ctx context.Context, admin, name, category string) error {
	name = strings.TrimSpace(name)

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var voteCount int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM votes WHERE candidate = $1 AND category = $2
	`, name, category).Scan(&voteCount)
	if err != nil {
		return fmt.Errorf("failed to count votes: %w", err)
	}
	if voteCount > 0 {
		return fmt.Errorf("%w: cannot delete %q from %s, they have received %d vote(s)",
			ErrCandidateHasVotes, name, category, voteCount)
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM candidates WHERE name = $1 AND category = $2
	`, name, category)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q in %s", ErrCandidateNotFound, name, category)
	}

	if err := logAction(ctx, tx, admin, models.ActionDeleteCandidate, map[string]string{
		"name": name, "category": category,
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// ListCandidates returns the candidate names standing in one category,
// ordered by name.
func (l *Ledger) ListCandidates(ctx context.Context, category string) ([]string, error) {
	if !l.election.ValidCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT name FROM candidates WHERE category = $1 ORDER BY name
	`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// AllCandidates returns every candidate with their current vote count,
// ordered by category then name. Admin view.
func (l *Ledger) AllCandidates(ctx context.Context) ([]models.Candidate, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.category, c.added_at, COUNT(v.id)
		FROM candidates c
		LEFT JOIN votes v ON v.candidate = c.name AND v.category = c.category
		GROUP BY c.id, c.name, c.category, c.added_at
		ORDER BY c.category, c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.AddedAt, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
