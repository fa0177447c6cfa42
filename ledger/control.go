// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/class-ballot/models"
)

const adminLogLimit = 100

// PublishResults flips the one-way published flag, recording who
// published and when. Publishing an already-published election is a
// strict no-op: the original timestamp and admin stand, and nothing is
// re-logged.
func (l *Ledger) PublishResults(ctx context.Context, admin string) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		UPDATE control
		SET published = 1, published_at = $1, publish_admin = $2
		WHERE id = 1 AND published = 0
	`, now, admin)
	if err != nil {
		return fmt.Errorf("failed to publish results: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		// Already published.
		return nil
	}

	if err := logAction(ctx, tx, admin, models.ActionPublishResults, map[string]string{
		"timestamp": now.Format(time.RFC3339),
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// PublishStatus returns the current publish flag with its metadata.
func (l *Ledger) PublishStatus(ctx context.Context) (models.PublishStatus, error) {
	var published int
	var publishedAt sql.NullTime
	var publishedBy sql.NullString

	err := l.db.QueryRowContext(ctx, `
		SELECT published, published_at, publish_admin FROM control WHERE id = 1
	`).Scan(&published, &publishedAt, &publishedBy)
	if err == sql.ErrNoRows {
		return models.PublishStatus{}, nil
	}
	if err != nil {
		return models.PublishStatus{}, fmt.Errorf("failed to query publish status: %w", err)
	}

	status := models.PublishStatus{Published: published == 1}
	if publishedAt.Valid {
		t := publishedAt.Time
		status.PublishedAt = &t
	}
	if publishedBy.Valid {
		s := publishedBy.String
		status.PublishedBy = &s
	}
	return status, nil
}

// ResetElection wipes votes, students, and candidates and returns the
// control row to unpublished. Irreversible. The audit log is the one
// table a reset never touches, and the reset itself is logged, so the
// trail records who wiped the election.
func (l *Ledger) ResetElection(ctx context.Context, admin string) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM votes`,
		`DELETE FROM students`,
		`DELETE FROM candidates`,
		`UPDATE control SET published = 0, published_at = NULL, publish_admin = NULL WHERE id = 1`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to reset election: %w", err)
		}
	}

	if err := logAction(ctx, tx, admin, models.ActionResetElection, map[string]string{
		"timestamp": time.Now().Format(time.RFC3339),
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}

// LogAdminAction appends an entry to the audit trail. Details are
// stored as JSON.
func (l *Ledger) LogAdminAction(ctx context.Context, admin, action string, details any) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode log details: %w", err)
	}
	_, err = l.db.ExecContext(ctx, `
		INSERT INTO admin_logs (id, admin_user, action, details, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), admin, action, string(detailsJSON), time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert admin log: %w", err)
	}
	return nil
}

// AdminLogs returns audit entries newest-first. limit <= 0 or above the
// cap falls back to the default of 100.
func (l *Ledger) AdminLogs(ctx context.Context, limit int) ([]models.AdminLogEntry, error) {
	if limit <= 0 || limit > adminLogLimit {
		limit = adminLogLimit
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, admin_user, action, details, timestamp
		FROM admin_logs
		ORDER BY timestamp DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin logs: %w", err)
	}
	defer rows.Close()

	logs := []models.AdminLogEntry{}
	for rows.Next() {
		var entry models.AdminLogEntry
		var details sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Admin, &entry.Action, &details, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan admin log: %w", err)
		}
		if details.Valid {
			entry.Details = json.RawMessage(details.String)
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

// logAction writes an audit entry inside an existing transaction so the
// action and its log line commit together.
func logAction(ctx context.Context, tx *sql.Tx, admin, action string, details any) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode log details: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO admin_logs (id, admin_user, action, details, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), admin, action, string(detailsJSON), time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert admin log: %w", err)
	}
	return nil
}
