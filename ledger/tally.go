// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"

	"github.com/danielhkuo/class-ballot/models"
)

// VoteCounts returns every candidate's vote count per category, ordered
// by category and descending count (name breaks count ties for a
// stable order).
func (l *Ledger) VoteCounts(ctx context.Context) ([]models.VoteCount, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT category, candidate, COUNT(*) AS votes
		FROM votes
		GROUP BY category, candidate
		ORDER BY category, votes DESC, candidate
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote counts: %w", err)
	}
	defer rows.Close()

	counts := []models.VoteCount{}
	for rows.Next() {
		var c models.VoteCount
		if err := rows.Scan(&c.Category, &c.Candidate, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Winners computes, per category, the set of candidates tied at the
// maximum vote count. Categories without any votes are omitted; ties
// are returned whole, never broken.
func (l *Ledger) Winners(ctx context.Context) ([]models.CategoryResult, error) {
	results := []models.CategoryResult{}

	for _, category := range l.election.Categories {
		rows, err := l.db.QueryContext(ctx, `
			SELECT candidate, COUNT(*) AS votes
			FROM votes
			WHERE category = $1
			GROUP BY candidate
			ORDER BY votes DESC, candidate
		`, category)
		if err != nil {
			return nil, fmt.Errorf("failed to query winners for %s: %w", category, err)
		}

		result := models.CategoryResult{Category: category}
		for rows.Next() {
			var candidate string
			var votes int
			if err := rows.Scan(&candidate, &votes); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan winner: %w", err)
			}
			if len(result.Winners) == 0 {
				result.Votes = votes
			}
			if votes == result.Votes {
				result.Winners = append(result.Winners, candidate)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()

		if len(result.Winners) > 0 {
			results = append(results, result)
		}
	}

	return results, nil
}

// VotingStats summarizes turnout for the admin dashboard. The eligible
// total is derived from the configured ID range, not a constant.
func (l *Ledger) VotingStats(ctx context.Context) (models.VotingStats, error) {
	stats := models.VotingStats{
		Eligible:       l.election.IDScheme.EligibleCount(),
		CategoryCounts: make(map[string]int, len(l.election.Categories)),
	}
	for _, category := range l.election.Categories {
		stats.CategoryCounts[category] = 0
	}

	err := l.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM students WHERE has_voted = 1
	`).Scan(&stats.Voted)
	if err != nil {
		return models.VotingStats{}, fmt.Errorf("failed to count voters: %w", err)
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM votes GROUP BY category
	`)
	if err != nil {
		return models.VotingStats{}, fmt.Errorf("failed to count votes by category: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return models.VotingStats{}, fmt.Errorf("failed to scan category count: %w", err)
		}
		stats.CategoryCounts[category] = count
	}
	if err := rows.Err(); err != nil {
		return models.VotingStats{}, err
	}

	stats.Pending = stats.Eligible - stats.Voted
	if stats.Eligible > 0 {
		stats.TurnoutPercent = float64(stats.Voted) / float64(stats.Eligible) * 100
	}
	return stats, nil
}
