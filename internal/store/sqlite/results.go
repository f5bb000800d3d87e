package sqlite

import (
	"context"
	"fmt"
	"time"

	"scalar/internal/store"
)

func (c *Client) RecordResult(ctx context.Context, result store.ResultRecord) error {
	query := `
	INSERT INTO results (mode, category, date, target_id, moves, solved, rank, completed_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, datetime('now'))`

	solved := 0
	if result.Solved {
		solved = 1
	}
	_, err := c.db.ExecContext(ctx, query,
		result.Mode, result.Category, result.Date, result.TargetID,
		result.Moves, solved, result.Rank,
	)
	if err != nil {
		return fmt.Errorf("recording result: %w", err)
	}
	return nil
}

func (c *Client) ListResults(ctx context.Context, category string, limit int) ([]store.ResultRecord, error) {
	query := `
	SELECT mode, category, date, target_id, moves, solved, rank, completed_at
	FROM results
	WHERE (? = '' OR category = ?)
	ORDER BY id DESC
	LIMIT ?`

	if limit <= 0 {
		limit = 50
	}

	rows, err := c.db.QueryContext(ctx, query, category, category, limit)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	defer rows.Close()

	var results []store.ResultRecord
	for rows.Next() {
		var result store.ResultRecord
		var solved int
		var completedAt string
		err := rows.Scan(&result.Mode, &result.Category, &result.Date, &result.TargetID,
			&result.Moves, &solved, &result.Rank, &completedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		result.Solved = solved != 0
		if parsed, err := time.Parse("2006-01-02 15:04:05", completedAt); err == nil {
			result.CompletedAt = parsed
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}

	if results == nil {
		results = []store.ResultRecord{}
	}
	return results, nil
}

func (c *Client) Stats(ctx context.Context, category string) (*store.Stats, error) {
	query := `
	SELECT COUNT(*),
	       COALESCE(SUM(solved), 0),
	       COALESCE(SUM(CASE WHEN solved = 0 THEN 1 ELSE 0 END), 0),
	       COALESCE(MIN(CASE WHEN solved = 1 THEN moves END), 0),
	       COALESCE(SUM(CASE WHEN solved = 1 THEN moves ELSE 0 END), 0)
	FROM results
	WHERE (? = '' OR category = ?)`

	var stats store.Stats
	err := c.db.QueryRowContext(ctx, query, category, category).Scan(
		&stats.Played, &stats.Solved, &stats.Revealed, &stats.BestMoves, &stats.TotalMoves,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregating stats: %w", err)
	}
	return &stats, nil
}
