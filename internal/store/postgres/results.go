package postgres

import (
	"context"
	"fmt"

	"scalar/internal/store"
)

func (c *Client) RecordResult(ctx context.Context, result store.ResultRecord) error {
	query := `
	INSERT INTO results (mode, category, date, target_id, moves, solved, rank, completed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, now())`

	_, err := c.pool.Exec(ctx, query,
		result.Mode, result.Category, result.Date, result.TargetID,
		result.Moves, result.Solved, result.Rank,
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
	WHERE ($1 = '' OR category = $1)
	ORDER BY id DESC
	LIMIT $2`

	if limit <= 0 {
		limit = 50
	}

	rows, err := c.pool.Query(ctx, query, category, limit)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	defer rows.Close()

	var results []store.ResultRecord
	for rows.Next() {
		var result store.ResultRecord
		err := rows.Scan(&result.Mode, &result.Category, &result.Date, &result.TargetID,
			&result.Moves, &result.Solved, &result.Rank, &result.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
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
	       COALESCE(SUM(CASE WHEN solved THEN 1 ELSE 0 END), 0),
	       COALESCE(SUM(CASE WHEN solved THEN 0 ELSE 1 END), 0),
	       COALESCE(MIN(CASE WHEN solved THEN moves END), 0),
	       COALESCE(SUM(CASE WHEN solved THEN moves ELSE 0 END), 0)
	FROM results
	WHERE ($1 = '' OR category = $1)`

	var stats store.Stats
	err := c.pool.QueryRow(ctx, query, category).Scan(
		&stats.Played, &stats.Solved, &stats.Revealed, &stats.BestMoves, &stats.TotalMoves,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregating stats: %w", err)
	}
	return &stats, nil
}
