package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"scalar/internal/store"
)

func (c *Client) GetDailyMeta(ctx context.Context, category string) (*store.DailyMeta, error) {
	query := `
	SELECT category, last_completed_date, current_streak, max_streak
	FROM daily_meta WHERE category = ?`

	var meta store.DailyMeta
	err := c.db.QueryRowContext(ctx, query, category).Scan(
		&meta.Category, &meta.LastCompletedDate, &meta.CurrentStreak, &meta.MaxStreak,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching daily meta: %w", err)
	}
	return &meta, nil
}

func (c *Client) SaveDailyMeta(ctx context.Context, meta store.DailyMeta) error {
	query := `
	INSERT INTO daily_meta (category, last_completed_date, current_streak, max_streak)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (category) DO UPDATE SET
		last_completed_date = excluded.last_completed_date,
		current_streak = excluded.current_streak,
		max_streak = excluded.max_streak`

	_, err := c.db.ExecContext(ctx, query,
		meta.Category, meta.LastCompletedDate, meta.CurrentStreak, meta.MaxStreak,
	)
	if err != nil {
		return fmt.Errorf("saving daily meta: %w", err)
	}
	return nil
}
