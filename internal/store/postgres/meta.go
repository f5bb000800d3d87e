package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"scalar/internal/store"
)

func (c *Client) GetDailyMeta(ctx context.Context, category string) (*store.DailyMeta, error) {
	query := `
	SELECT category, last_completed_date, current_streak, max_streak
	FROM daily_meta WHERE category = $1`

	var meta store.DailyMeta
	err := c.pool.QueryRow(ctx, query, category).Scan(
		&meta.Category, &meta.LastCompletedDate, &meta.CurrentStreak, &meta.MaxStreak,
	)
	if errors.Is(err, pgx.ErrNoRows) {
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
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (category) DO UPDATE SET
		last_completed_date = EXCLUDED.last_completed_date,
		current_streak = EXCLUDED.current_streak,
		max_streak = EXCLUDED.max_streak`

	_, err := c.pool.Exec(ctx, query,
		meta.Category, meta.LastCompletedDate, meta.CurrentStreak, meta.MaxStreak,
	)
	if err != nil {
		return fmt.Errorf("saving daily meta: %w", err)
	}
	return nil
}
