package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"scalar/internal/store"
)

func (c *Client) GetSlot(ctx context.Context, mode, category string) (*store.SlotRecord, error) {
	query := `
	SELECT mode, category, target_id, guess_ids, status, moves, credits, hint_keys, daily_date, updated_at
	FROM slots WHERE mode = $1 AND category = $2`

	var slot store.SlotRecord
	err := c.pool.QueryRow(ctx, query, mode, category).Scan(
		&slot.Mode, &slot.Category, &slot.TargetID, &slot.GuessIDs, &slot.Status,
		&slot.Moves, &slot.Credits, &slot.HintKeys, &slot.DailyDate, &slot.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching slot: %w", err)
	}
	return &slot, nil
}

func (c *Client) SaveSlot(ctx context.Context, slot store.SlotRecord) error {
	query := `
	INSERT INTO slots (mode, category, target_id, guess_ids, status, moves, credits, hint_keys, daily_date, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
	ON CONFLICT (mode, category) DO UPDATE SET
		target_id = EXCLUDED.target_id,
		guess_ids = EXCLUDED.guess_ids,
		status = EXCLUDED.status,
		moves = EXCLUDED.moves,
		credits = EXCLUDED.credits,
		hint_keys = EXCLUDED.hint_keys,
		daily_date = EXCLUDED.daily_date,
		updated_at = EXCLUDED.updated_at`

	_, err := c.pool.Exec(ctx, query,
		slot.Mode, slot.Category, slot.TargetID, emptyIfNil(slot.GuessIDs), slot.Status,
		slot.Moves, slot.Credits, emptyIfNil(slot.HintKeys), slot.DailyDate,
	)
	if err != nil {
		return fmt.Errorf("saving slot: %w", err)
	}
	return nil
}

func (c *Client) DeleteSlot(ctx context.Context, mode, category string) error {
	_, err := c.pool.Exec(ctx, `DELETE FROM slots WHERE mode = $1 AND category = $2`, mode, category)
	if err != nil {
		return fmt.Errorf("deleting slot: %w", err)
	}
	return nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
