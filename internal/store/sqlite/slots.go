package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"scalar/internal/store"
)

func (c *Client) GetSlot(ctx context.Context, mode, category string) (*store.SlotRecord, error) {
	query := `
	SELECT mode, category, target_id, guess_ids, status, moves, credits, hint_keys, daily_date, updated_at
	FROM slots WHERE mode = ? AND category = ?`

	var slot store.SlotRecord
	var guessIDs, hintKeys, updatedAt string
	err := c.db.QueryRowContext(ctx, query, mode, category).Scan(
		&slot.Mode, &slot.Category, &slot.TargetID, &guessIDs, &slot.Status,
		&slot.Moves, &slot.Credits, &hintKeys, &slot.DailyDate, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching slot: %w", err)
	}

	if err := json.Unmarshal([]byte(guessIDs), &slot.GuessIDs); err != nil {
		return nil, fmt.Errorf("unmarshaling guess ids: %w", err)
	}
	if err := json.Unmarshal([]byte(hintKeys), &slot.HintKeys); err != nil {
		return nil, fmt.Errorf("unmarshaling hint keys: %w", err)
	}
	if parsed, err := time.Parse("2006-01-02 15:04:05", updatedAt); err == nil {
		slot.UpdatedAt = parsed
	}

	return &slot, nil
}

func (c *Client) SaveSlot(ctx context.Context, slot store.SlotRecord) error {
	guessIDs, err := json.Marshal(emptyIfNil(slot.GuessIDs))
	if err != nil {
		return fmt.Errorf("marshaling guess ids: %w", err)
	}
	hintKeys, err := json.Marshal(emptyIfNil(slot.HintKeys))
	if err != nil {
		return fmt.Errorf("marshaling hint keys: %w", err)
	}

	query := `
	INSERT INTO slots (mode, category, target_id, guess_ids, status, moves, credits, hint_keys, daily_date, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
	ON CONFLICT (mode, category) DO UPDATE SET
		target_id = excluded.target_id,
		guess_ids = excluded.guess_ids,
		status = excluded.status,
		moves = excluded.moves,
		credits = excluded.credits,
		hint_keys = excluded.hint_keys,
		daily_date = excluded.daily_date,
		updated_at = excluded.updated_at`

	_, err = c.db.ExecContext(ctx, query,
		slot.Mode, slot.Category, slot.TargetID, string(guessIDs), slot.Status,
		slot.Moves, slot.Credits, string(hintKeys), slot.DailyDate,
	)
	if err != nil {
		return fmt.Errorf("saving slot: %w", err)
	}
	return nil
}

func (c *Client) DeleteSlot(ctx context.Context, mode, category string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM slots WHERE mode = ? AND category = ?`, mode, category)
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
