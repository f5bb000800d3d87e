package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS slots (
    mode       TEXT NOT NULL,
    category   TEXT NOT NULL,
    target_id  TEXT NOT NULL,
    guess_ids  TEXT[] DEFAULT '{}',
    status     TEXT NOT NULL,
    moves      INTEGER DEFAULT 0,
    credits    INTEGER DEFAULT 0,
    hint_keys  TEXT[] DEFAULT '{}',
    daily_date TEXT DEFAULT '',
    updated_at TIMESTAMPTZ DEFAULT now(),
    CONSTRAINT pk_slot PRIMARY KEY (mode, category)
);

CREATE TABLE IF NOT EXISTS daily_meta (
    category            TEXT PRIMARY KEY,
    last_completed_date TEXT DEFAULT '',
    current_streak      INTEGER DEFAULT 0,
    max_streak          INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS results (
    id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    mode         TEXT NOT NULL,
    category     TEXT NOT NULL,
    date         TEXT DEFAULT '',
    target_id    TEXT NOT NULL,
    moves        INTEGER NOT NULL,
    solved       BOOLEAN NOT NULL,
    rank         TEXT DEFAULT '',
    completed_at TIMESTAMPTZ DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_results_category ON results (category);
CREATE INDEX IF NOT EXISTS idx_results_completed ON results (completed_at);
`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
