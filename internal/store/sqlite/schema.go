package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS slots (
		mode       TEXT NOT NULL,
		category   TEXT NOT NULL,
		target_id  TEXT NOT NULL,
		guess_ids  TEXT DEFAULT '[]',
		status     TEXT NOT NULL,
		moves      INTEGER DEFAULT 0,
		credits    INTEGER DEFAULT 0,
		hint_keys  TEXT DEFAULT '[]',
		daily_date TEXT DEFAULT '',
		updated_at TEXT DEFAULT (datetime('now')),
		CONSTRAINT pk_slot PRIMARY KEY (mode, category)
	);

	CREATE TABLE IF NOT EXISTS daily_meta (
		category            TEXT PRIMARY KEY,
		last_completed_date TEXT DEFAULT '',
		current_streak      INTEGER DEFAULT 0,
		max_streak          INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS results (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		mode         TEXT NOT NULL,
		category     TEXT NOT NULL,
		date         TEXT DEFAULT '',
		target_id    TEXT NOT NULL,
		moves        INTEGER NOT NULL,
		solved       INTEGER NOT NULL,
		rank         TEXT DEFAULT '',
		completed_at TEXT DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_results_category ON results (category);
	CREATE INDEX IF NOT EXISTS idx_results_completed ON results (completed_at);
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return statements
}
