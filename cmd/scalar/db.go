package main

import (
	"context"
	"fmt"
	"strings"

	"scalar/internal/store"
	"scalar/internal/store/postgres"
	"scalar/internal/store/sqlite"
)

// openStore dispatches on the DSN scheme: sqlite:// for the embedded local
// database, postgres:// for server deployments.
func openStore(ctx context.Context, dsn string) (store.Store, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.New(ctx, dsn)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.New(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database DSN: %s", dsn)
	}
}
