package main

import (
	"context"

	"scalar/internal/catalog"
	"scalar/internal/config"
	"scalar/internal/session"
	"scalar/internal/store"
)

const configPath = "scalar.yaml"

// app bundles everything a game command needs.
type app struct {
	cfg     *config.ProjectConfig
	catalog *catalog.Catalog
	store   store.Store
	manager *session.Manager
}

func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return nil, err
	}

	schema, err := config.LoadGameSchema(cfg.Game.Schema)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(schema, cfg.Game.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := openStore(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close(ctx)
		return nil, err
	}

	return &app{
		cfg:     cfg,
		catalog: cat,
		store:   db,
		manager: session.New(cat, db, cfg),
	}, nil
}

func (a *app) close(ctx context.Context) {
	a.store.Close(ctx)
}

// category resolves the flag value, falling back to the configured default
// and then to the first schema category.
func (a *app) category(flag string) string {
	if flag != "" {
		return flag
	}
	if a.cfg.Game.DefaultCategory != "" {
		return a.cfg.Game.DefaultCategory
	}
	if len(a.catalog.Schema().Categories) > 0 {
		return a.catalog.Schema().Categories[0].Name
	}
	return ""
}
