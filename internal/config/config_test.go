package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectConfig(t *testing.T) {
	t.Run("minimal config gets defaults", func(t *testing.T) {
		path := writeTempConfig(t, "project: scalar\nversion: 1\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Database.DSN != "sqlite://scalar.db" {
			t.Fatalf("unexpected default DSN: %s", cfg.Database.DSN)
		}
		if cfg.Server.Addr != ":8080" {
			t.Fatalf("unexpected default addr: %s", cfg.Server.Addr)
		}
		if cfg.Game.Credits != 3 || cfg.Game.HintMoveCost != 3 {
			t.Fatalf("unexpected hint defaults: %d / %d", cfg.Game.Credits, cfg.Game.HintMoveCost)
		}
		if cfg.Game.DistanceUnit != "km" {
			t.Fatalf("unexpected default unit: %s", cfg.Game.DistanceUnit)
		}
	})

	t.Run("missing project name", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeTempConfig(t, "project: scalar\nversion: 3\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid distance unit", func(t *testing.T) {
		path := writeTempConfig(t, "project: scalar\nversion: 1\ngame:\n  distance_unit: furlongs\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("explicit values survive", func(t *testing.T) {
		path := writeTempConfig(t, "project: scalar\nversion: 1\ndatabase:\n  dsn: postgres://localhost/scalar\nserver:\n  addr: :9090\ngame:\n  default_category: elements\n  distance_unit: mi\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Database.DSN != "postgres://localhost/scalar" {
			t.Fatalf("DSN overridden: %s", cfg.Database.DSN)
		}
		if cfg.Server.Addr != ":9090" || cfg.Game.DefaultCategory != "elements" || cfg.Game.DistanceUnit != "mi" {
			t.Fatalf("explicit values lost: %+v", cfg)
		}
	})
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scalar.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
