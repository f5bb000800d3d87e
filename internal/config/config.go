package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Game     GameConfig     `yaml:"game"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"`
	BaseURL  string `yaml:"base_url"`
}

type GameConfig struct {
	DataDir         string `yaml:"data_dir"`
	Schema          string `yaml:"schema"`
	DefaultCategory string `yaml:"default_category"`
	Credits         int    `yaml:"credits"`
	HintMoveCost    int    `yaml:"hint_move_cost"`
	DistanceUnit    string `yaml:"distance_unit"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "sqlite://scalar.db"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Game.DataDir == "" {
		cfg.Game.DataDir = "./data"
	}
	if cfg.Game.Schema == "" {
		cfg.Game.Schema = "schema.yaml"
	}
	if cfg.Game.Credits == 0 {
		cfg.Game.Credits = 3
	}
	if cfg.Game.HintMoveCost == 0 {
		cfg.Game.HintMoveCost = 3
	}
	if cfg.Game.DistanceUnit == "" {
		cfg.Game.DistanceUnit = "km"
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if cfg.Game.DistanceUnit != "km" && cfg.Game.DistanceUnit != "mi" {
		return fmt.Errorf("invalid distance unit: %s", cfg.Game.DistanceUnit)
	}
	if cfg.Game.Credits < 0 {
		return fmt.Errorf("credits must not be negative")
	}
	if cfg.Game.HintMoveCost < 0 {
		return fmt.Errorf("hint move cost must not be negative")
	}
	return nil
}
