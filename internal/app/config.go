package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string // .hcl/.toml file or directory; empty runs the built-in batch
	Compiler     string // overrides the manifest compiler command when set

	Workers    int
	DryRun     bool
	List       bool
	ReportPath string
	InitPath   string // writes the loaded build as an HCL manifest instead of compiling

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	if cfg.InitPath != "" && (cfg.List || cfg.DryRun) {
		return nil, errors.New("-init cannot be combined with -list or -dry-run")
	}
	if cfg.List && cfg.DryRun {
		return nil, errors.New("-list and -dry-run cannot be combined")
	}
	return &cfg, nil
}
