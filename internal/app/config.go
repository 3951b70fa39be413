package app

import "errors"

// Config holds everything an App instance needs to run. It is assembled by
// the CLI layer (flags merged over an optional job file) and passed in
// explicitly; no component reads ambient configuration.
type Config struct {
	// TargetDir is scanned recursively for .cnf files.
	TargetDir string
	// OutputDir enables fixing when non-empty.
	OutputDir string

	SummaryPath string
	DetailsPath string

	Workers   int
	LogFormat string
	LogLevel  string
	// Quiet suppresses the progress line.
	Quiet bool
}

// NewConfig validates a Config and applies fallbacks.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.TargetDir == "" {
		return nil, errors.New("a target directory is required")
	}
	if cfg.Workers < 1 {
		return nil, errors.New("workers must be at least 1")
	}
	if cfg.SummaryPath == "" {
		cfg.SummaryPath = "validation_summary.log"
	}
	if cfg.DetailsPath == "" {
		cfg.DetailsPath = "validation_details.log"
	}
	return &cfg, nil
}
