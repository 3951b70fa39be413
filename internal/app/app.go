package app

import (
	"fmt"
	"io"
	"log/slog"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp constructs the application with its own isolated logger.
func NewApp(outW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	logger.Debug("Logger configured successfully.")
	return &App{
		outW:   outW,
		logger: logger,
		config: config,
	}
}

// FailedFilesError is returned by Run when the batch completed but some
// files failed validation; the CLI maps it to a nonzero exit.
type FailedFilesError struct {
	Failed int
	Total  int
}

func (e *FailedFilesError) Error() string {
	return fmt.Sprintf("%d of %d files failed validation", e.Failed, e.Total)
}
