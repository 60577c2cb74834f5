package app

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vk/argstore/internal/config"
	"github.com/vk/argstore/internal/format"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	errW       io.Writer
	logger     *slog.Logger
	config     *Config
	loader     config.Loader
	formatters *format.Registry

	now   func() time.Time
	runID func() string
}

// NewApp is the constructor for the main application. Records go to outW
// unless an output file is configured; logs, help and usage errors of the
// target program go to errW.
func NewApp(outW, errW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	formatters := format.NewRegistry()
	logger.Debug("Formatters registered.", "names", formatters.Names())

	return &App{
		outW:       outW,
		errW:       errW,
		logger:     logger,
		config:     cfg,
		loader:     loader,
		formatters: formatters,
		now:        time.Now,
		runID:      uuid.NewString,
	}
}

// Formatters returns the application's formatter registry, so that callers
// can add their own before Run.
func (a *App) Formatters() *format.Registry {
	return a.formatters
}
