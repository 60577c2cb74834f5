package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/argstore/internal/config"
	"github.com/vk/argstore/internal/ctxlog"
)

// loadSchema loads and validates the configured schema. A schema without a
// program name is named after the schema path.
func (a *App) loadSchema(ctx context.Context) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading schema...", "schema_path", a.config.SchemaPath)

	model, err := a.loader.Load(ctx, a.config.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", a.config.SchemaPath, err)
	}

	if model.Program == "" {
		base := filepath.Base(a.config.SchemaPath)
		model.Program = strings.TrimSuffix(base, filepath.Ext(base))
		logger.Debug("Program name derived from schema file.", "program", model.Program)
	}

	logger.Info("Schema loaded successfully.", "program", model.Program, "arguments_found", model.ArgumentCount())
	return model, nil
}
