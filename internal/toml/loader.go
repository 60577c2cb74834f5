package toml

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vk/argstore/internal/config"
	"github.com/vk/argstore/internal/ctxlog"
)

// Loader is the TOML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new TOML schema loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes the schema file at path. Keys the schema does not know are
// rejected.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("TOML loader started.", "path", path)

	var root fileRoot
	md, err := toml.DecodeFile(path, &root)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("failed to decode TOML file %s: unsupported keys: %s", path, strings.Join(keys, ", "))
	}

	model, err := translateRoot(&root)
	if err != nil {
		return nil, fmt.Errorf("failed to translate TOML file %s: %w", path, err)
	}

	logger.Debug("TOML loading complete.", "program", model.Program, "arguments", model.ArgumentCount(), "groups", len(model.Groups))
	return model, nil
}
