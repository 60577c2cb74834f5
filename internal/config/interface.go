package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vk/argstore/internal/ctxlog"
	"github.com/vk/argstore/internal/fsutil"
)

// Loader is the interface for a format-specific schema loader.
type Loader interface {
	// Load reads the schema at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Model, error)
}

// ByExtension selects a Loader by file extension, including the dot. A
// directory is searched for the one schema file it must contain.
type ByExtension map[string]Loader

// Extensions returns the supported extensions in sorted order.
func (b ByExtension) Extensions() []string {
	exts := make([]string, 0, len(b))
	for e := range b {
		exts = append(exts, e)
	}
	slices.Sort(exts)
	return exts
}

// Load implements Loader.
func (b ByExtension) Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		resolved, err := b.find(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("Schema file found in directory.", "dir", path, "path", resolved)
		path = resolved
	}

	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := b[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported schema file %s: expected one of %s", path, strings.Join(b.Extensions(), ", "))
	}
	logger.Debug("Loader selected.", "path", path, "extension", ext)
	return loader.Load(ctx, path)
}

func (b ByExtension) find(dir string) (string, error) {
	files, err := fsutil.FindFilesByExtension(dir, b.Extensions()...)
	if err != nil {
		return "", fmt.Errorf("failed to search %s for schema files: %w", dir, err)
	}
	switch len(files) {
	case 0:
		return "", fmt.Errorf("no schema file (%s) found in %s", strings.Join(b.Extensions(), ", "), dir)
	case 1:
		return files[0], nil
	}
	return "", fmt.Errorf("more than one schema file found in %s: %s", dir, strings.Join(files, ", "))
}
