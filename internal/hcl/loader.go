package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/argstore/internal/config"
	"github.com/vk/argstore/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL schema loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses and decodes the schema file at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model, err := translateRoot(&root)
	if err != nil {
		return nil, fmt.Errorf("failed to translate HCL file %s: %w", path, err)
	}

	logger.Debug("HCL loading complete.", "program", model.Program, "arguments", model.ArgumentCount(), "groups", len(model.Groups))
	return model, nil
}
