package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SchemaPath string // hcl or toml file
	OutPath    string // "-" is stdout
	Append     bool
	Stamp      bool

	LogFormat string
	LogLevel  string

	// ProgramArgs are parsed against the schema.
	ProgramArgs []string

	// Invocation is argstore's own command line rendered as a record. It is
	// logged at debug level.
	Invocation string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.SchemaPath == "" {
		return nil, errors.New("SchemaPath is a required configuration field and cannot be empty")
	}
	if cfg.OutPath == "" {
		cfg.OutPath = "-"
	}
	if cfg.Append && cfg.OutPath == "-" {
		return nil, fmt.Errorf("append requires an output file")
	}
	return &cfg, nil
}
