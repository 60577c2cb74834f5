package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/vk/argstore/internal/app"
	"github.com/vk/argstore/internal/argparse"
	"github.com/vk/argstore/internal/format"
	"github.com/vk/argstore/internal/metaparse"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const description = `Parse a program's arguments against a schema file (.hcl or .toml) and
write a human-readable record of the invocation.`

const epilog = `Arguments after "--" are passed to the schema's program.`

// newParser declares argstore's own options.
func newParser(output io.Writer) *metaparse.Parser {
	p := metaparse.NewParser(argparse.Config{
		Prog:        "argstore",
		Description: description,
		Epilog:      epilog,
		Output:      output,
	}, metaparse.WithDescription(""), metaparse.WithEpilog(""))

	must(p.AddArgument(argparse.Spec{
		Flags:    []string{"-s", "--schema"},
		Required: true,
		Help:     "schema file describing the program's arguments",
	}))
	must(p.AddArgument(argparse.Spec{
		Flags: []string{"args"},
		Nargs: "*",
		Help:  "arguments of the described program",
	}, metaparse.FormatWith(format.Shell)))

	out := p.AddGroup("output", "Where the record goes.", metaparse.WithName("Output"))
	must(out.AddArgument(argparse.Spec{
		Flags:   []string{"-o", "--out"},
		Default: "-",
		Help:    `record file, "-" for stdout`,
	}))
	must(out.AddArgument(argparse.Spec{
		Flags: []string{"--append"},
		Kind:  argparse.KindBool,
		Help:  "append to the record file instead of truncating it",
	}))
	must(out.AddArgument(argparse.Spec{
		Flags: []string{"--stamp"},
		Kind:  argparse.KindBool,
		Help:  "add a run id and the start time to the record",
	}))

	logging := p.AddGroup("logging", "", metaparse.WithName("Logging"))
	must(logging.AddArgument(argparse.Spec{
		Flags:   []string{"--log-level"},
		Default: "info",
		Choices: []string{"debug", "info", "warn", "error"},
		Help:    "set the logging level",
	}))
	must(logging.AddArgument(argparse.Spec{
		Flags:   []string{"--log-format"},
		Default: "text",
		Choices: []string{"text", "json"},
		Help:    "log output format",
	}))
	return p
}

// must panics on declaration errors, which can only come from the
// declarations above.
func must(_ *argparse.Argument, err error) {
	if err != nil {
		panic(err)
	}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	p := newParser(output)

	ns, err := p.Parse(args)
	if err != nil {
		if errors.Is(err, argparse.ErrHelp) {
			return nil, true, nil
		}
		var vErr *argparse.ValidationError
		if errors.As(err, &vErr) {
			return nil, false, &ExitError{Code: vErr.Code, Message: vErr.Message}
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	// The logger configured by --log-level does not exist yet.
	invocation, err := p.Render(ns)
	if err != nil {
		slog.Warn("Failed to render invocation.", "error", err)
	}

	cfg, err := app.NewConfig(app.Config{
		SchemaPath:  ns["schema"].(string),
		OutPath:     ns["out"].(string),
		Append:      ns["append"].(bool),
		Stamp:       ns["stamp"].(bool),
		LogLevel:    ns["log_level"].(string),
		LogFormat:   ns["log_format"].(string),
		ProgramArgs: ns["args"].([]string),
		Invocation:  invocation,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: "argstore: error: " + err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
