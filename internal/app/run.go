package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vk/argstore/internal/argparse"
	"github.com/vk/argstore/internal/config"
	"github.com/vk/argstore/internal/ctxlog"
	"github.com/vk/argstore/internal/format"
	"github.com/vk/argstore/internal/metaparse"
)

// Run executes the main application logic based on the provided configuration.
// argparse.ErrHelp and usage errors of the target program are returned as is.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	if a.config.Invocation != "" {
		a.logger.Debug("argstore invocation.", "record", a.config.Invocation)
	}
	start := a.now()

	model, err := a.loadSchema(ctx)
	if err != nil {
		return err
	}

	var extra []metaparse.Option
	if a.config.Stamp {
		extra = append(extra, metaparse.WithEpilog(a.stampedEpilog(model.Record, start)))
	}

	parser, err := Build(ctx, model, a.formatters, a.errW, extra...)
	if err != nil {
		return fmt.Errorf("failed to build parser for %s: %w", model.Program, err)
	}

	ns, err := parser.Parse(a.config.ProgramArgs)
	if err != nil {
		if errors.Is(err, argparse.ErrHelp) {
			a.logger.Debug("Help requested, no record written.")
		}
		return err
	}
	defer func() {
		if err := ns.Close(); err != nil {
			a.logger.Warn("Failed to close argument files.", "error", err)
		}
	}()
	a.logger.Debug("Program arguments parsed.", "values", len(ns))

	record, err := parser.Render(ns)
	if err != nil {
		return fmt.Errorf("failed to render record: %w", err)
	}

	if err := a.writeRecord(record); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.", "elapsed", time.Since(start))
	return nil
}

// stampedEpilog appends the run id and start time to the root epilog.
func (a *App) stampedEpilog(r *config.Record, start time.Time) string {
	epilog := "\n"
	if r != nil && r.Epilog != nil {
		epilog = *r.Epilog
	}
	id := a.runID()
	a.logger.Debug("Run stamp created.", "run_id", id)
	stamp := fmt.Sprintf(" Run: %s\n Started: %s\n", id, start.Format(time.RFC3339))
	return epilog + format.Escape(stamp)
}

// writeRecord writes the record to stdout or to the configured file.
func (a *App) writeRecord(record string) error {
	path := a.config.OutPath
	if path == "-" {
		_, err := io.WriteString(a.outW, record)
		return err
	}

	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if a.config.Append {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	n, err := io.WriteString(f, record)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to write record to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write record to %s: %w", path, err)
	}

	a.logger.Info("Record written.", "path", path, "bytes", n, "append", a.config.Append)
	return nil
}
