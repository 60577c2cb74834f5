package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/argstore/internal/app"
	"github.com/vk/argstore/internal/argparse"
	"github.com/vk/argstore/internal/cli"
	"github.com/vk/argstore/internal/config"
	"github.com/vk/argstore/internal/hcl"
	"github.com/vk/argstore/internal/toml"
)

// main is the entrypoint for the argstore application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		os.Exit(exitCode(err, os.Stderr))
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Schema loaders are picked by file extension.
	loader := config.ByExtension{
		".hcl":  hcl.NewLoader(),
		".toml": toml.NewLoader(),
	}
	argstoreApp := app.NewApp(outW, errW, appConfig, loader)

	err = argstoreApp.Run(context.Background())
	if errors.Is(err, argparse.ErrHelp) {
		return nil
	}
	return err
}

// exitCode reports err and returns the process exit code for it: the code
// carried by the error, or 1.
func exitCode(err error, errW io.Writer) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(errW, exitErr.Message)
		return exitErr.Code
	}
	fmt.Fprintln(errW, err)
	var vErr *argparse.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Code
	}
	return 1
}
