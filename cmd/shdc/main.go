package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/specialistvlad/shdc/internal/app"
	"github.com/specialistvlad/shdc/internal/cli"
	"github.com/specialistvlad/shdc/internal/report"
)

// main is the entrypoint for the shdc application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Configuration problems come back as an ExitError with code 2;
// a batch with failed or skipped jobs comes back as its *report.BatchError.
func run(ctx context.Context, outW, errW io.Writer, args []string) (err error) {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// A malformed built-in catalog panics; report it instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = &cli.ExitError{Code: 2, Message: fmt.Sprintf("application startup panicked: %v", r)}
		}
	}()

	shdc, err := app.New(outW, cfg, app.WithLogOutput(errW), app.WithDiagnostics(errW))
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	err = shdc.Run(ctx)
	var batchErr *report.BatchError
	if errors.As(err, &batchErr) {
		return &cli.ExitError{Code: 1, Message: batchErr.Error()}
	}
	return err
}
