package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/shdc/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("shdc", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
shdc - compiles shader feature variants with an external shader compiler.

Usage:
  shdc [options] [MANIFEST]

Arguments:
  MANIFEST
    Path to a .hcl or .toml build manifest, or a directory of them.
    Without a manifest the built-in batch is compiled.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", "", "Path to the build manifest file or directory.")
	mFlag := flagSet.String("m", "", "Path to the build manifest file or directory (shorthand).")
	compilerFlag := flagSet.String("compiler", "", "Compiler command, overrides the manifest.")
	workersFlag := flagSet.Int("workers", 1, "Number of compile jobs to run at once.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print compiler invocations without running them.")
	listFlag := flagSet.Bool("list", false, "Print the resolved jobs and exit.")
	reportFlag := flagSet.String("report", "", "Write a YAML batch report to this path.")
	initFlag := flagSet.String("init", "", "Write the loaded build as an HCL manifest to this path and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	switch {
	case *manifestFlag != "":
		path = *manifestFlag
	case *mFlag != "":
		path = *mFlag
	case flagSet.NArg() > 0:
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one manifest, got %d", flagSet.NArg())}
	}
	slog.Debug("Manifest path determined.", "path", path)

	config, err := app.NewConfig(app.Config{
		ManifestPath: path,
		Compiler:     *compilerFlag,
		Workers:      *workersFlag,
		DryRun:       *dryRunFlag,
		List:         *listFlag,
		ReportPath:   *reportFlag,
		InitPath:     *initFlag,
		LogFormat:    strings.ToLower(*logFormatFlag),
		LogLevel:     strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
