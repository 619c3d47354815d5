package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/specialistvlad/shdc/internal/ctxlog"
	"github.com/specialistvlad/shdc/internal/executor"
	"github.com/specialistvlad/shdc/internal/hcl"
	"github.com/specialistvlad/shdc/internal/process"
)

// Run compiles every resolved job. It returns a *report.BatchError when any
// job failed or was skipped.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.InitPath != "" {
		if err := hcl.WriteFile(a.config.InitPath, a.model, a.resolver.Catalog()); err != nil {
			return err
		}
		a.logger.Info("Manifest written.", "path", a.config.InitPath)
		return nil
	}
	if a.config.List {
		return a.list()
	}
	if len(a.jobs) == 0 {
		a.logger.Warn("No shader entries found, nothing to compile.")
		return nil
	}

	inv := a.invoker
	if a.config.DryRun {
		inv = &process.PrintOnly{W: a.outW}
	}
	exec, err := executor.New(inv, a.model.Layout, a.model.Compiler,
		executor.WithWorkers(a.config.Workers),
		executor.WithDiagnostics(a.diagW),
	)
	if err != nil {
		return err
	}

	batch := exec.Execute(ctx, a.jobs)

	if !a.config.DryRun {
		if err := batch.WriteSummary(a.outW); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	if a.config.ReportPath != "" {
		if err := batch.SaveYAML(a.config.ReportPath, a.resolver.Params(), time.Now()); err != nil {
			return err
		}
		a.logger.Info("Batch report written.", "path", a.config.ReportPath)
	}

	a.logger.Debug("App.Run method finished.")
	return batch.Err()
}

// list prints every resolved job with its paths and defines.
func (a *App) list() error {
	lay := a.model.Layout
	for _, job := range a.jobs {
		_, err := fmt.Fprintf(a.outW, "%s\n  input:   %s\n  output:  %s\n  defines: %s\n",
			job, lay.InputPath(job), lay.OutputPath(job), strings.Join(job.Defines, " "))
		if err != nil {
			return err
		}
	}
	return nil
}
