package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/specialistvlad/shdc/internal/ctxlog"
	"github.com/specialistvlad/shdc/internal/report"
	"github.com/specialistvlad/shdc/internal/variant"
)

// run compiles a single job.
func (e *Executor) run(ctx context.Context, index int, job variant.Job) report.Result {
	res := report.NewResult(index, job)
	res.Input = e.layout.InputPath(job)
	res.Artifact = e.layout.OutputPath(job)
	res.Argv = e.Args(job)

	logger := ctxlog.FromContext(ctx).With(
		"stage", job.Stage.String(),
		"source", job.Source,
		"variant", res.Variant,
		"output", res.Artifact,
	)

	if err := ctx.Err(); err != nil {
		logger.Warn("Compile job skipped.", "reason", err)
		res.Status = report.StatusSkipped
		res.Error = err.Error()
		return res
	}

	logger.Debug("Invoking compiler.", "argv", res.Argv)
	start := time.Now()
	out := e.invoker.Invoke(ctx, res.Argv[0], res.Argv[1:]...)
	res.Duration = time.Since(start)
	res.ExitCode = out.Code
	res.Diagnostics = string(out.Output)
	e.diag.write(res)

	switch {
	case out.Err == nil:
		res.Status = report.StatusOK
		logger.Info("✅ Compiled variant.", "duration", res.Duration)
	case !out.Ran && ctx.Err() != nil && errors.Is(out.Err, ctx.Err()):
		res.Status = report.StatusSkipped
		res.Error = out.Err.Error()
		logger.Warn("Compile job skipped.", "reason", out.Err)
	default:
		res.Status = report.StatusFailed
		res.Error = out.Err.Error()
		logger.Error("Compile job failed.", "exit_code", res.ExitCode, "error", out.Err)
	}
	return res
}

// diagnostics serializes compiler output from concurrent jobs.
type diagnostics struct {
	mu sync.Mutex
	w  io.Writer
}

func (d *diagnostics) write(res report.Result) {
	if d == nil || res.Diagnostics == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, "==> %s %s mask=%s -> %s\n%s", res.Stage, res.Source, res.Variant, res.Artifact, res.Diagnostics)
	if res.Diagnostics[len(res.Diagnostics)-1] != '\n' {
		fmt.Fprintln(d.w)
	}
}
