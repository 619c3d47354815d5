// Package executor runs compile jobs through the external shader compiler and
// records one result per job.
package executor

import (
	"context"
	"io"
	"slices"

	"github.com/specialistvlad/shdc/internal/config"
	"github.com/specialistvlad/shdc/internal/ctxlog"
	"github.com/specialistvlad/shdc/internal/layout"
	"github.com/specialistvlad/shdc/internal/process"
	"github.com/specialistvlad/shdc/internal/report"
	"github.com/specialistvlad/shdc/internal/variant"
	"golang.org/x/sync/errgroup"
)

// Executor invokes the compiler once per job.
type Executor struct {
	invoker  process.Invoker
	layout   layout.Layout
	argv     []string
	validate string
	workers  int
	diag     *diagnostics
}

// Option configures an Executor.
type Option func(*Executor)

// WithWorkers sets how many jobs may run at once. Values below 2 run the
// batch sequentially in job order.
func WithWorkers(n int) Option {
	return func(e *Executor) {
		e.workers = n
	}
}

// WithDiagnostics copies the compiler output of every job to w.
func WithDiagnostics(w io.Writer) Option {
	return func(e *Executor) {
		if w != nil {
			e.diag = &diagnostics{w: w}
		}
	}
}

// New creates an executor that runs compiler through inv, placing files
// according to lay.
func New(inv process.Invoker, lay layout.Layout, compiler config.Compiler, opts ...Option) (*Executor, error) {
	argv, err := compiler.Argv()
	if err != nil {
		return nil, err
	}
	e := &Executor{
		invoker:  inv,
		layout:   lay,
		argv:     argv,
		validate: compiler.Validate(),
		workers:  1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Args returns the full command line for job, program first.
func (e *Executor) Args(job variant.Job) []string {
	args := slices.Clone(e.argv)
	args = append(args, e.validate, e.layout.InputPath(job), "-o", e.layout.OutputPath(job))
	return append(args, job.Defines...)
}

// Execute runs every job and returns their results in job order. A failing
// job never stops the batch. Once ctx is done, jobs that have not started are
// recorded as skipped; running compilers are left to finish.
func (e *Executor) Execute(ctx context.Context, jobs []variant.Job) *report.Batch {
	logger := ctxlog.FromContext(ctx)
	logger.Info("🚀 Starting compile batch.", "jobs", len(jobs), "workers", e.workers)

	batch := &report.Batch{Results: make([]report.Result, len(jobs))}
	if e.workers < 2 {
		for i, job := range jobs {
			batch.Results[i] = e.run(ctx, i, job)
		}
	} else {
		e.pool(ctx, jobs, batch.Results)
	}

	logger.Info("🏁 Compile batch finished.",
		"ok", batch.Count(report.StatusOK),
		"failed", batch.Count(report.StatusFailed),
		"skipped", batch.Count(report.StatusSkipped),
	)
	return batch
}

// pool runs jobs on a bounded number of goroutines. Jobs writing the same
// output path form one chain and run one after another in job order.
func (e *Executor) pool(ctx context.Context, jobs []variant.Job, results []report.Result) {
	var g errgroup.Group
	g.SetLimit(e.workers)

	for _, chain := range e.chains(jobs) {
		g.Go(func() error {
			for _, i := range chain {
				results[i] = e.run(ctx, i, jobs[i])
			}
			return nil
		})
	}
	_ = g.Wait()
}

// chains groups job indexes by output path, ordered by first appearance.
func (e *Executor) chains(jobs []variant.Job) [][]int {
	var chains [][]int
	byPath := make(map[string]int)
	for i, job := range jobs {
		path := e.layout.OutputPath(job)
		c, ok := byPath[path]
		if !ok {
			c = len(chains)
			byPath[path] = c
			chains = append(chains, nil)
		}
		chains[c] = append(chains[c], i)
	}
	return chains
}
