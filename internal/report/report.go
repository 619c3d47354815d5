// Package report records the outcome of every compile job in a batch.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/specialistvlad/shdc/internal/variant"
)

// Status is the outcome of one job.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result is the outcome of one compile job, with everything needed to rerun it.
type Result struct {
	Index    int           `yaml:"index"`
	Stage    string        `yaml:"stage"`
	Source   string        `yaml:"source"`
	Output   string        `yaml:"output"`
	Variant  string        `yaml:"variant"`
	Input    string        `yaml:"input_path"`
	Artifact string        `yaml:"output_path"`
	Argv     []string      `yaml:"argv,flow"`
	Status   Status        `yaml:"status"`
	ExitCode int           `yaml:"exit_code"`
	Duration time.Duration `yaml:"duration"`
	Error    string        `yaml:"error,omitempty"`
	// Diagnostics is the compiler's combined stdout and stderr.
	Diagnostics string `yaml:"diagnostics,omitempty"`
}

// NewResult prepares a pending result for job at position index.
func NewResult(index int, job variant.Job) Result {
	return Result{
		Index:   index,
		Stage:   job.Stage.String(),
		Source:  job.Source,
		Output:  job.Output,
		Variant: job.Variant(),
	}
}

func (r Result) String() string {
	s := fmt.Sprintf("%s %s mask=%s -> %s", r.Stage, r.Source, r.Variant, r.Artifact)
	switch r.Status {
	case StatusFailed:
		s += fmt.Sprintf(" (exit %d)", r.ExitCode)
	case StatusSkipped:
		s += " (skipped)"
	}
	return s
}

// Batch holds the results of one run, in job order.
type Batch struct {
	Results []Result `yaml:"results"`
}

// Count returns the number of results with the given status.
func (b *Batch) Count(status Status) int {
	n := 0
	for _, r := range b.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Unsuccessful returns the failed and skipped results, in job order.
func (b *Batch) Unsuccessful() []Result {
	var out []Result
	for _, r := range b.Results {
		if r.Status != StatusOK {
			out = append(out, r)
		}
	}
	return out
}

// Err returns a *BatchError when any job did not succeed, nil otherwise.
func (b *Batch) Err() error {
	bad := b.Unsuccessful()
	if len(bad) == 0 {
		return nil
	}
	return &BatchError{Total: len(b.Results), Results: bad}
}

// BatchError lists the jobs of a batch that did not succeed.
type BatchError struct {
	Total   int
	Results []Result
}

func (e *BatchError) Error() string {
	lines := make([]string, 0, len(e.Results))
	for _, r := range e.Results {
		lines = append(lines, r.String())
	}
	return fmt.Sprintf("%d of %d compile jobs did not succeed:\n- %s", len(e.Results), e.Total, strings.Join(lines, "\n- "))
}
