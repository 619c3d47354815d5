package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/muesli/termenv"
	"github.com/specialistvlad/shdc/internal/variant"
	"gopkg.in/yaml.v3"
)

// WriteSummary prints one line per job and a totals line. Colors are used
// only when w is a terminal that supports them.
func (b *Batch) WriteSummary(w io.Writer) error {
	out := termenv.NewOutput(w)
	badge := map[Status]termenv.Style{
		StatusOK:      out.String(" OK ").Foreground(termenv.ANSIGreen),
		StatusFailed:  out.String("FAIL").Foreground(termenv.ANSIRed).Bold(),
		StatusSkipped: out.String("SKIP").Foreground(termenv.ANSIYellow),
	}

	for _, r := range b.Results {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", badge[r.Status], r); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d ok, %d failed, %d skipped\n",
		b.Count(StatusOK), b.Count(StatusFailed), b.Count(StatusSkipped))
	return err
}

// document is the YAML shape of a written report.
type document struct {
	Generated time.Time      `yaml:"generated"`
	Params    variant.Params `yaml:"params"`
	Total     int            `yaml:"total"`
	OK        int            `yaml:"ok"`
	Failed    int            `yaml:"failed"`
	Skipped   int            `yaml:"skipped"`
	Results   []Result       `yaml:"results"`
}

// WriteYAML encodes the batch and its build parameters as YAML.
func (b *Batch) WriteYAML(w io.Writer, params variant.Params, generated time.Time) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	doc := document{
		Generated: generated.UTC(),
		Params:    params,
		Total:     len(b.Results),
		OK:        b.Count(StatusOK),
		Failed:    b.Count(StatusFailed),
		Skipped:   b.Count(StatusSkipped),
		Results:   b.Results,
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// SaveYAML writes the YAML report to path, creating parent directories.
func (b *Batch) SaveYAML(path string, params variant.Params, generated time.Time) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := b.WriteYAML(f, params, generated); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
