package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/mitchellh/go-homedir"
	"github.com/specialistvlad/shdc/internal/layout"
	"github.com/specialistvlad/shdc/internal/variant"
)

// ErrInvalidManifest is returned when a manifest is structurally wrong.
var ErrInvalidManifest = errors.New("invalid manifest")

// DefaultValidateFlag is passed to the compiler before the input path.
const DefaultValidateFlag = "-V"

// Model is the unified, format-agnostic representation of one build.
type Model struct {
	Compiler Compiler
	Layout   layout.Layout
	Params   variant.Params
	Vertex   []variant.Entry
	Fragment []variant.Entry
}

// Compiler describes how to invoke the external shader compiler.
type Compiler struct {
	// Command is the program followed by any fixed arguments, split like a
	// shell would split it.
	Command string
	// ValidateFlag precedes the input path. Empty means DefaultValidateFlag.
	ValidateFlag string
	// Env holds extra environment variables for the compiler process.
	Env map[string]string
}

// Argv splits Command into the program and its fixed arguments, expanding a
// leading ~ in the program path.
func (c Compiler) Argv() ([]string, error) {
	argv, err := shellwords.Parse(c.Command)
	if err != nil {
		return nil, fmt.Errorf("%w: compiler command %q: %v", ErrInvalidManifest, c.Command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: compiler command is empty", ErrInvalidManifest)
	}
	prog, err := homedir.Expand(argv[0])
	if err != nil {
		return nil, fmt.Errorf("%w: compiler program %q: %v", ErrInvalidManifest, argv[0], err)
	}
	argv[0] = prog
	return argv, nil
}

// Validate returns the flag placed before the input path.
func (c Compiler) Validate() string {
	if c.ValidateFlag == "" {
		return DefaultValidateFlag
	}
	return c.ValidateFlag
}

// Entries returns the entries declared for stage.
func (m *Model) Entries(stage variant.Stage) []variant.Entry {
	switch stage {
	case variant.Vertex:
		return m.Vertex
	case variant.Fragment:
		return m.Fragment
	default:
		return nil
	}
}

// Add appends an entry to the list of its stage.
func (m *Model) Add(stage variant.Stage, e variant.Entry) {
	switch stage {
	case variant.Vertex:
		m.Vertex = append(m.Vertex, e)
	case variant.Fragment:
		m.Fragment = append(m.Fragment, e)
	}
}

// Validate checks the structural rules every loader must satisfy.
func (m *Model) Validate() error {
	var errs []string
	if strings.TrimSpace(m.Compiler.Command) == "" {
		errs = append(errs, "compiler command is empty")
	} else if _, err := m.Compiler.Argv(); err != nil {
		errs = append(errs, err.Error())
	}
	if err := m.Params.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	for _, stage := range variant.Stages {
		for i, e := range m.Entries(stage) {
			if strings.TrimSpace(e.Source) == "" {
				errs = append(errs, fmt.Sprintf("%s entry %d has no source", stage, i))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n- %s", ErrInvalidManifest, strings.Join(errs, "\n- "))
	}
	return nil
}

// Jobs resolves all entries: vertex jobs first, then fragment jobs, each in
// declaration order.
func (m *Model) Jobs(r *variant.Resolver) ([]variant.Job, error) {
	var jobs []variant.Job
	for _, stage := range variant.Stages {
		stageJobs, err := r.Jobs(stage, m.Entries(stage))
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, stageJobs...)
	}
	return jobs, nil
}

// Default returns the built-in batch: the Main source with three variants per
// stage, each written under its variant name.
func Default(cat *variant.Catalog) *Model {
	m := &Model{
		Compiler: Compiler{Command: "tmp/shdc", ValidateFlag: DefaultValidateFlag},
		Layout: layout.Layout{
			SourceDir:      "tmp/shd/",
			DestDir:        "bin/",
			ArtifactSuffix: ".bin",
		},
		Params: cat.Params(),
	}
	masks := []variant.Mask{
		variant.Normal,
		variant.Normal | variant.TexCoord0 | variant.ColorMap,
		variant.Normal | variant.TexCoord0 | variant.ColorMap | variant.Skin,
	}
	for _, stage := range variant.Stages {
		for _, mask := range masks {
			m.Add(stage, variant.Entry{Source: "Main", Mask: mask, Output: mask.Name()})
		}
	}
	return m
}
