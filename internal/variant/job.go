// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package variant

import (
	"fmt"
	"slices"
)

// Stage is a shader pipeline stage.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

// Stages lists every stage in batch order.
var Stages = []Stage{Vertex, Fragment}

// String returns the stage's manifest name.
func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Suffix returns the file suffix of sources and artifacts for the stage.
func (s Stage) Suffix() string {
	switch s {
	case Vertex:
		return ".vert"
	case Fragment:
		return ".frag"
	default:
		return ""
	}
}

// ParseStage maps a manifest name to a stage.
func ParseStage(name string) (Stage, error) {
	for _, s := range Stages {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q, expected \"vertex\" or \"fragment\"", name)
}

// Entry requests one variant of a source for a stage.
type Entry struct {
	Source string
	Mask   Mask
	// Output overrides the output base name. Empty means the source name.
	Output string
}

// Job is one invocation of the external compiler.
type Job struct {
	Stage   Stage
	Source  string
	Output  string
	Mask    Mask
	Defines []string
}

// Variant returns the canonical name of the job's mask.
func (j Job) Variant() string {
	return j.Mask.Name()
}

func (j Job) String() string {
	return fmt.Sprintf("%s %s mask=%s -> %s", j.Stage, j.Source, j.Variant(), j.Output)
}

// Jobs returns one job per entry, in entry order. Every job's defines start
// with the build parameter defines followed by the mask defines. An entry
// whose mask sets an unregistered bit fails the whole call.
func (r *Resolver) Jobs(stage Stage, entries []Entry) ([]Job, error) {
	params := r.ParamDefines()
	jobs := make([]Job, 0, len(entries))
	for i, e := range entries {
		defs, err := r.Defines(e.Mask)
		if err != nil {
			return nil, fmt.Errorf("%s entry %d (%s): %w", stage, i, e.Source, err)
		}
		out := e.Output
		if out == "" {
			out = e.Source
		}
		jobs = append(jobs, Job{
			Stage:   stage,
			Source:  e.Source,
			Output:  out,
			Mask:    e.Mask,
			Defines: append(slices.Clone(params), defs...),
		})
	}
	return jobs, nil
}
